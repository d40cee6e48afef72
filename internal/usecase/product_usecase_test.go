package usecase_test

import (
	"context"
	"strings"
	"testing"

	"ordersystem/internal/domain/model"
	repo "ordersystem/internal/repository"
	"ordersystem/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductUsecase_ListProducts(t *testing.T) {
	m := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(m, fixedClock{now: testNow})

	active := true
	m.On("List", mock.Anything, repo.ProductListQuery{Q: "pen", Active: &active}).
		Return([]model.Product{{ID: 1, Name: "Pen"}}, nil)

	items, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Q: "  pen ", Active: &active})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = uc.ListProducts(context.Background(), usecase.ListProductsInput{Q: strings.Repeat("a", 101)})
	assertErrContains(t, err, "q too long")
	m.AssertExpectations(t)
}

func TestProductUsecase_GetProduct_NotFound(t *testing.T) {
	m := new(ProductRepoMock)
	m.On("FindByID", mock.Anything, int64(3)).Return(model.Product{}, repo.ErrNotFound)

	_, err := usecase.NewProductUsecase(m, nil).GetProduct(context.Background(), 3)
	e := assertKind(t, err, usecase.KindNotFound)
	assert.Equal(t, "product 3 not found", e.Message)
}

func TestProductUsecase_CreateProduct(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		m := new(ProductRepoMock)
		uc := usecase.NewProductUsecase(m, nil)
		bad := float32(5.5)

		cases := []struct {
			in   usecase.ProductInput
			want string
		}{
			{usecase.ProductInput{Name: " ", Price: dec("1")}, "name required"},
			{usecase.ProductInput{Name: "x", Price: dec("-1")}, "price must be >= 0"},
			{usecase.ProductInput{Name: "x", Price: dec("1"), Stock: -1}, "stock must be >= 0"},
			{usecase.ProductInput{Name: "x", Price: dec("1"), Rating: &bad}, "rating must be between 0 and 5"},
		}
		for _, tc := range cases {
			_, err := uc.CreateProduct(context.Background(), tc.in)
			e := assertKind(t, err, usecase.KindValidation)
			assert.Equal(t, tc.want, e.Message)
		}
		m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate name", func(t *testing.T) {
		m := new(ProductRepoMock)
		m.On("Create", mock.Anything, mock.Anything).Return(model.Product{}, repo.ErrDuplicate)

		_, err := usecase.NewProductUsecase(m, nil).CreateProduct(context.Background(), usecase.ProductInput{Name: "Pen", Price: dec("1")})
		e := assertKind(t, err, usecase.KindBusinessRule)
		assert.Equal(t, `product name "Pen" already exists`, e.Message)
	})

	t.Run("ok", func(t *testing.T) {
		m := new(ProductRepoMock)
		m.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
			return p.Name == "Pen" && p.Stock == 3 && !p.IsActive && p.CreatedAt.Equal(testNow)
		})).Return(model.Product{ID: 8, Name: "Pen"}, nil)

		p, err := usecase.NewProductUsecase(m, fixedClock{now: testNow}).CreateProduct(context.Background(),
			usecase.ProductInput{Name: " Pen ", Price: dec("2.50"), Stock: 3, IsActive: false})
		require.NoError(t, err)
		assert.Equal(t, int64(8), p.ID)
		m.AssertExpectations(t)
	})
}

func TestProductUsecase_DeleteProduct(t *testing.T) {
	t.Run("referenced", func(t *testing.T) {
		m := new(ProductRepoMock)
		m.On("IsReferenced", mock.Anything, int64(4)).Return(true, nil)

		err := usecase.NewProductUsecase(m, nil).DeleteProduct(context.Background(), 4)
		e := assertKind(t, err, usecase.KindBusinessRule)
		assert.Equal(t, "product 4 is referenced by orders; deactivate it instead", e.Message)
		m.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing", func(t *testing.T) {
		m := new(ProductRepoMock)
		m.On("IsReferenced", mock.Anything, int64(4)).Return(false, nil)
		m.On("Delete", mock.Anything, int64(4)).Return(repo.ErrNotFound)

		err := usecase.NewProductUsecase(m, nil).DeleteProduct(context.Background(), 4)
		assertKind(t, err, usecase.KindNotFound)
	})
}

func TestProductUsecase_UpdateProduct_NotFound(t *testing.T) {
	m := new(ProductRepoMock)
	m.On("Update", mock.Anything, mock.Anything).Return(repo.ErrNotFound)

	err := usecase.NewProductUsecase(m, nil).UpdateProduct(context.Background(), 9, usecase.ProductInput{Name: "x", Price: dec("1")})
	assertKind(t, err, usecase.KindNotFound)
}
