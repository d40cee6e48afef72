package usecase_test

import (
	"context"
	"errors"
	"testing"

	repo "ordersystem/internal/repository"
	"ordersystem/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReportUsecase_TopCustomers_ClampsLimit(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, 10},
		{-3, 10},
		{101, 10},
		{5, 5},
		{100, 100},
	}
	for _, tc := range cases {
		m := new(ReportRepoMock)
		m.On("TopCustomers", mock.Anything, tc.want).Return([]repo.TopCustomerRow{}, nil)

		_, err := usecase.NewReportUsecase(m).TopCustomers(context.Background(), tc.in)
		require.NoError(t, err)
		m.AssertExpectations(t)
	}
}

func TestReportUsecase_InfraError(t *testing.T) {
	m := new(ReportRepoMock)
	m.On("ProductSales", mock.Anything).Return(nil, errors.New("down"))
	m.On("OrderTotals", mock.Anything).Return([]repo.OrderTotalRow{{OrderID: 1}}, nil)
	uc := usecase.NewReportUsecase(m)

	_, err := uc.ProductSales(context.Background())
	assertKind(t, err, usecase.KindInfrastructure)

	rows, err := uc.OrderTotals(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
