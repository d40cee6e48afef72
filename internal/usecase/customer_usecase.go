package usecase

import (
	"context"
	"errors"
	"strings"

	"ordersystem/internal/domain/model"
	repo "ordersystem/internal/repository"
)

type CustomerInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// 前後の空白を落とす
func (in CustomerInput) normalize() CustomerInput {
	return CustomerInput{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
	}
}

func (in CustomerInput) validate() error {
	if in.FirstName == "" {
		return NewValidationError("first_name required")
	}
	if in.LastName == "" {
		return NewValidationError("last_name required")
	}
	if in.Email == "" {
		return NewValidationError("email required")
	}
	if !strings.Contains(in.Email, "@") {
		return NewValidationError("email must contain '@'")
	}
	if len(in.Phone) > 30 {
		return NewValidationError("phone too long")
	}
	return nil
}

func (in CustomerInput) toModel() model.Customer {
	c := model.Customer{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	}
	if in.Phone != "" {
		phone := in.Phone
		c.Phone = &phone
	}
	return c
}

type CustomerUsecase struct {
	customers repo.CustomerRepository
	orders    repo.OrderRepository
	clock     Clock
}

func NewCustomerUsecase(customers repo.CustomerRepository, orders repo.OrderRepository, clock Clock) *CustomerUsecase {
	if clock == nil {
		clock = SystemClock{}
	}
	return &CustomerUsecase{customers: customers, orders: orders, clock: clock}
}

func (u *CustomerUsecase) List(ctx context.Context) ([]model.Customer, error) {
	list, err := u.customers.List(ctx)
	if err != nil {
		return nil, NewInfraError(err)
	}
	return list, nil
}

func (u *CustomerUsecase) Get(ctx context.Context, id int64) (model.Customer, error) {
	if id <= 0 {
		return model.Customer{}, NewValidationError("invalid id")
	}
	c, err := u.customers.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, NewNotFoundError("customer %d not found", id)
	}
	if err != nil {
		return model.Customer{}, NewInfraError(err)
	}
	return c, nil
}

func (u *CustomerUsecase) Create(ctx context.Context, in CustomerInput) (model.Customer, error) {
	in = in.normalize()
	if err := in.validate(); err != nil {
		return model.Customer{}, err
	}

	c := in.toModel()
	c.CreatedAt = u.clock.Now()
	created, err := u.customers.Create(ctx, c)
	if errors.Is(err, repo.ErrDuplicate) {
		return model.Customer{}, NewBusinessError("email %q already registered", in.Email)
	}
	if err != nil {
		return model.Customer{}, NewInfraError(err)
	}
	return created, nil
}

func (u *CustomerUsecase) Update(ctx context.Context, id int64, in CustomerInput) error {
	if id <= 0 {
		return NewValidationError("invalid id")
	}
	in = in.normalize()
	if err := in.validate(); err != nil {
		return err
	}

	c := in.toModel()
	c.ID = id
	err := u.customers.Update(ctx, c)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("customer %d not found", id)
	}
	if errors.Is(err, repo.ErrDuplicate) {
		return NewBusinessError("email %q already registered", in.Email)
	}
	if err != nil {
		return NewInfraError(err)
	}
	return nil
}

// 注文を持つ顧客は消せない
func (u *CustomerUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewValidationError("invalid id")
	}

	has, err := u.orders.ExistsForCustomer(ctx, id)
	if err != nil {
		return NewInfraError(err)
	}
	if has {
		return NewBusinessError("customer %d has orders", id)
	}

	err = u.customers.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("customer %d not found", id)
	}
	if err != nil {
		return NewInfraError(err)
	}
	return nil
}
