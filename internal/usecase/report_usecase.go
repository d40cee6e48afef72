package usecase

import (
	"context"

	repo "ordersystem/internal/repository"
)

const (
	defaultTopCustomers = 10
	maxTopCustomers     = 100
)

type ReportUsecase struct {
	reports repo.ReportRepository
}

func NewReportUsecase(reports repo.ReportRepository) *ReportUsecase {
	return &ReportUsecase{reports: reports}
}

// limitが範囲外なら10件
func (u *ReportUsecase) TopCustomers(ctx context.Context, limit int) ([]repo.TopCustomerRow, error) {
	if limit <= 0 || limit > maxTopCustomers {
		limit = defaultTopCustomers
	}
	rows, err := u.reports.TopCustomers(ctx, limit)
	if err != nil {
		return nil, NewInfraError(err)
	}
	return rows, nil
}

func (u *ReportUsecase) ProductSales(ctx context.Context) ([]repo.ProductSalesRow, error) {
	rows, err := u.reports.ProductSales(ctx)
	if err != nil {
		return nil, NewInfraError(err)
	}
	return rows, nil
}

func (u *ReportUsecase) OrderTotals(ctx context.Context) ([]repo.OrderTotalRow, error) {
	rows, err := u.reports.OrderTotals(ctx)
	if err != nil {
		return nil, NewInfraError(err)
	}
	return rows, nil
}
