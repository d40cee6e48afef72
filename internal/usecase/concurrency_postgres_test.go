package usecase_test

import (
	"context"
	"os"
	"sync/atomic"
	"testing"

	"ordersystem/internal/config"
	"ordersystem/internal/domain/model"
	"ordersystem/internal/infra/db"
	infraRepo "ordersystem/internal/infra/repository"
	"ordersystem/internal/testdb"
	"ordersystem/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// 行ロックの効き目はPostgreSQLで確認する（TEST_DATABASE_URLが無ければskip）
func TestConcurrency_LastUnitSoldOnce(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	gdb, err := db.Connect(config.Config{DBDriver: config.DriverPostgres, DatabaseURL: dsn, DBLogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	suffix := uuid.NewString()
	c := testdb.SeedCustomer(t, gdb, "Race", "Test", "race-"+suffix+"@example.com")
	p := testdb.SeedProduct(t, gdb, "race-"+suffix, "10", 1, true)

	uc := usecase.NewOrderUsecase(
		infraRepo.NewTxManagerGorm(gdb),
		infraRepo.NewOrderGormRepository(gdb),
		infraRepo.NewOrderItemGormRepository(gdb),
		infraRepo.NewPaymentGormRepository(gdb),
		usecase.WithSortedLocks(true),
	)

	const workers = 2
	var okCount, rejected atomic.Int32
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			_, err := uc.CreateOrder(ctx, usecase.CreateOrderInput{
				CustomerID: c.ID,
				Items:      []usecase.CreateOrderItemInput{{ProductID: p.ID, Quantity: 1}},
			})
			if err == nil {
				okCount.Add(1)
				return nil
			}
			if e, ok := usecase.AsError(err); ok && e.Kind == usecase.KindBusinessRule {
				rejected.Add(1)
				return nil
			}
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), okCount.Load())
	assert.Equal(t, int32(1), rejected.Load())
	assert.Zero(t, testdb.Stock(t, gdb, p.ID))

	var n int64
	require.NoError(t, gdb.Model(&model.Order{}).Where("customer_id = ?", c.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
