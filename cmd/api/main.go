package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordersystem/internal/config"
	"ordersystem/internal/domain/model"
	"ordersystem/internal/handler"
	"ordersystem/internal/infra/db"
	infraRepo "ordersystem/internal/infra/repository"
	"ordersystem/internal/infra/token"
	"ordersystem/internal/server"
	"ordersystem/internal/telemetry"
	"ordersystem/internal/usecase"
	auth "ordersystem/internal/usecase/auth_usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envはあれば読む（本番は環境変数のみ）
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer sqlDB.Close()

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	txm := infraRepo.NewTxManagerGorm(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	paymentRepo := infraRepo.NewPaymentGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	operatorRepo := infraRepo.NewOperatorGormRepository(gormDB)
	reportRepo := infraRepo.NewReportGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)

	//usecaseに渡す部品
	clock := usecase.SystemClock{}

	//bcrypt（起動時の管理者作成：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := token.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)

	if cfg.AdminEmail != "" {
		bootstrap := auth.NewBootstrapOperatorUsecase(operatorRepo, hasher, clock)
		if _, err := bootstrap.Execute(ctx, auth.BootstrapOperatorInput{
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
			Role:     model.RoleAdmin,
		}); err != nil {
			log.Fatalf("bootstrap admin: %v", err)
		}
	}

	//Usecase生成
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, orderItemRepo, paymentRepo,
		usecase.WithSortedLocks(cfg.LockOrderSorted),
		usecase.WithClock(clock),
	)
	paymentUC := usecase.NewPaymentUsecase(txm, clock)
	adminOrderUC := usecase.NewAdminOrderUsecase(txm, auditRepo, clock)
	productUC := usecase.NewProductUsecase(productRepo, clock)
	customerUC := usecase.NewCustomerUsecase(customerRepo, orderRepo, clock)
	reportUC := usecase.NewReportUsecase(reportRepo)
	importUC := usecase.NewImportUsecase(customerRepo, productRepo, clock)
	loginUC := auth.NewLoginUsecase(operatorRepo, verifier, issuer, clock)

	//Handler生成
	e := server.New(cfg, server.Handlers{
		Health:        handler.NewHealthHandler(sqlDB),
		Auth:          handler.NewAuthHandler(loginUC),
		Customers:     handler.NewCustomerHandler(customerUC),
		Products:      handler.NewProductHandler(productUC),
		AdminProducts: handler.NewAdminProductHandler(productUC),
		Orders:        handler.NewOrderHandler(orderUC, paymentUC),
		AdminOrders:   handler.NewAdminOrderHandler(adminOrderUC),
		Reports:       handler.NewReportHandler(reportUC),
		Imports:       handler.NewImportHandler(importUC),
	})

	//Server起動
	addr := cfg.Port
	if addr == "" || addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(ctx, addr, e); err != nil {
		log.Printf("server: %v", err)
		return
	}
	log.Println("server stopped")
}
