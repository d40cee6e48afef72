package server

import (
	"ordersystem/internal/config"
	"ordersystem/internal/handler"
	"ordersystem/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health        *handler.HealthHandler
	Auth          *handler.AuthHandler
	Customers     *handler.CustomerHandler
	Products      *handler.ProductHandler
	AdminProducts *handler.AdminProductHandler
	Orders        *handler.OrderHandler
	AdminOrders   *handler.AdminOrderHandler
	Reports       *handler.ReportHandler
	Imports       *handler.ImportHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	//認証不要
	h.Health.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e)

	api := e.Group("/api", middleware.AuthJWT(cfg))

	//STAFF以上
	staff := api.Group("", middleware.StaffRoleGuard())
	h.Customers.RegisterRoutes(staff)
	h.Products.RegisterRoutes(staff)
	h.Orders.RegisterRoutes(staff)
	h.Reports.RegisterRoutes(staff)

	//ADMINのみ
	admin := api.Group("", middleware.AdminRoleGuard())
	h.Customers.RegisterAdminRoutes(admin)
	h.AdminProducts.RegisterRoutes(admin)
	h.AdminOrders.RegisterRoutes(admin)
	h.Imports.RegisterRoutes(admin)
}
