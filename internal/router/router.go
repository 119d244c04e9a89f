// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"cart-api/internal/cache"
	"cart-api/internal/database"
	"cart-api/internal/handler"
	"cart-api/internal/handler/categories"
	"cart-api/internal/handler/clients"
	"cart-api/internal/handler/items"
	"cart-api/internal/handler/orders"
	"cart-api/internal/handler/products"
	"cart-api/internal/handler/users"
	"cart-api/internal/middleware"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache) {
	// 健康檢查（需登入）
	e.GET("/ping", handler.PingHandler(db, rdb), middleware.RequireAuth)

	// 註冊與令牌操作（開放）
	e.POST("/user", users.RegisterHandler(db))
	e.POST("/user/login", users.LoginHandler(db, rdb))
	e.POST("/user/refresh", users.RefreshHandler(db, rdb))
	e.POST("/user/logout", users.LogoutHandler(rdb), middleware.RequireAuth)

	// 使用者查詢與自我管理
	e.GET("/user", users.ListUsersHandler(db), middleware.RequireAuth)
	e.GET("/user/:id", users.GetUserHandler(db), middleware.RequireAuth)
	e.PUT("/user/:id", users.UpdateUserHandler(db), middleware.RequireAuth)
	e.DELETE("/user/:id", users.DeleteUserHandler(db), middleware.RequireAuth)

	// 以下資源皆以呼叫者為擁有者範圍
	category := e.Group("/category", middleware.RequireAuth)
	category.POST("", categories.CreateCategoryHandler(db))
	category.GET("", categories.ListCategoriesHandler(db))
	category.GET("/:id", categories.GetCategoryHandler(db))
	category.PUT("/:id", categories.UpdateCategoryHandler(db))
	category.DELETE("/:id", categories.DeleteCategoryHandler(db))

	product := e.Group("/product", middleware.RequireAuth)
	product.POST("", products.CreateProductHandler(db))
	product.GET("", products.ListProductsHandler(db))
	product.GET("/:id", products.GetProductHandler(db))
	product.PUT("/:id", products.UpdateProductHandler(db))
	product.DELETE("/:id", products.DeleteProductHandler(db))

	client := e.Group("/client", middleware.RequireAuth)
	client.POST("", clients.CreateClientHandler(db))
	client.GET("", clients.ListClientsHandler(db))
	client.GET("/:id", clients.GetClientHandler(db))
	client.PUT("/:id", clients.UpdateClientHandler(db))
	client.DELETE("/:id", clients.DeleteClientHandler(db))

	order := e.Group("/order", middleware.RequireAuth)
	order.POST("", orders.CreateOrderHandler(db))
	order.GET("", orders.ListOrdersHandler(db))
	order.GET("/:id", orders.GetOrderHandler(db))
	order.PUT("/:id", orders.UpdateOrderHandler(db))
	order.DELETE("/:id", orders.DeleteOrderHandler(db))

	// 明細以父訂單為範圍
	item := e.Group("/item-order/:order", middleware.RequireAuth)
	item.POST("", items.CreateItemOrderHandler(db))
	item.GET("", items.ListItemOrdersHandler(db))
	item.GET("/:id", items.GetItemOrderHandler(db))
	item.PUT("/:id", items.UpdateItemOrderHandler(db))
	item.DELETE("/:id", items.DeleteItemOrderHandler(db))
}
