package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/auth"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.AuthUseCase
	ProductUC         *usecase.ProductUseCase
	UserUC            *usecase.UserUseCase
	RecordTransaction *ledger.RecordTransactionUseCase
	LedgerQuery       *ledger.QueryUseCase
	JWTSecret         string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", RequireRole(entity.RoleAdmin), userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id/promote-to-admin", RequireRole(entity.RoleAdmin), userHandler.PromoteToAdmin)
	users.Patch("/:id/demote-to-user", RequireRole(entity.RoleAdmin), userHandler.DemoteToUser)

	// Products (protegido; mutaciones solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.RecordTransaction)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/status", productHandler.Status)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)
	products.Post("/:id/adjust", RequireRole(entity.RoleAdmin), productHandler.AdjustQuantity)

	// Transactions (protegido). El POST queda abierto a cualquier rol
	// autenticado: la política del kardex decide qué tipo/signo admite cada
	// rol, no el router.
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.RecordTransaction, deps.LedgerQuery)
	transactions.Post("/", transactionHandler.Create)
	transactions.Get("/me/my-transactions", transactionHandler.MyTransactions)
	transactions.Get("/summary/overview", RequireRole(entity.RoleAdmin), transactionHandler.Summary)
	transactions.Get("/user/:userId", RequireRole(entity.RoleAdmin), transactionHandler.ListByUser)
	transactions.Get("/product/:productId", transactionHandler.ListByProduct)
	transactions.Get("/", RequireRole(entity.RoleAdmin), transactionHandler.List)
	transactions.Get("/:id", transactionHandler.GetByID)
}
