package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/financas-casa/internal/application/dto"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName    string
	AuthUC     authenticator
	RecorderUC recorder
	Replicator replicator
	ViewerUC   viewer
	Statement  statementer
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", App: deps.AppName})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	recordHandler := NewRecordHandler(deps.RecorderUC, deps.Replicator)
	protected.Post("/purchases", recordHandler.RecordPurchase)
	protected.Post("/bills", recordHandler.RecordBill)
	protected.Post("/salaries", recordHandler.RecordSalary)
	protected.Post("/receipts", recordHandler.RecordReceipt)
	protected.Post("/savings/deposits", recordHandler.RecordDeposit)
	protected.Post("/savings/withdrawals", recordHandler.RecordWithdrawal)
	protected.Put("/limits", recordHandler.SetLimit)
	protected.Post("/replications", recordHandler.Replicate)

	ledgerHandler := NewLedgerHandler(deps.ViewerUC, deps.Statement)
	protected.Get("/ledger", ledgerHandler.Overview)
	protected.Get("/ledger/:year/:month", ledgerHandler.Month)
	protected.Get("/ledger/:year/:month/statement.pdf", ledgerHandler.Statement)
}
