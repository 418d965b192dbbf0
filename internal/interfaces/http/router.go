package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturio/internal/application/auth"
	"github.com/jhoicas/facturio/internal/application/billing"
	"github.com/jhoicas/facturio/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	BusinessUC    *usecase.BusinessUseCase
	ClientUC      *usecase.ClientUseCase
	ServiceUC     *usecase.ServiceUseCase
	CreateInvoice *billing.CreateInvoiceUseCase
	RecordPayment *billing.RecordPaymentUseCase
	InvoicePDF    *billing.PDFUseCase
	JWTSecret     string
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

	// Sesión actual (protegido)
	protected.Get("/auth/me", authHandler.Me)

	// Businesses (protegido)
	businesses := protected.Group("/businesses")
	businessHandler := NewBusinessHandler(deps.BusinessUC)
	businesses.Post("/", businessHandler.Create)
	businesses.Get("/me", businessHandler.GetMine)
	businesses.Get("/", businessHandler.List)

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)

	// Services (protegido, catálogo)
	services := protected.Group("/services")
	serviceHandler := NewServiceHandler(deps.ServiceUC)
	services.Post("/", serviceHandler.Create)
	services.Get("/", serviceHandler.List)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.RecordPayment, deps.InvoicePDF)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/payments", invoiceHandler.RecordPayment)
	invoices.Post("/:id/pdf", invoiceHandler.DownloadPDF)
}
