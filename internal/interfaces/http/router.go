package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clientes-api/internal/application/auth"
	"github.com/jhoicas/Clientes-api/internal/application/crm"
	"github.com/jhoicas/Clientes-api/internal/application/identity"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	TenantUC   *crm.TenantUseCase
	FormUC     *crm.FormUseCase
	CustomerUC *crm.CustomerUseCase
	InvoiceUC  *crm.InvoiceUseCase
	PDFUC      *crm.PDFUseCase
	Ingest     *identity.IngestUseCase
	Merger     *identity.MergeCoordinator
	Scanner    *identity.DuplicateScanner
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Tenants (público, bootstrap)
	tenants := api.Group("/tenants")
	tenantHandler := NewTenantHandler(deps.TenantUC)
	tenants.Post("/", tenantHandler.Create)
	tenants.Get("/", tenantHandler.List)
	tenants.Get("/:id", tenantHandler.GetByID)

	// Ingesta de submissions (público: el tenant se deriva del formulario)
	submissionHandler := NewSubmissionHandler(deps.Ingest)
	api.Post("/forms/:id/submissions", submissionHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Forms (protegido)
	forms := protected.Group("/forms")
	formHandler := NewFormHandler(deps.FormUC)
	forms.Post("/", formHandler.Create)
	forms.Get("/", formHandler.List)
	forms.Get("/:id", formHandler.GetByID)
	forms.Put("/:id", formHandler.Update)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Merger, deps.Scanner, deps.PDFUC)
	customers.Get("/", customerHandler.List)
	// Rutas fijas antes de /:id para que Fiber no las capture como parámetro.
	customers.Get("/duplicates", customerHandler.Duplicates)
	customers.Post("/merge", RequireRole(entity.RoleAdmin, entity.RoleOperador), customerHandler.Merge)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Get("/:id/submissions", customerHandler.ListSubmissions)
	customers.Get("/:id/invoices", customerHandler.ListInvoices)
	customers.Get("/:id/pdf", customerHandler.DownloadPDF)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/", invoiceHandler.Create)
}
