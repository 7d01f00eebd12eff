package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"contabil/internal/http/middleware"
	"contabil/internal/service"
)

// Services bundles everything the route table depends on.
type Services struct {
	Auth     service.AuthService
	Client   service.ClientService
	Company  service.CompanyService
	Sync     service.SyncService
	Filing   service.FilingService
	Document service.DocumentService
}

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
// Handlers stay thin; business rules live in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	// Serve OpenAPI spec and Swagger UI.
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		return c.Type("html").SendString(docsPage)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	auth := app.Group("/auth")
	auth.Post("/register", Register(svcs.Auth))
	auth.Post("/login", Login(svcs.Auth))
	auth.Post("/logout", Logout())

	api := app.Group("/api", middleware.Session(svcs.Auth))
	api.Get("/me", Me())

	api.Post("/clients", CreateClient(svcs.Client))
	api.Get("/clients", ListClients(svcs.Client))
	api.Get("/clients/:id", GetClient(svcs.Client))
	api.Put("/clients/:id", UpdateClient(svcs.Client))
	api.Delete("/clients/:id", DeleteClient(svcs.Client))

	api.Post("/clients/:clientId/documents", UploadDocument(svcs.Document))
	api.Get("/clients/:clientId/documents", ListDocuments(svcs.Document))
	api.Get("/documents/:id/download", DownloadDocument(svcs.Document))
	api.Delete("/documents/:id", DeleteDocument(svcs.Document))

	api.Post("/companies", CreateCompany(svcs.Company))
	api.Get("/companies", ListCompanies(svcs.Company))
	api.Get("/companies/:id", GetCompany(svcs.Company))
	api.Get("/companies/:id/periods", ListCompanyPeriods(svcs.Company))
	api.Post("/companies/:id/sync", SyncCompany(svcs.Sync))

	api.Post("/monthly-services", CreateMonthlyService(svcs.Filing))
	api.Get("/monthly-services", ListMonthlyServices(svcs.Filing))
	api.Put("/monthly-services/:id", UpdateMonthlyService(svcs.Filing))
	api.Delete("/monthly-services/:id", DeleteMonthlyService(svcs.Filing))

	api.Post("/annual-services", CreateAnnualService(svcs.Filing))
	api.Get("/annual-services", ListAnnualServices(svcs.Filing))
	api.Put("/annual-services/:id", UpdateAnnualService(svcs.Filing))
	api.Delete("/annual-services/:id", DeleteAnnualService(svcs.Filing))

	api.Post("/irpf", CreateIrpfEntry(svcs.Filing))
	api.Get("/irpf", ListIrpfEntries(svcs.Filing))
	api.Put("/irpf/:id", UpdateIrpfEntry(svcs.Filing))
	api.Delete("/irpf/:id", DeleteIrpfEntry(svcs.Filing))
}

const docsPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
