package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"docvault/internal/http/middleware"
	"docvault/internal/model"
	"docvault/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; business rules live in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, cred service.CredentialService, docSvc service.DocumentService, userSvc service.UserService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
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
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/login", Login(cred))

	auth := middleware.RequireAuth(cred)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	app.Post("/logout", auth, Logout(cred))
	app.Post("/upload", auth, UploadDocument(docSvc))
	app.Get("/files", auth, ListFiles(docSvc))
	app.Get("/download_file/:id", auth, DownloadFile(docSvc))
	app.Delete("/files/:id", auth, adminOnly, DeleteDocument(docSvc))

	users := app.Group("/user", auth, adminOnly)
	users.Post("/add", CreateUser(userSvc))
	users.Get("/:name", GetUser(userSvc))
	users.Put("/:name", UpdateUser(userSvc))
	users.Delete("/:name", DeleteUser(userSvc))
}
