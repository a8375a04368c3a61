package api

import (
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	docHandler *handlers.DocumentHandler,
	questionHandler *handlers.QuestionHandler,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	documents := v1.Group("/documents")
	documents.Post("/process", docHandler.ProcessDocuments)
	documents.Get("", docHandler.ListDocuments)
	documents.Get("/:name/metrics", docHandler.DocumentMetrics)

	v1.Post("/ask", questionHandler.Ask)
	v1.Get("/conversation", questionHandler.Conversation)
	v1.Post("/reset", docHandler.ResetStore)

	appLogger.Info("router configured")
	return app
}
