// Package http собирает HTTP сервер сервиса заметок на fiber.
package http

import (
	"github.com/gofiber/fiber/v3"

	"gonotes/internal/notes/adapters/http/auth"
	"gonotes/internal/notes/adapters/http/dto"
	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/adapters/http/notes"
	"gonotes/internal/notes/adapters/http/response"
	"gonotes/internal/notes/config"
	"gonotes/internal/notes/ports/api"
)

// Dependencies - сценарии и ресурсы, нужные маршрутам.
type Dependencies struct {
	Notes   api.NoteUseCase
	Auth    api.AuthUseCase
	Health  auth.Pinger
	Limiter *middleware.RateLimiter
}

// NewApp создает fiber.App с настройками из cfg и зарегистрированными маршрутами.
func NewApp(cfg config.HTTPConfig, deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "gonotes",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: func(c fiber.Ctx, err error) error {
			return response.Error(middleware.RequestContext(c), c, err)
		},
	})

	SetupRouter(app, deps)
	return app
}

// SetupRouter настраивает маршрутизацию.
func SetupRouter(app *fiber.App, deps Dependencies) {
	authHandler := auth.NewHandler(deps.Auth)
	notesHandler := notes.NewHandler(deps.Notes)
	requireAuth := middleware.NewAuthMiddleware(deps.Auth)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/healthz", auth.Health(deps.Health))

	apiGroup := app.Group("/api")

	// Публичные маршруты аутентификации.
	if deps.Limiter != nil {
		limit := middleware.NewRateLimitMiddleware(deps.Limiter)
		apiGroup.Post("/register", limit, authHandler.Register)
		apiGroup.Post("/login", limit, authHandler.Login)
	} else {
		apiGroup.Post("/register", authHandler.Register)
		apiGroup.Post("/login", authHandler.Login)
	}

	// Защищенные маршруты.
	apiGroup.Post("/logout", requireAuth, authHandler.Logout)
	apiGroup.Get("/user", requireAuth, authHandler.Me)

	notesRoutes := apiGroup.Group("/notes", requireAuth)
	notesRoutes.Get("", notesHandler.List)
	notesRoutes.Post("", notesHandler.Create)
	notesRoutes.Get("/:id", notesHandler.Get)
	notesRoutes.Put("/:id", notesHandler.Update)
	notesRoutes.Patch("/:id", notesHandler.Update)
	notesRoutes.Delete("/:id", notesHandler.Delete)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return response.JSON(c, fiber.StatusNotFound, dto.ErrorResponse{Message: "Route not found"})
	})
}
