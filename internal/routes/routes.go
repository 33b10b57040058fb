package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/auth"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/handlers"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/middleware"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/ws"
)

type Deps struct {
	Tokens  *auth.TokenManager
	Limiter *middleware.RateLimiter
	Auth    *handlers.AuthHandler
	Users   *handlers.UserHandler
	Chat    *handlers.ChatHandler
	Media   *handlers.MediaHandler
	Speech  *handlers.SpeechHandler
	WS      *ws.Server
}

func Register(app *fiber.App, d Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", d.Auth.Register)
	authGroup.Post("/login", d.Limiter.ByIP(), d.Auth.Login)

	protected := api.Use(middleware.JWTAuth(d.Tokens))

	users := protected.Group("/users")
	users.Get("/me", d.Users.Me)
	users.Get("/doctors", d.Users.Doctors)
	users.Put("/availability", d.Users.SetAvailability)
	users.Put("/language", d.Users.SetLanguage)
	users.Get("/:id", d.Users.ByID)

	chat := protected.Group("/chat")
	chat.Get("/conversations", d.Chat.Conversations)
	chat.Get("/conversation/:userId", d.Chat.Conversation)
	chat.Post("/conversation/:userId/read", d.Chat.MarkRead)
	chat.Post("/send/:userId", d.Chat.Send)
	chat.Post("/upload", d.Media.Upload)

	protected.Get("/media/:id/url", d.Media.ResolveURL)
	protected.Post("/speech/transcribe", d.Limiter.ByUser(), d.Speech.Transcribe)

	protected.Get("/ws", d.WS.Upgrade, d.WS.Handler())
}
