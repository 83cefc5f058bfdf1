package api

import (
	"net/http"

	"fertilitycare/internal/api/handlers"
	"fertilitycare/internal/auth"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the full HTTP surface: auth endpoints, the chat gateway
// function, and the conversations/messages persistence surface
func NewRouter(authService *auth.Service, chatHandlers *handlers.ChatHandlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(corsMiddleware)

	// Public routes
	r.Post("/api/login", authService.LoginHandler)
	r.Post("/api/register", authService.RegisterHandler)
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authService.Middleware)

		r.Post("/functions/chat-with-ai", chatHandlers.ChatWithAIHandler)

		r.Get("/api/conversations", chatHandlers.GetConversationsHandler)
		r.Post("/api/conversations", chatHandlers.CreateConversationHandler)
		r.Get("/api/conversations/{id}/messages", chatHandlers.GetConversationMessagesHandler)
		r.Post("/api/conversations/{id}/messages", chatHandlers.AddMessageHandler)
	})

	return r
}

// corsMiddleware sets permissive CORS headers and answers preflight requests
// with no body
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
