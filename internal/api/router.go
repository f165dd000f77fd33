package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mkazantsev/bookmart-api/internal/api/middleware"
	"github.com/mkazantsev/bookmart-api/internal/service"
	"github.com/mkazantsev/bookmart-api/internal/service/auth"
)

// NewRouter creates and configures the application router with all routes
// and middleware. Reads on books and the seller list are public; seller
// detail and every mutation run behind the bearer-token middleware.
func NewRouter(
	sellerService service.SellerService,
	bookService service.BookService,
	jwtService auth.JWTService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)

	authHandler := NewAuthHandler(sellerService, jwtService)
	sellerHandler := NewSellerHandler(sellerService)
	bookHandler := NewBookHandler(bookService)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, sellerService)

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/token", authHandler.Login)
		r.Post("/seller", sellerHandler.Create)
		r.Get("/seller", sellerHandler.List)
		r.Get("/books", bookHandler.List)
		r.Get("/books/{id}", bookHandler.Get)

		// Protected endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/seller/{id}", sellerHandler.GetDetail)
			r.Put("/seller/{id}", sellerHandler.Update)
			r.Delete("/seller/{id}", sellerHandler.Delete)

			r.Post("/books", bookHandler.Create)
			r.Put("/books/{id}", bookHandler.Update)
			r.Delete("/books/{id}", bookHandler.Delete)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
