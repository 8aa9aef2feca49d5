package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/frasnym/swagger-api-pets/docs"
	"github.com/frasnym/swagger-api-pets/internal/domain/pets"
	"github.com/frasnym/swagger-api-pets/internal/middleware"
)

type Options struct {
	Pets   *pets.Service
	Logger *zap.Logger
}

// NewRouter wires middleware, the pets module and the swagger UI onto one
// chi router. Every dependency comes in through opts; nothing is opened here.
func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	pets.RegisterRoutes(r, opts.Pets)

	// Swagger UI. The bare path redirects into the UI index so
	// http://localhost:3000/api-docs works as typed.
	r.Get("/api-docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api-docs/index.html", http.StatusMovedPermanently)
	})
	r.Get("/api-docs/*", httpSwagger.Handler(
		httpSwagger.URL("/api-docs/doc.json"),
	))

	return r
}
