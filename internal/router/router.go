package router

import (
	"net/http"

	_ "petpulse/docs"
	mem "petpulse/internal/adapters/storage/memory"
	"petpulse/internal/domain/pets"
	"petpulse/internal/middleware"
	"petpulse/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type Options struct {
	// Opcional: si es nil se usa el store in-memory.
	Pets pets.Repository

	Logger         logger.Logger       // nil => nop
	TracerProvider trace.TracerProvider // nil => noop

	// EnableSwagger monta la UI en /swagger/.
	EnableSwagger bool
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	tp := opts.TracerProvider
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	petRepo := opts.Pets
	if petRepo == nil {
		petRepo = mem.NewPetRepo()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Trace(tp))
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recover)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	pets.RegisterRoutes(r, pets.NewService(petRepo, pets.WithTracerProvider(tp)))

	return r
}
