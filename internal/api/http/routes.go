package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	auth "github.com/mind-engage/mindengage-qtigen/internal/auth/middleware"
	"github.com/mind-engage/mindengage-qtigen/internal/convert"
	"github.com/mind-engage/mindengage-qtigen/internal/storage"
)

type Deps struct {
	Converter      *convert.Service
	Samples        storage.BlobStore
	Events         EventLister       // nil disables /api/conversions
	Auth           *auth.AuthService // nil leaves /api/conversions open
	CORSOrigins    []string
	MaxUploadBytes int64
	PublicDir      string
	AccessLog      bool
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	if d.AccessLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition", "X-Conversion-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	if d.Auth != nil {
		r.Post("/auth/login", auth.LoginHandler(d.Auth))
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/upload", UploadHandler(d.Converter, d.MaxUploadBytes))
		api.Post("/preview", PreviewHandler(d.Converter, d.MaxUploadBytes))
		if d.Samples != nil {
			api.Route("/sample", func(sr chi.Router) { MountSamples(sr, d.Samples) })
		}
		if d.Events != nil {
			api.Group(func(pr chi.Router) {
				if d.Auth != nil {
					pr.Use(auth.JWTMiddleware(d.Auth))
				}
				pr.Get("/conversions", ListConversionsHandler(d.Events))
			})
		}
	})

	if d.PublicDir != "" {
		MountStatic(r, d.PublicDir)
	}
	return r
}
