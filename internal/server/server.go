// Package server exposes the CRM over HTTP: lead sheets, milestones,
// daily targets, users and genders, all JSON with a {success, ...}
// envelope. Authentication happens upstream; the caller's user id arrives
// in the X-User-ID header.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fundroom/crm-api/internal/config"
	"github.com/fundroom/crm-api/internal/ingest"
	"github.com/fundroom/crm-api/internal/store"
)

// Server wires the HTTP surface to the store and the batch processor.
type Server struct {
	cfg       *config.Config
	store     store.Store
	processor *ingest.Processor
	limiter   *clientLimiter
}

// New builds a Server over the given store.
func New(cfg *config.Config, st store.Store) *Server {
	return &Server{
		cfg:       cfg,
		store:     st,
		processor: ingest.New(st, cfg.Batch.MaxConcurrentRows),
		limiter:   newClientLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst),
	}
}

// Close releases background resources held by the server, such as the
// rate limiter's sweeper goroutine.
func (s *Server) Close() {
	s.limiter.close()
}

// Router assembles the full route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-User-ID"},
		MaxAge:         300,
	}))
	r.Use(metrics)
	r.Use(requestLogger)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(identity)

		r.Route("/asheet", func(r chi.Router) {
			r.With(s.limiter.middleware).Post("/add", s.handleLeadAdd)
			r.With(s.limiter.middleware).Post("/upload", s.handleLeadUpload)
			r.Put("/update/{id}", s.handleLeadUpdate)
			r.Get("/list", s.handleLeadList)
			r.Get("/list/{id}", s.handleLeadGet)
			r.Delete("/{id}", s.handleLeadDelete)
			r.Get("/individual/{userId}", s.handleLeadsByUser)
		})
		r.Get("/isheet/analysis", s.handleLeadAnalysis)

		r.Route("/msheet", func(r chi.Router) {
			r.Post("/upsert", s.handleMilestoneUpsert)
			r.Put("/update/{id}", s.handleMilestoneUpdate)
			r.Get("/fetchall", s.handleMilestoneList)
			r.Get("/user/{userId}", s.handleMilestonesByUser)
			r.Get("/{id}", s.handleMilestoneGet)
		})

		r.Route("/mytarget", func(r chi.Router) {
			r.Post("/add", s.handleTargetAdd)
			r.Get("/fetch", s.handleTargetFetch)
			r.Get("/c1", s.handleTargetC1)
		})

		r.Route("/user", func(r chi.Router) {
			r.Post("/register", s.handleUserRegister)
			r.Get("/list", s.handleUserList)
			r.Get("/list/{id}", s.handleUserGet)
			r.Put("/update/{id}", s.handleUserUpdate)
			r.Delete("/delete/{id}", s.handleUserDelete)
		})

		r.Route("/gender", func(r chi.Router) {
			r.Post("/add", s.handleGenderAdd)
			r.Get("/list", s.handleGenderList)
			r.Get("/list/{id}", s.handleGenderGet)
			r.Put("/update/{id}", s.handleGenderUpdate)
			r.Delete("/delete/{id}", s.handleGenderDelete)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
