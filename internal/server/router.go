package server

import (
	"net/http"

	"guild-tracker/internal/api"
	"guild-tracker/internal/config"
	"guild-tracker/internal/middleware"
	"guild-tracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Server is the HTTP surface: scheduled sync endpoints plus roster and loot
// bookkeeping.
type Server struct {
	cfg            *config.Config
	jobRunner      *service.JobRunner
	rosterSync     *service.RosterSyncService
	progressSync   *service.ProgressSyncService
	auditSync      *service.AuditSyncService
	cleanup        *service.CleanupService
	rosterSvc      *service.RosterService
	lootSvc        *service.LootService
	mountSvc       *service.MountService
	droptimizerSvc *service.DroptimizerService
	blizzard       *api.BlizzardClient
	logger         zerolog.Logger
}

func New(
	cfg *config.Config,
	jobRunner *service.JobRunner,
	rosterSync *service.RosterSyncService,
	progressSync *service.ProgressSyncService,
	auditSync *service.AuditSyncService,
	cleanup *service.CleanupService,
	rosterSvc *service.RosterService,
	lootSvc *service.LootService,
	mountSvc *service.MountService,
	droptimizerSvc *service.DroptimizerService,
	blizzard *api.BlizzardClient,
	logger zerolog.Logger,
) *Server {
	return &Server{
		cfg:            cfg,
		jobRunner:      jobRunner,
		rosterSync:     rosterSync,
		progressSync:   progressSync,
		auditSync:      auditSync,
		cleanup:        cleanup,
		rosterSvc:      rosterSvc,
		lootSvc:        lootSvc,
		mountSvc:       mountSvc,
		droptimizerSvc: droptimizerSvc,
		blizzard:       blizzard,
		logger:         logger,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(s.logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/cron", func(r chi.Router) {
		r.Use(middleware.BearerSecret(s.cfg.CronSecret, writeUnauthorized))
		r.Get("/sync-roster", s.handleSyncRoster)
		r.Get("/sync-progress", s.handleSyncProgress)
		r.Get("/sync-audit", s.handleSyncAudit)
		r.Get("/cleanup", s.handleCleanup)
		r.Get("/sync-all", s.handleSyncAll)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/players", s.handleListPlayers)
		r.Post("/players", s.handleCreatePlayer)
		r.Delete("/players/{playerID}", s.handleDeletePlayer)

		r.Get("/characters", s.handleListCharacters)
		r.Post("/characters", s.handleAddCharacter)
		r.Get("/characters/{characterID}", s.handleGetCharacter)
		r.Delete("/characters/{characterID}", s.handleDeleteCharacter)

		r.Post("/roster/import", s.handleImportRoster)

		r.Get("/sessions", s.handleListSessions)
		r.Post("/sessions", s.handleCreateSession)
		r.Post("/sessions/{sessionID}/loots", s.handleAddLoots)
		r.Get("/loot/recap", s.handleLootRecap)

		r.Get("/mounts/priority", s.handleMountPriority)

		r.Post("/droptimizers", s.handleUploadDroptimizer)
		r.Get("/droptimizers/{characterID}", s.handleListDroptimizers)

		r.Get("/items/{itemID}", s.handleGetItem)

		r.Get("/sync-runs", s.handleListSyncRuns)
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
