package server

import (
	"context"
	"net/http"

	"guild-tracker/internal/constants"
)

func (s *Server) handleSyncRoster(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.CronJobTimeout)
	defer cancel()

	var ran bool
	results, err := s.jobRunner.Run(ctx, "sync-roster", func(ctx context.Context) (any, error) {
		summary, didRun, err := s.rosterSync.CheckAndSync(ctx)
		ran = didRun
		if summary == nil {
			return nil, err
		}
		return summary, err
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Sync failed", err.Error())
		return
	}
	if !ran {
		writeCronSuccess(w, "Roster data is fresh, skipping sync", nil)
		return
	}
	writeCronSuccess(w, "Roster sync completed", results)
}

func (s *Server) handleSyncProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.CronJobTimeout)
	defer cancel()

	var ran bool
	results, err := s.jobRunner.Run(ctx, "sync-progress", func(ctx context.Context) (any, error) {
		summary, didRun, err := s.progressSync.CheckAndSync(ctx)
		ran = didRun
		if summary == nil {
			return nil, err
		}
		return summary, err
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Sync failed", err.Error())
		return
	}
	if !ran {
		writeCronSuccess(w, "Progress data is fresh, skipping sync", nil)
		return
	}
	writeCronSuccess(w, "Progress sync completed", results)
}

func (s *Server) handleSyncAudit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.CronJobTimeout)
	defer cancel()

	results, err := s.jobRunner.Run(ctx, "sync-audit", func(ctx context.Context) (any, error) {
		return s.auditSync.Sync(ctx)
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Sync failed", err.Error())
		return
	}
	writeCronSuccess(w, "Audit sync completed", results)
}

func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.CronJobTimeout)
	defer cancel()

	results, err := s.jobRunner.Run(ctx, "cleanup", func(ctx context.Context) (any, error) {
		return s.cleanup.Run(ctx)
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Cleanup failed", err.Error())
		return
	}
	writeCronSuccess(w, "Cleanup completed", results)
}

// syncAllResult reports each sub-job independently so one failure does not
// hide the outcome of the others.
type syncAllResult struct {
	Audit   any      `json:"audit,omitempty"`
	Cleanup any      `json:"cleanup,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func (s *Server) handleSyncAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.CronJobTimeout)
	defer cancel()

	out := syncAllResult{}

	auditResults, auditErr := s.jobRunner.Run(ctx, "sync-audit", func(ctx context.Context) (any, error) {
		return s.auditSync.Sync(ctx)
	})
	if auditErr != nil {
		out.Errors = append(out.Errors, "audit: "+auditErr.Error())
	} else {
		out.Audit = auditResults
	}

	cleanupResults, cleanupErr := s.jobRunner.Run(ctx, "cleanup", func(ctx context.Context) (any, error) {
		return s.cleanup.Run(ctx)
	})
	if cleanupErr != nil {
		out.Errors = append(out.Errors, "cleanup: "+cleanupErr.Error())
	} else {
		out.Cleanup = cleanupResults
	}

	if len(out.Errors) > 0 {
		writeCronSuccess(w, "Sync completed with errors", out)
		return
	}
	writeCronSuccess(w, "Sync completed", out)
}
