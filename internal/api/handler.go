// internal/api/handler.go
//
// Submission endpoint and store read views.
//
//------------------------------------------------------------------------------
//
// Context
//   One POST route accepts moderator applications; two GET routes expose
//   the store's lookup views.  The handler owns no state of its own —
//   store, limiter, and notifier are injected, so tests can assemble the
//   exact topology they need and the process has no package-level
//   singletons.
//
// Per-request flow for POST /api/apply
//   decode → Validate → CheckAndRecord → Store.Insert → async Deliver →
//   respond.  Any failure before the insert short-circuits straight to the
//   response; notification failures never affect the response at all.
//
//------------------------------------------------------------------------------

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/applyboard/internal/application"
	"github.com/yanizio/applyboard/internal/metrics"
	"github.com/yanizio/applyboard/internal/notify"
	"github.com/yanizio/applyboard/internal/ratelimit"
	"github.com/yanizio/applyboard/internal/requestinfo"
	"github.com/yanizio/applyboard/internal/store"
)

// defaultRecentLimit caps GET /api/applications/recent when the caller
// does not pass ?limit=.
const defaultRecentLimit = 10

// Handler carries the injected collaborators for all API routes.
type Handler struct {
	Store    *store.Store
	Limiter  *ratelimit.Limiter
	Notifier *notify.Notifier
	Log      *zap.SugaredLogger
}

// New returns a Handler wired to the given collaborators.
func New(st *store.Store, lim *ratelimit.Limiter, n *notify.Notifier, log *zap.SugaredLogger) *Handler {
	return &Handler{Store: st, Limiter: lim, Notifier: n, Log: log}
}

// Routes builds and returns the router mounted at “/api”.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/apply", h.handleApply)
	r.Get("/applications/recent", h.handleRecent)
	r.Get("/applications/{username}", h.handleByUsername)
	return r
}

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	var sub application.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Request body must be a JSON object.",
		})
		return
	}

	// 1. Field validation — report every failing field at once.  Anything
	//    other than a ValidationError would be a programming error in the
	//    validator, answered with a generic 500.
	app, err := application.Validate(sub)
	if err != nil {
		var verr application.ValidationError
		if !errors.As(err, &verr) {
			h.Log.Errorw("validator returned unexpected error", "err", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"message": "Failed to submit application.",
			})
			return
		}
		metrics.ValidationRejectsTotal.Inc()
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Validation error",
			"errors":  verr.Fields,
		})
		return
	}

	// 2. Cooldown check, keyed by the declared username.  Check and record
	//    are one critical section inside the limiter.
	dec := h.Limiter.CheckAndRecord(app.Username, time.Now())
	if !dec.Allowed {
		metrics.RateLimitDeniesTotal.Inc()
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"message": retryMessage(dec.RetryAfter),
		})
		return
	}

	// 3. Stamp audit metadata and insert.  The store assigns ID and
	//    CreatedAt.
	if info := requestinfo.FromContext(r.Context()); info != nil {
		if info.Geo.IP != nil {
			app.OriginIP = info.Geo.IP.String()
		}
		app.UserAgent = info.UA.Summary()
		app.Country = info.Geo.CountryISO
	}
	stored := h.Store.Insert(app)
	h.Log.Infow("application accepted",
		"id", stored.ID,
		"username", stored.Username,
		"origin_ip", stored.OriginIP,
	)

	// 4. Best-effort notification.  Fired without making the caller wait;
	//    Deliver logs and counts its own failures.
	go func() {
		_ = h.Notifier.Deliver(context.Background(), stored)
	}()

	// 5. Success.
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      stored.ID,
		"message": "Application submitted successfully!",
	})
}

func (h *Handler) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"message": "limit must be an integer",
			})
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, h.Store.Recent(limit))
}

func (h *Handler) handleByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	apps := h.Store.ByUsername(username)
	if apps == nil {
		apps = []application.Application{}
	}
	writeJSON(w, http.StatusOK, apps)
}

/*──────────────────────────── helpers ──────────────────────────────────────*/

// retryMessage renders the remaining cooldown, rounded up to whole minutes,
// as a user-facing sentence.
func retryMessage(wait time.Duration) string {
	mins := int((wait + time.Minute - 1) / time.Minute)
	if mins < 1 {
		mins = 1
	}
	unit := "minutes"
	if mins == 1 {
		unit = "minute"
	}
	return fmt.Sprintf("Too many applications submitted. Please try again in %d %s.", mins, unit)
}

// writeJSON emits v with the given status.  Encoding failures after the
// header is written can only be logged.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Errorw("response encode failed", "err", err)
	}
}
