// internal/api/handler_test.go
//
// Endpoint tests covering the full submission flow.
//
// Context
// -------
// Each test assembles a real store, limiter, and notifier (pointed at an
// httptest webhook or a dead endpoint) and fires JSON requests at the chi
// router.  The headline scenario: first submission accepted with id 1, an
// immediate retry from the same username denied with a fifteen-minute
// message, and an out-of-range professionalism rejected citing exactly
// that field.
//
// Run: go test ./internal/api -v

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yanizio/applyboard/internal/notify"
	"github.com/yanizio/applyboard/internal/ratelimit"
	"github.com/yanizio/applyboard/internal/requestinfo"
	"github.com/yanizio/applyboard/internal/store"
)

// newRouter wires a fresh handler topology.  webhookURL may be empty
// (notifier disabled) or point at a test server.
func newRouter(webhookURL string) (*Handler, http.Handler) {
	h := New(
		store.New(),
		ratelimit.New(15*time.Minute),
		notify.New(webhookURL, time.Second, zap.NewNop().Sugar()),
		zap.NewNop().Sugar(),
	)
	r := chi.NewRouter()
	r.Use(requestinfo.Enrich)
	r.Mount("/api", h.Routes())
	return h, r
}

func postApply(t *testing.T, router http.Handler, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/apply", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:54321"
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func validBody(username string) map[string]any {
	return map[string]any{
		"username":        username,
		"aboutYourself":   strings.Repeat("A", 10),
		"whyJoin":         strings.Repeat("B", 10),
		"timezone":        "UTC+00:00",
		"activityLevel":   "daily",
		"professionalism": 7,
		"joke":            "knock knock",
	}
}

func TestApply_Scenario(t *testing.T) {
	h, router := newRouter("")

	// First submission is accepted with id 1.
	rr := postApply(t, router, validBody("alice"))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	body := decode(t, rr)
	require.EqualValues(t, 1, body["id"])

	// Immediate retry from the same username hits the cooldown.
	rr = postApply(t, router, validBody("alice"))
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	body = decode(t, rr)
	require.Contains(t, body["message"], "15 minutes")
	require.Equal(t, 1, h.Store.Len(), "denied attempt must not be stored")

	// A different username with professionalism out of range fails
	// validation, citing that field.
	bad := validBody("bob")
	bad["professionalism"] = 11
	rr = postApply(t, router, bad)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	body = decode(t, rr)
	require.Equal(t, "Validation error", body["message"])
	errs := body["errors"].([]any)
	require.Len(t, errs, 1)
	require.Equal(t, "professionalism", errs[0].(map[string]any)["field"])

	// Validation failures never consume bob's cooldown slot.
	rr = postApply(t, router, validBody("bob"))
	require.Equal(t, http.StatusCreated, rr.Code)
	require.EqualValues(t, 2, decode(t, rr)["id"])
}

func TestApply_DistinctUsernamesIndependent(t *testing.T) {
	_, router := newRouter("")

	require.Equal(t, http.StatusCreated, postApply(t, router, validBody("alice")).Code)
	require.Equal(t, http.StatusCreated, postApply(t, router, validBody("bob")).Code)
}

func TestApply_MalformedJSON(t *testing.T) {
	_, router := newRouter("")

	req := httptest.NewRequest(http.MethodPost, "/api/apply", strings.NewReader("{nope"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestApply_UnknownFieldsIgnored(t *testing.T) {
	_, router := newRouter("")

	body := validBody("alice")
	body["favoriteColor"] = "teal"
	require.Equal(t, http.StatusCreated, postApply(t, router, body).Code)
}

func TestApply_WebhookFailureStillAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // every delivery now fails

	h, router := newRouter(srv.URL)

	rr := postApply(t, router, validBody("alice"))
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, 1, h.Store.Len())
}

func TestApply_WebhookReceivesAcceptedRecord(t *testing.T) {
	received := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		received <- buf.Bytes()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	_, router := newRouter(srv.URL)
	require.Equal(t, http.StatusCreated, postApply(t, router, validBody("alice")).Code)

	select {
	case raw := <-received:
		require.Contains(t, string(raw), "New Moderator Application")
		require.Contains(t, string(raw), "alice")
	case <-time.After(3 * time.Second):
		t.Fatal("webhook never called")
	}
}

func TestApply_RecordsOriginAddress(t *testing.T) {
	h, router := newRouter("")
	require.Equal(t, http.StatusCreated, postApply(t, router, validBody("alice")).Code)

	apps := h.Store.ByUsername("alice")
	require.Len(t, apps, 1)
	require.Equal(t, "203.0.113.7", apps[0].OriginIP)
}

func TestApply_ResponseOmitsAuditFields(t *testing.T) {
	_, router := newRouter("")
	require.Equal(t, http.StatusCreated, postApply(t, router, validBody("alice")).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/applications/alice", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotContains(t, rr.Body.String(), "203.0.113.7")
}

func TestRecent_LimitHandling(t *testing.T) {
	_, router := newRouter("")
	for _, u := range []string{"alice", "bob", "carol"} {
		require.Equal(t, http.StatusCreated, postApply(t, router, validBody(u)).Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/applications/recent?limit=2", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 2)
	require.Equal(t, "carol", got[0]["username"], "newest first")
	require.Equal(t, "bob", got[1]["username"])

	req = httptest.NewRequest(http.MethodGet, "/api/applications/recent?limit=oops", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestByUsername_EmptyIsJSONArray(t *testing.T) {
	_, router := newRouter("")

	req := httptest.NewRequest(http.MethodGet, "/api/applications/nobody", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, "[]", rr.Body.String())
}
