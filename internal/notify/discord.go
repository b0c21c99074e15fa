// internal/notify/discord.go
//
// Best-effort Discord webhook notifier.
//
// Context
// -------
// Every accepted application is forwarded once to a configured Discord
// webhook as an embed: a title, seven named fields in fixed presentation
// order, and an ISO-8601 timestamp.  Delivery is strictly best-effort —
// the record is already in the store when Deliver runs, so a network
// error or non-2xx response is logged, counted, and swallowed.  The
// submitter always sees success.
//
// Discord applies its own per-webhook rate limits, so outbound posts pass
// through a small token bucket before hitting the wire.
//
// Notes
// -----
//   - An empty webhook URL disables the notifier; Deliver becomes a debug
//     log and nothing else.
//   - Oxford commas, two spaces after periods.
package notify

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/carlmjohnson/requests"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/yanizio/applyboard/internal/application"
	"github.com/yanizio/applyboard/internal/metrics"
)

// embedColor is Discord's light green, in decimal.
const embedColor = 5763719

// Notifier posts accepted applications to one Discord webhook.
type Notifier struct {
	url     string
	timeout time.Duration
	bucket  *rate.Limiter
	log     *zap.SugaredLogger
}

// New returns a Notifier for url.  A zero timeout falls back to ten
// seconds.  url may be empty, which yields a disabled notifier.
func New(url string, timeout time.Duration, log *zap.SugaredLogger) *Notifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{
		url:     url,
		timeout: timeout,
		// Discord allows bursts but sustained webhook traffic is throttled
		// around 30 requests per minute.
		bucket: rate.NewLimiter(rate.Every(2*time.Second), 5),
		log:    log,
	}
}

// Enabled reports whether a webhook URL is configured.
func (n *Notifier) Enabled() bool { return n.url != "" }

//
// Wire payload — one embed per application, matching the shape Discord's
// webhook API expects.
//

type payload struct {
	Embeds []embed `json:"embeds"`
}

type embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Fields    []embedField `json:"fields"`
	Timestamp string       `json:"timestamp"`
}

type embedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// buildPayload translates app into the embed structure.  Field order is
// fixed; reviewers read these top to bottom.
func buildPayload(app application.Application) payload {
	return payload{Embeds: []embed{{
		Title: "New Moderator Application",
		Color: embedColor,
		Fields: []embedField{
			{Name: "Discord Username", Value: app.Username},
			{Name: "About Yourself", Value: app.AboutYourself},
			{Name: "Why Join", Value: app.WhyJoin},
			{Name: "Timezone", Value: app.Timezone},
			{Name: "Activity Level", Value: app.ActivityLevel},
			{Name: "Professionalism (1-10)", Value: strconv.Itoa(app.Professionalism)},
			{Name: "Joke", Value: app.Joke},
		},
		Timestamp: app.CreatedAt.UTC().Format(time.RFC3339),
	}}}
}

// Deliver posts app to the webhook, bounded by the configured timeout.
// The returned error is for logging and tests only — callers on the
// submission path must not propagate it.
func (n *Notifier) Deliver(ctx context.Context, app application.Application) error {
	if !n.Enabled() {
		n.log.Debugw("webhook disabled, skipping notification", "id", app.ID)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.bucket.Wait(ctx); err != nil {
		metrics.WebhookErrorsTotal.Inc()
		n.log.Errorw("webhook throttle wait aborted", "id", app.ID, "err", err)
		return err
	}

	err := requests.URL(n.url).
		BodyJSON(buildPayload(app)).
		CheckStatus(http.StatusOK, http.StatusNoContent).
		Fetch(ctx)
	if err != nil {
		metrics.WebhookErrorsTotal.Inc()
		n.log.Errorw("webhook delivery failed", "id", app.ID, "err", err)
		return err
	}

	metrics.WebhookDeliveriesTotal.Inc()
	n.log.Infow("webhook delivered", "id", app.ID)
	return nil
}
