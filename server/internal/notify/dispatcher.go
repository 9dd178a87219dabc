// Package notify delivers pending notifications in the background.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/services"
)

// Actions recorded in the audit trail.
const (
	ActionSend = "send"
	ActionFail = "fail"
)

// Sender delivers one notification over its channel (email, sms, push).
type Sender interface {
	Send(ctx context.Context, n *model.Notification) error
}

// LogSender "delivers" by logging; the API has no real mail or SMS gateway.
type LogSender struct {
	Log zerolog.Logger
}

func (s LogSender) Send(_ context.Context, n *model.Notification) error {
	s.Log.Info().
		Str("notification_id", n.ID).
		Str("type", n.Type).
		Str("recipient", n.RecipientEmail).
		Str("subject", n.Subject).
		Msg("notification delivered")
	return nil
}

// Config controls polling cadence and retry budget.
type Config struct {
	Interval    time.Duration // poll interval
	MaxAttempts int           // delivery attempts before a notification is marked failed
}

// Dispatcher polls the notifications collection and delivers pending entries.
type Dispatcher struct {
	svc    *services.ResourceService[*model.Notification]
	sender Sender
	cfg    Config
	log    zerolog.Logger

	// attempts counts failed deliveries per notification id since start.
	attempts map[string]int
}

// NewDispatcher constructs a Dispatcher from dependencies.
func NewDispatcher(svc *services.ResourceService[*model.Notification], sender Sender, cfg Config, log zerolog.Logger) *Dispatcher {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	return &Dispatcher{
		svc:      svc,
		sender:   sender,
		cfg:      cfg,
		log:      log.With().Str("component", "notify").Logger(),
		attempts: make(map[string]int),
	}
}

// Run starts the polling loop until ctx is canceled.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.log.Info().Dur("interval", d.cfg.Interval).Int("max_attempts", d.cfg.MaxAttempts).Msg("notification dispatcher starting")
	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.Info().Msg("notification dispatcher stopping")
			return ctx.Err()
		case <-ticker.C:
			if _, err := d.ProcessOnce(ctx); err != nil {
				// Log and continue; the next tick retries
				d.log.Error().Err(err).Msg("notify processOnce")
			}
		}
	}
}

// ProcessOnce delivers every pending notification and returns how many were sent.
func (d *Dispatcher) ProcessOnce(ctx context.Context) (int, error) {
	pending, err := d.svc.Filter(ctx, func(n *model.Notification) bool {
		return n.Status == model.StatusPending
	})
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, n := range pending {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if err := d.sender.Send(ctx, n); err != nil {
			d.handleFailure(ctx, n.ID, err)
			continue
		}
		delete(d.attempts, n.ID)
		if err := d.mark(ctx, n.ID, ActionSend, func(rec *model.Notification, now time.Time) {
			rec.Status = model.StatusSent
			rec.SentAt = model.Timestamp(now)
		}); err != nil {
			d.log.Error().Err(err).Str("notification_id", n.ID).Msg("mark sent failed")
			continue
		}
		sent++
	}
	return sent, nil
}

func (d *Dispatcher) handleFailure(ctx context.Context, id string, cause error) {
	d.attempts[id]++
	n := d.attempts[id]
	d.log.Warn().Err(cause).Str("notification_id", id).Int("attempt", n).Msg("notification delivery failed")
	if n < d.cfg.MaxAttempts {
		return
	}
	delete(d.attempts, id)
	if err := d.mark(ctx, id, ActionFail, func(rec *model.Notification, _ time.Time) {
		rec.Status = model.StatusFailed
	}); err != nil {
		d.log.Error().Err(err).Str("notification_id", id).Msg("mark undeliverable failed")
	}
}

// mark applies fn if the notification is still pending. A record deleted or
// edited since it was listed is left alone.
func (d *Dispatcher) mark(ctx context.Context, id, action string, fn func(rec *model.Notification, now time.Time)) error {
	_, err := d.svc.Modify(ctx, id, action, func(rec *model.Notification, now time.Time) error {
		if rec.Status != model.StatusPending {
			return errSkip
		}
		fn(rec, now)
		return nil
	})
	if errors.Is(err, errSkip) || errors.Is(err, model.ErrNotFound) {
		return nil
	}
	return err
}

var errSkip = errors.New("notification no longer pending")
