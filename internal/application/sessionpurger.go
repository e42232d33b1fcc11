package application

import (
	"context"
	"log/slog"
	"time"
)

// SessionPurger periodically removes expired sessions so the session table
// does not grow without bound.
type SessionPurger struct {
	auth     *AuthService
	interval time.Duration
	logger   *slog.Logger
}

// NewSessionPurger creates a SessionPurger. Start returns immediately when
// interval is not positive.
func NewSessionPurger(auth *AuthService, interval time.Duration, logger *slog.Logger) *SessionPurger {
	return &SessionPurger{
		auth:     auth,
		interval: interval,
		logger:   logger,
	}
}

// Start runs a purge immediately and then once per interval until ctx is canceled.
func (p *SessionPurger) Start(ctx context.Context) {
	if p.interval <= 0 {
		p.logger.Info("session purge disabled")
		return
	}

	p.purge(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("session purger stopped")
			return
		case <-ticker.C:
			p.purge(ctx)
		}
	}
}

func (p *SessionPurger) purge(ctx context.Context) {
	n, err := p.auth.PurgeExpired(ctx)
	if err != nil {
		p.logger.Error("session purge failed", "error", err)
		return
	}
	if n > 0 {
		p.logger.Info("expired sessions purged", "count", n)
	}
}
