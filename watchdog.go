package sessionkit

import (
	"context"
	"time"

	"github.com/wavely-app/sessionkit/log"
	"github.com/wavely-app/sessionkit/tokenstore"
)

// watchdog keeps IsAuthenticated truthful between operations: every tick
// it re-derives the flag from the stored access token and publishes only
// when it changed. It never refreshes and never drops the profile; routes
// react to the flag, renewal happens on the next explicit operation.
func (m *Manager) watchdog() {
	defer close(m.watchdogDone)

	ticker := time.NewTicker(m.opts.WatchdogInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.watchdogStop:
			return
		case <-ticker.C:
			m.checkExpiry(context.Background())
		}
	}
}

// checkExpiry recomputes the authenticated flag from the stored token.
func (m *Manager) checkExpiry(ctx context.Context) {
	token, err := m.store.AccessToken(ctx)
	if err != nil {
		m.logger.Warn(ctx, "expiry check: reading access token failed",
			log.Fields{"error": err.Error()})
		return
	}
	valid := token != "" && !tokenstore.IsTokenExpired(token, m.opts.ExpiryBuffer)

	m.mu.Lock()
	defer m.mu.Unlock()
	authed := m.user != nil && valid
	if authed == m.authed {
		return
	}
	m.authed = authed
	m.publishLocked()
	m.logger.Info(ctx, "session validity changed", log.Fields{"authenticated": authed})
}
