package sessionkit

import (
	"context"

	"github.com/wavely-app/sessionkit/domain"
	"github.com/wavely-app/sessionkit/log"
	"github.com/wavely-app/sessionkit/tokenstore"
)

// Init reconstructs the session from the token store exactly once per
// startup, validating it against the backend. A rejected or stale access
// token is refreshed exactly once; when the refresh path fails too, the
// session is torn down and the user is sent to the login route.
//
// Init is cancellation-safe: once ctx is done, no further state is
// applied, and a direct user action (login, register, logout) started
// while Init is in flight always wins over its late result.
func (m *Manager) Init(ctx context.Context) {
	epoch := m.beginOp()

	token, err := m.store.AccessToken(ctx)
	if err != nil {
		m.logger.Warn(ctx, "session init: reading access token failed",
			log.Fields{"error": err.Error()})
	}
	userID, err := m.store.UserID(ctx)
	if err != nil {
		m.logger.Warn(ctx, "session init: reading user id failed",
			log.Fields{"error": err.Error()})
	}
	if userID == "" && token != "" {
		// The id key can go missing independently of the token; the token
		// payload is the backup source.
		userID = tokenstore.DecodeUserID(token)
	}

	if token == "" || userID == "" {
		m.commit(ctx, epoch, func() {
			m.user = nil
			m.authed = false
			m.loading = false
		})
		return
	}

	user, err := m.backend.UserByID(ctx, userID, token)
	if err == nil {
		m.finishAuthenticated(ctx, epoch, user, token)
		return
	}
	if ctx.Err() != nil {
		return
	}
	m.logger.Warn(ctx, "session init: profile fetch failed, attempting refresh",
		log.Fields{"user_id": userID, "error": err.Error()})

	refreshToken, err := m.store.RefreshToken(ctx)
	if err != nil {
		m.logger.Warn(ctx, "session init: reading refresh token failed",
			log.Fields{"error": err.Error()})
	}

	// One refresh, one retry. Never more: a broken refresh token must not
	// loop, and worst-case startup latency stays at two round trips.
	newToken, err := m.backend.Refresh(ctx, refreshToken)
	if err == nil && ctx.Err() == nil {
		if err := m.store.SetAccessToken(ctx, newToken); err != nil {
			m.logger.Error(ctx, "session init: persisting refreshed token failed", err)
		}
		user, err = m.backend.UserByID(ctx, userID, newToken)
		if err == nil {
			m.finishAuthenticated(ctx, epoch, user, newToken)
			return
		}
	}
	if ctx.Err() != nil {
		return
	}

	m.logger.Warn(ctx, "session init: refresh path failed, logging out",
		log.Fields{"user_id": userID, "error": err.Error()})
	m.hardLogout(ctx, epoch)
}

// finishAuthenticated installs a fetched profile and resolves its avatar.
func (m *Manager) finishAuthenticated(ctx context.Context, epoch uint64, user *domain.User, token string) {
	avatar := m.resolveAvatarURL(ctx, token, user.AvatarURL)
	if m.commit(ctx, epoch, func() {
		m.user = user
		m.avatarURL = avatar
		m.authed = !tokenstore.IsTokenExpired(token, m.opts.ExpiryBuffer)
		m.loading = false
	}) {
		m.logger.Info(ctx, "session restored", log.Fields{"user_id": user.ID})
	}
}

// hardLogout clears every trace of the session and redirects to the login
// surface. The loading flag stays latched on purpose: the login route is
// about to take over, and dropping it early would flash an
// unauthenticated frame first.
func (m *Manager) hardLogout(ctx context.Context, epoch uint64) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Error(ctx, "session init: clearing tokens failed", err)
	}
	if m.commit(ctx, epoch, func() {
		m.user = nil
		m.authed = false
		m.avatarURL = m.opts.DefaultAvatarURL
	}) {
		m.nav.Navigate(m.opts.LoginRoute)
	}
}
