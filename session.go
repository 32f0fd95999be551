package sessionkit

import (
	"context"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/wavely-app/sessionkit/domain"
	"github.com/wavely-app/sessionkit/log"
	"github.com/wavely-app/sessionkit/tokenstore"
)

// Options tunes a Manager. Zero values fall back to sensible defaults.
type Options struct {
	// LoginRoute and LandingRoute are the two navigation targets the
	// manager redirects to. Concrete paths are deployment configuration.
	LoginRoute   string
	LandingRoute string

	DefaultAvatarURL     string
	AvatarResolveTimeout time.Duration
	AvatarCacheTTL       time.Duration

	// ExpiryBuffer widens the expiry check so a token is retired before
	// an in-flight request could outlive it.
	ExpiryBuffer     time.Duration
	WatchdogInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.LoginRoute == "" {
		o.LoginRoute = "/login"
	}
	if o.LandingRoute == "" {
		o.LandingRoute = "/dashboard"
	}
	if o.DefaultAvatarURL == "" {
		o.DefaultAvatarURL = "/images/profile/default-avatar.png"
	}
	if o.AvatarResolveTimeout <= 0 {
		o.AvatarResolveTimeout = 5 * time.Second
	}
	if o.AvatarCacheTTL <= 0 {
		o.AvatarCacheTTL = 10 * time.Minute
	}
	if o.ExpiryBuffer <= 0 {
		o.ExpiryBuffer = tokenstore.DefaultExpiryBuffer
	}
	if o.WatchdogInterval <= 0 {
		o.WatchdogInterval = 5 * time.Second
	}
	return o
}

// Snapshot is one consistent view of the session. IsAuthenticated is
// always derived the same way: a profile is present and the stored access
// token has not expired within the safety buffer.
type Snapshot struct {
	User            *domain.User
	AvatarURL       string
	IsAuthenticated bool
	IsLoading       bool
}

// Result is the outcome of Login and Register. Failures carry display
// text instead of an error so callers render inline messages without
// unwrapping anything.
type Result struct {
	Success bool
	Error   string
}

// Manager owns the client session: it reconciles stored credentials with
// the backend, exposes the reactive auth state, and keeps that state
// truthful over time via the expiry watchdog.
type Manager struct {
	store   tokenstore.Store
	backend Backend
	nav     Navigator
	logger  log.Logger
	opts    Options

	avatarCache *ttlcache.Cache[string, string]

	mu sync.Mutex
	// epoch invalidates in-flight passive work: every direct user action
	// bumps it, so a late-resolving initializer can never clobber a newer
	// state.
	epoch     uint64
	user      *domain.User
	avatarURL string
	loading   bool
	authed    bool

	subs    map[int]chan Snapshot
	nextSub int

	watchdogStop chan struct{}
	watchdogDone chan struct{}
	closeOnce    sync.Once
}

// NewManager wires a Manager and starts its watchdog. The session starts
// in the Unknown state (loading, unauthenticated) until Init or a login
// settles it.
func NewManager(store tokenstore.Store, backend Backend, nav Navigator, logger log.Logger, opts Options) *Manager {
	o := opts.withDefaults()
	if nav == nil {
		nav = NopNavigator()
	}
	if logger == nil {
		logger = log.Nop()
	}

	m := &Manager{
		store:        store,
		backend:      backend,
		nav:          nav,
		logger:       logger,
		opts:         o,
		avatarURL:    o.DefaultAvatarURL,
		loading:      true,
		subs:         make(map[int]chan Snapshot),
		watchdogStop: make(chan struct{}),
		watchdogDone: make(chan struct{}),
	}

	m.avatarCache = ttlcache.New(
		ttlcache.WithTTL[string, string](o.AvatarCacheTTL),
		ttlcache.WithDisableTouchOnHit[string, string](),
	)
	go m.avatarCache.Start()
	go m.watchdog()

	return m
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe returns a channel that carries a snapshot after every state
// change, seeded with the current one. Slow consumers always see the
// latest state; intermediate states may be skipped. Call cancel to
// release the subscription.
func (m *Manager) Subscribe() (<-chan Snapshot, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan Snapshot, 1)
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	ch <- m.snapshotLocked()

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Login authenticates with the backend and installs the session. Failures
// come back as a Result with display text; session state stays untouched
// apart from the loading flag.
func (m *Manager) Login(ctx context.Context, creds domain.LoginCredentials) Result {
	epoch := m.beginOp()

	payload, err := m.backend.Login(ctx, creds)
	if err != nil {
		m.logger.Warn(ctx, "login failed", log.Fields{"error": err.Error()})
		m.commit(ctx, epoch, func() { m.loading = false })
		return Result{Error: userMessage(err, "Login failed. Please try again.")}
	}

	m.installSession(ctx, epoch, payload)
	return Result{Success: true}
}

// Register creates an account and signs it in; same contract as Login.
func (m *Manager) Register(ctx context.Context, creds domain.RegisterCredentials) Result {
	epoch := m.beginOp()

	payload, err := m.backend.Register(ctx, creds)
	if err != nil {
		m.logger.Warn(ctx, "registration failed", log.Fields{"error": err.Error()})
		m.commit(ctx, epoch, func() { m.loading = false })
		return Result{Error: userMessage(err, "Registration failed. Please try again.")}
	}

	m.installSession(ctx, epoch, payload)
	return Result{Success: true}
}

// Logout ends the session. The remote call is best-effort: local state is
// cleared and the user is sent to the login route no matter what happens
// on the wire.
func (m *Manager) Logout(ctx context.Context) {
	m.beginOp()

	if err := m.backend.Logout(ctx); err != nil {
		m.logger.Warn(ctx, "remote logout failed, clearing local session anyway",
			log.Fields{"error": err.Error()})
	}

	// Local teardown must survive a cancelled request context.
	storeCtx := context.WithoutCancel(ctx)
	if err := m.store.Clear(storeCtx); err != nil {
		m.logger.Error(storeCtx, "clearing tokens on logout failed", err)
	}
	m.avatarCache.DeleteAll()

	m.mu.Lock()
	m.epoch++ // anything that raced in is void now
	m.user = nil
	m.authed = false
	m.avatarURL = m.opts.DefaultAvatarURL
	m.loading = false
	m.publishLocked()
	m.mu.Unlock()

	m.nav.Navigate(m.opts.LoginRoute)
}

// SetAvatarURL overrides the displayed avatar, e.g. right after an upload
// completes, without re-running resolution.
func (m *Manager) SetAvatarURL(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.avatarURL = url
	m.publishLocked()
}

// Close tears down the watchdog, the avatar cache and all subscriptions.
// The manager must not be used afterwards.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		close(m.watchdogStop)
		<-m.watchdogDone
		m.avatarCache.Stop()

		m.mu.Lock()
		m.epoch++
		for id, ch := range m.subs {
			delete(m.subs, id)
			close(ch)
		}
		m.mu.Unlock()
	})
	return nil
}

// installSession persists the credential triple and publishes the
// authenticated state. The access token is written last: if an earlier
// write fails, its absence alone forces a clean re-authentication.
func (m *Manager) installSession(ctx context.Context, epoch uint64, payload *domain.AuthPayload) {
	if err := m.store.SetRefreshToken(ctx, payload.RefreshToken); err != nil {
		m.logger.Error(ctx, "persisting refresh token failed", err)
	}
	if err := m.store.SetUserID(ctx, payload.User.ID); err != nil {
		m.logger.Error(ctx, "persisting user id failed", err)
	}
	if err := m.store.SetAccessToken(ctx, payload.AccessToken); err != nil {
		m.logger.Error(ctx, "persisting access token failed", err)
	}

	avatar := m.resolveAvatarURL(ctx, payload.AccessToken, payload.User.AvatarURL)

	if m.commit(ctx, epoch, func() {
		m.user = payload.User
		m.avatarURL = avatar
		m.authed = !tokenstore.IsTokenExpired(payload.AccessToken, m.opts.ExpiryBuffer)
		m.loading = false
	}) {
		m.logger.Info(ctx, "session established", log.Fields{"user_id": payload.User.ID})
		m.nav.Navigate(m.opts.LandingRoute)
	}
}

// beginOp marks the start of a session-mutating operation: it bumps the
// epoch so any in-flight passive work is voided, and raises the loading
// flag.
func (m *Manager) beginOp() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch++
	m.loading = true
	m.publishLocked()
	return m.epoch
}

// commit applies fn under the lock iff ctx is still live and the state has
// not been superseded by a newer operation. Reports whether fn ran.
func (m *Manager) commit(ctx context.Context, epoch uint64, fn func()) bool {
	if ctx != nil && ctx.Err() != nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.epoch {
		return false
	}
	fn()
	m.publishLocked()
	return true
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{
		User:            m.user,
		AvatarURL:       m.avatarURL,
		IsAuthenticated: m.authed,
		IsLoading:       m.loading,
	}
}

// publishLocked pushes the current state to every subscriber without ever
// blocking: each channel holds one slot which is drained and refilled, so
// a subscriber's next receive is always the latest snapshot.
func (m *Manager) publishLocked() {
	snap := m.snapshotLocked()
	for _, ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
