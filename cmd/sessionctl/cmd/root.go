package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wavely-app/sessionkit"
	"github.com/wavely-app/sessionkit/apiclient"
	"github.com/wavely-app/sessionkit/config"
	"github.com/wavely-app/sessionkit/log"
	"github.com/wavely-app/sessionkit/tokenstore"
)

var rootCmd = &cobra.Command{
	Use:           "sessionctl",
	Short:         "sessionctl manages the local Wavely session from the terminal",
	Long:          `A command-line interface for logging in to Wavely, inspecting the stored session and tokens, and logging out.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newManager wires a fully configured Manager for one CLI invocation.
// The returned cleanup closes the manager and the token store.
func newManager() (*sessionkit.Manager, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := log.NewZerologAdapter(level, cfg.LogPretty)

	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	backend := apiclient.New(cfg.APIBaseURL, apiclient.WithLogger(logger))

	nav := sessionkit.NavigatorFunc(func(route string) {
		fmt.Println("->", route)
	})

	mgr := sessionkit.NewManager(store, backend, nav, logger, sessionkit.Options{
		LoginRoute:           cfg.LoginRoute,
		LandingRoute:         cfg.LandingRoute,
		DefaultAvatarURL:     cfg.DefaultAvatarURL,
		AvatarResolveTimeout: cfg.AvatarResolveTimeout,
		AvatarCacheTTL:       cfg.AvatarCacheTTL,
		ExpiryBuffer:         cfg.ExpiryBuffer,
		WatchdogInterval:     cfg.WatchdogInterval,
	})

	cleanup := func() {
		_ = mgr.Close()
		_ = store.Close()
	}
	return mgr, cleanup, nil
}

func openStore(cfg *config.Config) (tokenstore.Store, error) {
	switch cfg.TokenStoreBackend {
	case config.StoreBackendFile:
		return tokenstore.NewFileStore(cfg.TokenStorePath)
	case config.StoreBackendMemory:
		return tokenstore.NewMemoryStore(), nil
	case config.StoreBackendRedis:
		return tokenstore.NewRedisStore(tokenstore.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return nil, fmt.Errorf("unknown token store backend %q", cfg.TokenStoreBackend)
	}
}
