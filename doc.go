// Package sessionkit manages the client side of the Wavely authentication
// lifecycle: credential persistence, silent token renewal on startup, a
// reactive auth state that route guards can subscribe to, and avatar URL
// resolution.
//
// The entry point is Manager. Construct one per process with a token
// store, a backend client, and a navigator, call Init once at startup, and
// Close on shutdown:
//
//	store, _ := tokenstore.NewFileStore("")
//	backend := apiclient.New(cfg.APIBaseURL)
//	mgr := sessionkit.NewManager(store, backend, nav, logger, sessionkit.Options{})
//	defer mgr.Close()
//	mgr.Init(ctx)
//
// State is read through Snapshot or pushed through Subscribe. Login,
// Register and Logout mutate the session; their effect always wins over a
// late-resolving initializer.
package sessionkit
