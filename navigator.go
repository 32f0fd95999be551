package sessionkit

// Navigator receives the manager's route changes: the landing route after
// a successful login or registration, the login route after logout or an
// irrecoverable session failure. Which surface reacts (a router, a TUI, a
// test recorder) is up to the embedder.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// NopNavigator ignores all navigation requests.
func NopNavigator() Navigator {
	return NavigatorFunc(func(string) {})
}
