// Package guard decides whether a client screen may render given the
// current auth state.
package guard

// Default redirect targets.
const (
	SignInPath = "/sign-in"
	HomePath   = "/"
)

// Decision is the outcome of Check. When Allow is false the caller should
// navigate to RedirectTo instead of rendering.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Check guards a screen. requireAuth screens send signed-out users to
// redirectTo (default SignInPath); guest-only screens such as sign-in send
// signed-in users to redirectTo (default HomePath).
func Check(requireAuth, isAuthenticated bool, redirectTo string) Decision {
	switch {
	case requireAuth && !isAuthenticated:
		return Decision{RedirectTo: orDefault(redirectTo, SignInPath)}
	case !requireAuth && isAuthenticated:
		return Decision{RedirectTo: orDefault(redirectTo, HomePath)}
	default:
		return Decision{Allow: true}
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
