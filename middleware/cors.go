package middleware

import "strings"

// AllowOrigin builds the CORS origin predicate: an origin is allowed when it
// matches the configured allow-list exactly, is a vercel.app preview
// deployment, or is a localhost dev server.
func AllowOrigin(allowed []string) func(origin string) bool {
	return func(origin string) bool {
		for _, a := range allowed {
			if origin == a {
				return true
			}
		}
		if strings.HasSuffix(origin, ".vercel.app") {
			return true
		}
		return strings.HasPrefix(origin, "http://localhost") ||
			strings.HasPrefix(origin, "https://localhost")
	}
}
