package middleware

import (
	"net/http"
	"net/url"
	"slices"
)

// RestrictOrigins returns middleware that rejects requests carrying an
// Origin header that is neither listed in origins nor the server's own host.
// Requests without an Origin header, such as those from CLIs and editor
// extension hosts, pass through. A "*" origin allows any origin.
func RestrictOrigins(origins []string) func(http.Handler) http.Handler {
	wildcard := slices.Contains(origins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || wildcard || slices.Contains(origins, origin) || sameHost(origin, r.Host) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"origin not allowed"}` + "\n"))
		})
	}
}

func sameHost(origin, host string) bool {
	u, err := url.Parse(origin)
	return err == nil && u.Host != "" && u.Host == host
}
