package middleware

import "net/http"

// routeSetter is implemented by the access log's statusWriter.
type routeSetter interface {
	SetRoute(string)
}

// WithRoute records the matched ServeMux pattern (e.g. "GET /users/{username}")
// so Logging can report it in the "route" field instead of the raw path.
func WithRoute(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if setter, ok := w.(routeSetter); ok {
			setter.SetRoute(pattern)
		}
		next.ServeHTTP(w, r)
	})
}
