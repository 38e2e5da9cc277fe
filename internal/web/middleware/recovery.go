package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/clubroster/internal/middleware"
)

// Recovery creates panic recovery middleware for the web interface
// Returns an HTML error page on panic, or a bare 500 to htmx requests
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	if r.Header.Get("HX-Request") == "true" {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Error | Pickleball Organiser</title></head>
<body>
<h1>Something went wrong</h1>
<p>The organiser hit an unexpected error. Please try again.</p>
<p><a href="/players">Back to player search</a></p>
</body>
</html>`))
}
