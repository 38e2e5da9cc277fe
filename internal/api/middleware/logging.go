package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/clubroster/internal/middleware"
)

// Logging logs API requests. The query string is left out so search terms
// stay out of the access log.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("surface", "api")))
}
