package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/clubroster/internal/api/apierr"
	"github.com/mcoot/clubroster/internal/middleware"
)

// Recovery turns handler panics into the generic INTERNAL_ERROR body
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("surface", "api")), func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
