package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware(handler.logger))
	r.Use(loggingMiddleware(handler.logger))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeSuccess(w, http.StatusOK, "ok", nil) })
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(tokenMiddleware)
		r.Get("/options", handler.options)
		r.Post("/folders/resolve", handler.resolveFolder)
		r.Post("/proposals", handler.propose)
		r.Post("/proposals/recompose", handler.recompose)
		r.Post("/renames", handler.rename)
	})
	return r
}
