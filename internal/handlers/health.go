package handlers

import (
	"net/http"

	"github.com/nkiryanov/insightboard/internal/handlers/render"
)

func handleHealthz() http.Handler {
	type response struct {
		Status string `json:"status"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		render.JSON(w, response{Status: "ok"})
	})
}
