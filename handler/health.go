package handler

import (
	"context"
	"net/http"

	"ewintr.nl/potongin/storage"
)

type StatusReporter interface {
	Status(ctx context.Context) storage.Status
}

type HealthAPI struct {
	store StatusReporter
}

func NewHealthAPI(store StatusReporter) *HealthAPI {
	return &HealthAPI{store: store}
}

func (h *HealthAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		Message(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	status := h.store.Status(r.Context())
	resp := struct {
		Backend string         `json:"backend"`
		Store   storage.Status `json:"store"`
	}{
		Backend: "running",
		Store:   status,
	}
	code := http.StatusOK
	if !status.Connected {
		code = http.StatusServiceUnavailable
	}

	JSON(w, code, resp)
}
