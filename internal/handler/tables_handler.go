package handlers

import (
	"net/http"

	"yatube/internal/logger"
)

type HealthResponse struct {
	Status      string `json:"status"`
	CountTables int    `json:"countTables"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.TablesService.GetCountTablesDB(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("база данных недоступна", "error", err)
		WriteSuccess(w, HealthResponse{Status: "unavailable"}, http.StatusServiceUnavailable)
		return
	}

	WriteSuccess(w, HealthResponse{Status: "ok", CountTables: count}, http.StatusOK)
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, ErrorResponse{Error: "Страница не найдена", Path: r.URL.Path}, http.StatusNotFound)
}

func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
}
