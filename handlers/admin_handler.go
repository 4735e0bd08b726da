package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/mcr-results/services"
)

type AdminHandler struct {
	tournamentService services.TournamentService
}

func NewAdminHandler(ts services.TournamentService) *AdminHandler {
	return &AdminHandler{tournamentService: ts}
}

// Refresh godoc
// @Summary Перезагрузить данные турнира
// @Tags admin
// @Produce json
// @Success 200 {object} services.Status
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /api/admin/refresh [post]
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshErr := h.tournamentService.Refresh(r.Context())
	if refreshErr != nil && !errors.Is(refreshErr, services.ErrDataUnavailable) {
		serverErrorResponse(w, r, refreshErr)
		return
	}

	// Частичная недоступность видна в статусе ресурсов
	status, err := h.tournamentService.Status(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, status, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PublishBackup godoc
// @Summary Опубликовать закэшированные данные как резервную копию
// @Tags admin
// @Produce json
// @Param resource path string true "rozpis, vysledky или tymy"
// @Success 201 {object} storage.UploadResult
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 501 {object} map[string]string
// @Security BearerAuth
// @Router /api/admin/backups/{resource} [post]
func (h *AdminHandler) PublishBackup(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")

	result, err := h.tournamentService.PublishBackup(r.Context(), resource)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListCache godoc
// @Summary Список ключей кэша
// @Tags admin
// @Produce json
// @Success 200 {object} map[string][]string
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /api/admin/cache [get]
func (h *AdminHandler) ListCache(w http.ResponseWriter, r *http.Request) {
	keys, err := h.tournamentService.CacheKeys(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"keys": keys}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PurgeCache godoc
// @Summary Удалить закэшированные данные ресурса
// @Tags admin
// @Param resource path string true "rozpis, vysledky или tymy"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/admin/cache/{resource} [delete]
func (h *AdminHandler) PurgeCache(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")

	if err := h.tournamentService.PurgeCache(r.Context(), resource); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
