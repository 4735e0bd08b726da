package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/mcr-results/schedule"
	"github.com/Dosada05/mcr-results/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts}
}

// GetStatus godoc
// @Summary Источник и свежесть данных
// @Tags tournament
// @Produce json
// @Success 200 {object} services.Status
// @Failure 503 {object} map[string]interface{} "Данные ещё не загружены"
// @Router /api/status [get]
func (h *TournamentHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.tournamentService.Status(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, status, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetTeams godoc
// @Summary Справочник команд по группам, отсортированный по посеву
// @Tags tournament
// @Produce json
// @Success 200 {object} services.TeamsView
// @Failure 503 {object} map[string]interface{}
// @Router /api/teams [get]
func (h *TournamentHandler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.tournamentService.Teams(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, teams, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetSchedule godoc
// @Summary Расписание матчей по дням
// @Description Без параметра team применяется последний сохранённый фильтр; пустой team= показывает всё.
// @Tags tournament
// @Produce json
// @Param team query string false "Фильтр по названию команды"
// @Param match query string false "ID выделенного матча"
// @Param day query string false "Активный день (patek, sobota, nedele)"
// @Success 200 {object} schedule.View
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]interface{}
// @Router /api/schedule [get]
func (h *TournamentHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	vc := schedule.ViewContext{
		TeamFilter:   q.Get("team"),
		FocusMatchID: q.Get("match"),
		ActiveDay:    q.Get("day"),
	}
	if !q.Has("team") {
		saved, err := h.tournamentService.TeamFilter(r.Context())
		if err != nil {
			// Испорченный фильтр не должен ломать расписание
			slog.WarnContext(r.Context(), "saved team filter ignored", slog.Any("error", err))
		}
		vc.TeamFilter = saved
	}

	view, err := h.tournamentService.Schedule(r.Context(), vc)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetStandings godoc
// @Summary Турнирные таблицы групп с учётом личных встреч
// @Tags tournament
// @Produce json
// @Success 200 {object} services.StandingsView
// @Failure 503 {object} map[string]interface{}
// @Router /api/standings [get]
func (h *TournamentHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	view, err := h.tournamentService.Standings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBracket godoc
// @Summary Сетка плей-офф
// @Tags tournament
// @Produce json
// @Success 200 {object} services.BracketView
// @Failure 503 {object} map[string]interface{}
// @Router /api/bracket [get]
func (h *TournamentHandler) GetBracket(w http.ResponseWriter, r *http.Request) {
	view, err := h.tournamentService.Bracket(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetChanges godoc
// @Summary Последние изменения времени матчей
// @Tags tournament
// @Produce json
// @Success 200 {object} services.ChangesView
// @Router /api/changes [get]
func (h *TournamentHandler) GetChanges(w http.ResponseWriter, r *http.Request) {
	view, err := h.tournamentService.Changes(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetFilter godoc
// @Summary Последний применённый фильтр команды
// @Tags tournament
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/filter [get]
func (h *TournamentHandler) GetFilter(w http.ResponseWriter, r *http.Request) {
	team, err := h.tournamentService.TeamFilter(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type setFilterInput struct {
	Team string `json:"team"`
}

// PutFilter godoc
// @Summary Сохранить фильтр команды
// @Tags tournament
// @Accept json
// @Produce json
// @Param input body setFilterInput true "Название команды, пустое значение сбрасывает фильтр"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]interface{}
// @Router /api/filter [put]
func (h *TournamentHandler) PutFilter(w http.ResponseWriter, r *http.Request) {
	var input setFilterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.tournamentService.SetTeamFilter(r.Context(), input.Team)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
