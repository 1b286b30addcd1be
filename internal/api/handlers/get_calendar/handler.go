package get_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PartyVenue-BookingService/internal/api/handlers"
	"github.com/m04kA/PartyVenue-BookingService/internal/service/calendar"
)

const (
	msgInvalidYear  = "некорректный год"
	msgInvalidMonth = "некорректный месяц, ожидается 1..12"
	msgInvalidDate  = "некорректная дата, ожидается YYYY-MM-DD"
	msgInvalidInput = "некорректные параметры календаря"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleMonth GET /api/v1/calendar/{year}/{month}
func (h *Handler) HandleMonth(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		h.logger.Warn("GET /calendar/{year}/{month} - Invalid year: %q", vars["year"])
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil {
		h.logger.Warn("GET /calendar/{year}/{month} - Invalid month: %q", vars["month"])
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	overview, err := h.service.Month(r.Context(), year, month)
	if err != nil {
		h.respondError(w, "GET /calendar/{year}/{month}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, overview)
}

// HandleWeek GET /api/v1/calendar/weeks/{date}
func (h *Handler) HandleWeek(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	overview, err := h.service.Week(r.Context(), date)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidInput) {
			h.logger.Warn("GET /calendar/weeks/{date} - Invalid date: %q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.respondError(w, "GET /calendar/weeks/{date}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, overview)
}

// HandleYear GET /api/v1/calendar/{year}
func (h *Handler) HandleYear(w http.ResponseWriter, r *http.Request) {
	yearStr := mux.Vars(r)["year"]

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		h.logger.Warn("GET /calendar/{year} - Invalid year: %q", yearStr)
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	overview, err := h.service.Year(r.Context(), year)
	if err != nil {
		h.respondError(w, "GET /calendar/{year}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, overview)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, calendar.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed to build calendar: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
