package get_calendar

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "github.com/m04kA/PartyVenue-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PartyVenue-BookingService/internal/infra/storage/storagetest"
	"github.com/m04kA/PartyVenue-BookingService/internal/service/calendar"
	"github.com/m04kA/PartyVenue-BookingService/internal/service/calendar/models"
	"github.com/m04kA/PartyVenue-BookingService/pkg/logger"
	"github.com/m04kA/PartyVenue-BookingService/pkg/psqlbuilder"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	db := storagetest.NewSQLite(t)
	repo := bookingRepo.NewRepository(db, psqlbuilder.New(psqlbuilder.DialectSQLite))
	h := NewHandler(calendar.NewService(repo, logger.NewNop()), logger.NewNop())

	r := mux.NewRouter()
	r.HandleFunc("/calendar/weeks/{date}", h.HandleWeek).Methods(http.MethodGet)
	r.HandleFunc("/calendar/{year}/{month}", h.HandleMonth).Methods(http.MethodGet)
	r.HandleFunc("/calendar/{year}", h.HandleYear).Methods(http.MethodGet)
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandler_Month(t *testing.T) {
	r := newTestRouter(t)

	w := get(r, "/calendar/2024/6")
	require.Equal(t, http.StatusOK, w.Code)

	var month models.MonthOverview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &month))
	assert.Equal(t, "June 2024", month.Title)
	require.Len(t, month.Weeks, 6)
	for _, week := range month.Weeks {
		assert.Len(t, week, 7)
	}
	require.NotNil(t, month.Weeks[0][5].Date)
	assert.Equal(t, "2024-06-01", *month.Weeks[0][5].Date)
	assert.Nil(t, month.Weeks[0][4].Date)
	assert.Equal(t, models.MonthRef{Year: 2024, Month: 5}, month.Prev)

	assert.Equal(t, http.StatusBadRequest, get(r, "/calendar/2024/13").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/calendar/2024/june").Code)
}

func TestHandler_Week(t *testing.T) {
	r := newTestRouter(t)

	w := get(r, "/calendar/weeks/2024-06-05")
	require.Equal(t, http.StatusOK, w.Code)

	var week models.WeekOverview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &week))
	assert.Equal(t, "2024-06-03", week.Start)
	assert.Equal(t, "2024-06-09", week.End)
	assert.Len(t, week.Days, 7)

	assert.Equal(t, http.StatusBadRequest, get(r, "/calendar/weeks/yesterday").Code)
}

func TestHandler_Year(t *testing.T) {
	r := newTestRouter(t)

	w := get(r, "/calendar/2024")
	require.Equal(t, http.StatusOK, w.Code)

	var year models.YearOverview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &year))
	assert.Len(t, year.Months, 12)
	assert.Zero(t, year.Total)

	assert.Equal(t, http.StatusBadRequest, get(r, "/calendar/20240").Code)
}
