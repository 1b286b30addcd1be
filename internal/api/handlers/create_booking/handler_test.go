package create_booking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PartyVenue-BookingService/internal/api/handlers"
	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PartyVenue-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PartyVenue-BookingService/internal/infra/storage/storagetest"
	"github.com/m04kA/PartyVenue-BookingService/internal/service/pricing"
	createBooking "github.com/m04kA/PartyVenue-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/PartyVenue-BookingService/pkg/keylock"
	"github.com/m04kA/PartyVenue-BookingService/pkg/logger"
	"github.com/m04kA/PartyVenue-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/PartyVenue-BookingService/pkg/txmanager"
)

func newTestHandler(t *testing.T, policy domain.AllocationPolicy) *Handler {
	t.Helper()

	db := storagetest.NewSQLite(t)
	repo := bookingRepo.NewRepository(db, psqlbuilder.New(psqlbuilder.DialectSQLite))
	log := logger.NewNop()

	uc := createBooking.NewUseCase(
		repo,
		domain.DefaultSlotCalendar(),
		keylock.New(),
		txmanager.NewTransactionManager(db),
		policy,
		nil,
		log,
	)

	return NewHandler(uc, domain.DefaultSlotCalendar(), pricing.NewService(domain.DefaultCatalog(), log), log)
}

func validRequest(date, slot string, overflow bool) map[string]interface{} {
	return map[string]interface{}{
		"eventDate":         date,
		"slotCode":          slot,
		"overflowConfirmed": overflow,
		"details": map[string]interface{}{
			"celebrantName":  "Mia",
			"childrenCount":  10,
			"adultsCount":    5,
			"package":        "experience",
			"cateringBaby":   "menu_pizza",
			"cakeChoice":     "internal",
			"cakeType":       "standard",
			"extras":         []string{"popcorn"},
			"signatureDate":  "2024-05-01",
			"signaturePng":   domain.SignatureDataURLPrefix + "iVBORw0KGgo=",
			"consentPrivacy": true,
		},
	}
}

func doRequest(t *testing.T, h *Handler, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(raw))
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandler_CreatesBookingsInAreas(t *testing.T) {
	h := newTestHandler(t, domain.AllocationPolicy{})

	for _, wantArea := range []int{1, 2} {
		w := doRequest(t, h, validRequest("2024-06-08", "afternoon", false), nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, wantArea, resp.Area)
		assert.Equal(t, "AFTERNOON", resp.SlotCode)
		assert.Equal(t, "17:00", resp.StartTime)
		assert.Equal(t, "EUR 386,00", resp.EstimatedTotal)
		assert.Equal(t, int64(38600), resp.Details.EstimatedTotalCents)
		assert.NotEmpty(t, resp.Details.ContractText)
		require.NotNil(t, resp.Quote)
		assert.Equal(t, int64(38600), resp.Quote.TotalCents)
	}

	// третья без подтверждения: 409 с занятостью
	w := doRequest(t, h, validRequest("2024-06-08", "AFTERNOON", false), nil)
	require.Equal(t, http.StatusConflict, w.Code)

	var conflict AllocationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conflict))
	assert.Equal(t, codeOverflowNotConfirmed, conflict.Code)
	assert.Equal(t, 2, conflict.Occupancy)
	assert.Equal(t, 2, conflict.Capacity)

	// с подтверждением: зона 3
	w = doRequest(t, h, validRequest("2024-06-08", "AFTERNOON", true), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Area)
	assert.True(t, resp.Overflow)
}

func TestHandler_InvalidSlot(t *testing.T) {
	h := newTestHandler(t, domain.AllocationPolicy{})

	// 2024-06-03 - понедельник, утреннего слота нет
	w := doRequest(t, h, validRequest("2024-06-03", "MORNING", false), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, msgInvalidSlot, body.Error)
}

func TestHandler_SlotErrorComesBeforeFormErrors(t *testing.T) {
	h := newTestHandler(t, domain.AllocationPolicy{})

	tests := []struct {
		name string
		date string
		slot string
	}{
		{name: "malformed date", date: "08/06/2024", slot: "AFTERNOON"},
		{name: "empty date", date: "", slot: "AFTERNOON"},
		{name: "unknown slot", date: "2024-06-08", slot: "NIGHT"},
		{name: "weekday morning", date: "2024-06-03", slot: "MORNING"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(tt.date, tt.slot, false)
			details := req["details"].(map[string]interface{})
			details["consentPrivacy"] = false
			details["celebrantName"] = ""

			w := doRequest(t, h, req, nil)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, msgInvalidSlot, body.Error)
			assert.Empty(t, body.Details)
		})
	}
}

func TestHandler_SlotFull(t *testing.T) {
	h := newTestHandler(t, domain.AllocationPolicy{HardCap: 1})

	w := doRequest(t, h, validRequest("2024-06-08", "MORNING", false), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, h, validRequest("2024-06-08", "MORNING", true), nil)
	require.Equal(t, http.StatusConflict, w.Code)

	var conflict AllocationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conflict))
	assert.Equal(t, codeSlotFull, conflict.Code)
	assert.Equal(t, 1, conflict.Occupancy)
}

func TestHandler_IdempotencyKeyHeader(t *testing.T) {
	h := newTestHandler(t, domain.AllocationPolicy{})
	headers := map[string]string{IdempotencyKeyHeader: "form-123"}

	first := doRequest(t, h, validRequest("2024-06-08", "AFTERNOON", false), headers)
	require.Equal(t, http.StatusCreated, first.Code)

	second := doRequest(t, h, validRequest("2024-06-08", "AFTERNOON", false), headers)
	require.Equal(t, http.StatusOK, second.Code)

	var a, b BookingResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	assert.Equal(t, a.ID, b.ID)
	assert.True(t, b.Replayed)
	assert.Nil(t, b.Quote)
	assert.Equal(t, "EUR 386,00", b.EstimatedTotal)
}

func TestHandler_BadRequests(t *testing.T) {
	h := newTestHandler(t, domain.AllocationPolicy{})

	t.Run("malformed body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader([]byte("{")))
		w := httptest.NewRecorder()
		h.Handle(w, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("struct validation", func(t *testing.T) {
		req := validRequest("2024-06-08", "AFTERNOON", false)
		req["idempotencyKey"] = strings.Repeat("k", 129)
		w := doRequest(t, h, req, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var body handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, msgValidationFailed, body.Error)
		assert.Contains(t, body.Details, "idempotencyKey")
	})

	t.Run("party rules", func(t *testing.T) {
		req := validRequest("2024-06-08", "AFTERNOON", false)
		req["details"].(map[string]interface{})["consentPrivacy"] = false
		w := doRequest(t, h, req, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var body handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body.Details, pricing.FieldConsentPrivacy)
	})
}
