package get_contract_pdf

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PartyVenue-BookingService/internal/api/handlers"
	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	"github.com/m04kA/PartyVenue-BookingService/internal/infra/render/contractpdf"
	"github.com/m04kA/PartyVenue-BookingService/internal/service/bookings"
	pricingModels "github.com/m04kA/PartyVenue-BookingService/internal/service/pricing/models"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
)

type Handler struct {
	service  BookingService
	calendar SlotCalendar
	catalog  Catalog
	renderer Renderer
	logger   Logger
}

func NewHandler(service BookingService, calendar SlotCalendar, catalog Catalog, renderer Renderer, logger Logger) *Handler {
	return &Handler{
		service:  service,
		calendar: calendar,
		catalog:  catalog,
		renderer: renderer,
		logger:   logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/contract.pdf
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("GET /bookings/{id}/contract.pdf - Invalid booking ID: %q", mux.Vars(r)["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetDomainByID(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/contract.pdf - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{id}/contract.pdf - Failed to get booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Подпись слота и пакета берем из текущих справочников, остальное из бронирования
	slotLabel := string(booking.SlotCode)
	if slot, ok := h.calendar.Find(booking.EventDate, booking.SlotCode); ok {
		slotLabel = slot.Label
	}
	packageLabel := booking.Details.Package
	if pkg, ok := h.catalog.Package(domain.PackageCode(booking.Details.Package)); ok {
		packageLabel = pkg.Label
	}

	doc := contractpdf.FromBooking(booking, slotLabel, packageLabel,
		pricingModels.FormatEUR(booking.Details.EstimatedTotalCents))

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, doc); err != nil {
		h.logger.Error("GET /bookings/{id}/contract.pdf - Failed to render: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"contract-%d.pdf\"", bookingID))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)

	h.logger.Info("GET /bookings/{id}/contract.pdf - Contract rendered: booking_id=%d", bookingID)
}
