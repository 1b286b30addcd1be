package get_contract_pdf

import (
	"context"
	"io"
	"time"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	"github.com/m04kA/PartyVenue-BookingService/internal/infra/render/contractpdf"
)

type BookingService interface {
	GetDomainByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type SlotCalendar interface {
	Find(d time.Time, code domain.SlotCode) (domain.Slot, bool)
}

type Catalog interface {
	Package(code domain.PackageCode) (domain.Package, bool)
}

type Renderer interface {
	Render(w io.Writer, doc contractpdf.Document) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
