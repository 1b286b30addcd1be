package contractpdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
)

// Document данные, которые попадают в PDF договора
type Document struct {
	BookingID      int64
	CreatedAt      time.Time
	EventDate      string
	SlotLabel      string
	StartTime      string
	EndTime        string
	Area           int
	Overflow       bool
	CelebrantName  string
	CelebrantAge   *int
	ChildrenCount  int
	AdultsCount    int
	Package        string
	Theme          string
	Notes          string
	Deposit        string
	EstimatedTotal string
	Parents        []Field
	ContractText   string
	SignatureDate  string
	SignaturePNG   string // data:image/png;base64,...
}

// Field подпись и значение строки в блоке данных
type Field struct {
	Label string
	Value string
}

// FromBooking собирает документ из бронирования и подписи слота
func FromBooking(b *domain.Booking, slotLabel, packageLabel, estimatedTotal string) Document {
	d := b.Details

	doc := Document{
		BookingID:      b.ID,
		CreatedAt:      b.CreatedAt,
		EventDate:      b.EventDateString(),
		SlotLabel:      slotLabel,
		StartTime:      b.StartTime.String(),
		EndTime:        b.EndTime.String(),
		Area:           b.Area,
		Overflow:       b.IsOverflow(),
		CelebrantName:  d.CelebrantName,
		CelebrantAge:   d.CelebrantAge,
		ChildrenCount:  d.ChildrenCount,
		AdultsCount:    d.AdultsCount,
		Package:        packageLabel,
		Theme:          d.Theme,
		Notes:          d.Notes,
		Deposit:        d.Deposit,
		EstimatedTotal: estimatedTotal,
		ContractText:   d.ContractText,
		SignatureDate:  d.SignatureDate,
		SignaturePNG:   d.SignaturePNG,
	}

	for _, f := range []Field{
		{Label: "Mother", Value: joinNonEmpty(d.MotherName, d.MotherPhone)},
		{Label: "Father", Value: joinNonEmpty(d.FatherName, d.FatherPhone)},
		{Label: "Address", Value: d.Address},
		{Label: "Email", Value: d.Email},
	} {
		if f.Value != "" {
			doc.Parents = append(doc.Parents, f)
		}
	}

	return doc
}

func (d Document) eventFields() []Field {
	area := fmt.Sprintf("%d", d.Area)
	if d.Overflow {
		area += " (overflow)"
	}
	age := ""
	if d.CelebrantAge != nil {
		age = fmt.Sprintf("%d", *d.CelebrantAge)
	}

	fields := []Field{
		{Label: "Date", Value: d.EventDate},
		{Label: "Slot", Value: fmt.Sprintf("%s %s-%s", d.SlotLabel, d.StartTime, d.EndTime)},
		{Label: "Area", Value: area},
		{Label: "Celebrant", Value: d.CelebrantName},
		{Label: "Age", Value: age},
		{Label: "Guests", Value: fmt.Sprintf("%d children, %d adults", d.ChildrenCount, d.AdultsCount)},
		{Label: "Package", Value: d.Package},
		{Label: "Theme", Value: d.Theme},
		{Label: "Notes", Value: d.Notes},
		{Label: "Deposit", Value: d.Deposit},
		{Label: "Estimated total", Value: d.EstimatedTotal},
	}

	result := fields[:0]
	for _, f := range fields {
		if f.Value != "" {
			result = append(result, f)
		}
	}
	return result
}

func joinNonEmpty(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}
