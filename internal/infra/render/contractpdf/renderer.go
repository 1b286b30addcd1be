package contractpdf

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
)

var (
	// ErrRender ошибка построения PDF
	ErrRender = errors.New("contractpdf: render failed")
	// ErrSignature подпись не является корректным PNG
	ErrSignature = errors.New("contractpdf: invalid signature image")
)

const (
	fontFamily      = "Helvetica"
	lineHeight      = 5.0
	labelWidth      = 40.0
	signatureWidth  = 90.0
	signatureHeight = 35.0
	signatureName   = "signature"

	// Печатается вместо подписи, которую не удалось разобрать
	signatureUnavailable = "(Signature not available in PDF)"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Renderer рендерер договора в PDF
type Renderer struct {
	venueName string
	logger    Logger
}

// NewRenderer создает новый рендерер; venueName печатается в заголовке
func NewRenderer(venueName string, logger Logger) *Renderer {
	return &Renderer{venueName: venueName, logger: logger}
}

// Render пишет PDF договора в w
func (r *Renderer) Render(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(fmt.Sprintf("Booking #%d", doc.BookingID), true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	// 1. Заголовок
	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, 8, tr(r.venueName), "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(0, lineHeight, tr(fmt.Sprintf("Booking #%d, created %s",
		doc.BookingID, doc.CreatedAt.Format("2006-01-02 15:04"))), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// 2. Данные праздника
	r.section(pdf, tr, "EVENT")
	r.fields(pdf, tr, doc.eventFields())

	// 3. Родители и контакты
	if len(doc.Parents) > 0 {
		r.section(pdf, tr, "PARENTS / CONTACTS")
		r.fields(pdf, tr, doc.Parents)
	}

	// 4. Текст договора
	if doc.ContractText != "" {
		r.section(pdf, tr, "CONTRACT")
		pdf.SetFont(fontFamily, "", 9)
		for _, line := range strings.Split(doc.ContractText, "\n") {
			if line == "" {
				pdf.Ln(2)
				continue
			}
			pdf.MultiCell(0, 4.5, tr(line), "", "L", false)
		}
	}

	// 5. Подпись
	r.section(pdf, tr, "SIGNATURE")
	pdf.SetFont(fontFamily, "", 10)
	if doc.SignatureDate != "" {
		pdf.CellFormat(0, lineHeight, tr("Date: "+doc.SignatureDate), "", 1, "L", false, 0, "")
	}
	if doc.SignaturePNG != "" {
		// Битая подпись не мешает получить договор: вместо картинки печатается пометка
		if err := r.signature(pdf, doc.SignaturePNG); err != nil {
			r.logger.Warn("contractpdf: booking_id=%d, signature skipped: %v", doc.BookingID, err)
			pdf.ClearError()
			pdf.SetFont(fontFamily, "I", 10)
			pdf.CellFormat(0, lineHeight, tr(signatureUnavailable), "", 1, "L", false, 0, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: Render - output: %v", ErrRender, err)
	}
	return nil
}

func (r *Renderer) section(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.Ln(2)
	pdf.SetFont(fontFamily, "B", 11)
	pdf.CellFormat(0, 6, tr(title), "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func (r *Renderer) fields(pdf *fpdf.Fpdf, tr func(string) string, fields []Field) {
	for _, f := range fields {
		pdf.SetFont(fontFamily, "B", 10)
		pdf.CellFormat(labelWidth, lineHeight, tr(f.Label+":"), "", 0, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 10)
		pdf.MultiCell(0, lineHeight, tr(f.Value), "", "L", false)
	}
}

func (r *Renderer) signature(pdf *fpdf.Fpdf, dataURL string) error {
	if !strings.HasPrefix(dataURL, domain.SignatureDataURLPrefix) {
		return ErrSignature
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, domain.SignatureDataURLPrefix))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSignature, err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader(signatureName, opts, bytes.NewReader(raw))
	if pdf.Err() {
		return fmt.Errorf("%w: %v", ErrSignature, pdf.Error())
	}

	pdf.Ln(2)
	pdf.ImageOptions(signatureName, pdf.GetX(), pdf.GetY(), signatureWidth, signatureHeight, true, opts, 0, "")
	return nil
}
