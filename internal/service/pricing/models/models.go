package models

import "fmt"

// Виды строк расчета
const (
	LinePackage = "package"
	LineCake    = "cake"
	LineExtra   = "extra"
)

// QuoteLine строка расчета стоимости
type QuoteLine struct {
	Kind       string `json:"kind"` // package, cake, extra
	Key        string `json:"key"`
	Label      string `json:"label"`
	Quantity   int    `json:"quantity"`
	UnitCents  int64  `json:"unitCents"`
	TotalCents int64  `json:"totalCents"`
}

// Quote расчет стоимости праздника в центах
type Quote struct {
	Package      string      `json:"package"`
	Persons      int         `json:"persons"`
	PackageCents int64       `json:"packageCents"`
	CakeCents    int64       `json:"cakeCents"`
	ExtrasCents  int64       `json:"extrasCents"`
	TotalCents   int64       `json:"totalCents"`
	Total        string      `json:"total"` // "EUR 365,00"
	Lines        []QuoteLine `json:"lines"`
	ContractText string      `json:"contractText"`
}

// FormatEUR форматирует сумму в центах: 36500 -> "EUR 365,00"
func FormatEUR(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("EUR %s%d,%02d", sign, cents/100, cents%100)
}
