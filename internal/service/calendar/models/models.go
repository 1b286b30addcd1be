package models

// DayCell ячейка сетки месяца. Date пустой для ячеек вне месяца.
type DayCell struct {
	Date  *string `json:"date"` // "2024-06-01"
	Day   int     `json:"day,omitempty"`
	Count int     `json:"count"`
	Level string  `json:"level,omitempty"` // free, partial, busy
}

// MonthRef ссылка на соседний месяц
type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// MonthOverview сетка месяца 6x7, недели начинаются с понедельника
type MonthOverview struct {
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Title string      `json:"title"` // "June 2024"
	Total int         `json:"total"`
	Weeks [][]DayCell `json:"weeks"`
	Prev  MonthRef    `json:"prev"`
	Next  MonthRef    `json:"next"`
}

// DayCount количество бронирований за день недели
type DayCount struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Count   int    `json:"count"`
	Level   string `json:"level"`
}

// WeekOverview неделя с понедельника по воскресенье
type WeekOverview struct {
	Start string     `json:"start"`
	End   string     `json:"end"`
	Total int        `json:"total"`
	Days  []DayCount `json:"days"`
	Prev  string     `json:"prev"` // понедельник предыдущей недели
	Next  string     `json:"next"` // понедельник следующей недели
}

// MonthCount количество бронирований за месяц года
type MonthCount struct {
	Month int    `json:"month"`
	Name  string `json:"name"`
	Count int    `json:"count"`
	Level string `json:"level"`
}

// YearOverview сводка года по месяцам
type YearOverview struct {
	Year   int          `json:"year"`
	Total  int          `json:"total"`
	Months []MonthCount `json:"months"`
}
