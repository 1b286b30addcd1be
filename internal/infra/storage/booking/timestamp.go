package booking

import (
	"fmt"
	"time"
)

// Форматы created_at: PostgreSQL отдает time.Time, SQLite - текст в одном из этих форматов
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05",
}

// timestampColumn sql.Scanner для created_at, одинаково работающий с обоими драйверами
type timestampColumn struct {
	Time time.Time
}

func (c *timestampColumn) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		c.Time = v.UTC()
		return nil
	case string:
		return c.parse(v)
	case []byte:
		return c.parse(string(v))
	case nil:
		c.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (c *timestampColumn) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			c.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp format %q", s)
}
