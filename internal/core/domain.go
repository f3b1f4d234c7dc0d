package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

const (
	CategoryFood          = "Food"
	CategoryTransport     = "Transport"
	CategoryBills         = "Bills"
	CategoryEntertainment = "Entertainment"
	CategoryOther         = "Other"
)

// DefaultCategory is substituted for empty categories at aggregation time.
const DefaultCategory = CategoryOther

// Categories lists the labels offered at input time.
var Categories = []string{
	CategoryFood,
	CategoryTransport,
	CategoryBills,
	CategoryEntertainment,
	CategoryOther,
}

type (
	// Date is a calendar date at day granularity. The time component is
	// always midnight UTC.
	Date struct {
		time.Time
	}

	// Transaction is a single dated, categorized, signed monetary record.
	// Positive amounts are income, negative amounts are spending.
	Transaction struct {
		ID          int64   `json:"id"`
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Date        Date    `json:"date"`
	}
)

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")

	// ErrIncompleteInput is the single consolidated rejection surfaced to the
	// user; it never names the failing field.
	ErrIncompleteInput = errors.New("please fill all fields")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MonthKey returns the zero-padded "YYYY-MM" bucket for the date.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Validate checks the store-level invariants of a formed record. The category
// may legitimately be empty; it is normalized only during aggregation.
func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return ErrInvalidAmount
	}
	return t.Date.Validate()
}
