package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format used by the date pickers.
const DateLayout = "2006-01-02"

// Record is the flat set of values submitted through a resume form.
type Record struct {
	Name             string              `json:"name" validate:"required,max=120,no_control,no_markup"`
	City             string              `json:"city" validate:"max=80,no_control,no_markup"`
	Area             string              `json:"area" validate:"max=80,no_control,no_markup"`
	Zipcode          string              `json:"zipcode" validate:"omitempty,valid_zip"`
	Email            string              `json:"email" validate:"omitempty,email"`
	Phone            string              `json:"phone" validate:"omitempty,valid_phone"`
	LinkedIn         string              `json:"linkedin" validate:"omitempty,url"`
	Summary          string              `json:"summary" validate:"max=4000,no_markup"`
	Skills           map[string][]string `json:"skills"`
	Experience       Experience          `json:"experience"`
	Education        Education           `json:"education"`
	Certifications   string              `json:"certifications" validate:"max=4000,no_markup"`
	AdditionalSkills string              `json:"additionalSkills" validate:"max=4000,no_markup"`
}

// Experience is the single job entry collected by the form.
type Experience struct {
	Profile           string `json:"profile" validate:"max=120,no_control,no_markup"`
	Company           string `json:"company" validate:"max=120,no_control,no_markup"`
	StartDate         Date   `json:"startDate"`
	EndDate           Date   `json:"endDate"`
	CurrentlyEmployed bool   `json:"currentlyEmployed"`
	Description       string `json:"description" validate:"max=8000,no_markup"`
}

// Education holds the degree line of the resume.
type Education struct {
	Degree     string `json:"degree" validate:"max=160,no_control,no_markup"`
	University string `json:"university" validate:"max=160,no_control,no_markup"`
}

// Date is a calendar day as produced by a date picker.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD value. An empty value yields the zero Date.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return Date{}, fmt.Errorf("date %q must be YYYY-MM-DD", raw)
	}
	return Date{Time: t}, nil
}

// String renders the date in wire format, or "" when unset.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MonthYear renders the date the way it appears on the resume ("January 2024").
func (d Date) MonthYear() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("January 2006")
}

// MarshalJSON encodes the date as YYYY-MM-DD, or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts YYYY-MM-DD, an empty string or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*d = Date{}
		return nil
	}
	raw = strings.Trim(raw, `"`)
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Lines splits free text into trimmed, non-empty lines.
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
