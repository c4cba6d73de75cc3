package core

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DateLayout is the wire and storage layout of calendar dates.
	DateLayout = "2006-01-02"

	// PersistedIDMinLength is the shortest id the backend ever assigns.
	PersistedIDMinLength = 32
)

type (
	// Date is a calendar day without time of day. The zero Date means
	// "not set" and is rendered as an empty string.
	Date struct {
		time.Time
	}

	// PeriodPart is a year or month label such as "2025" or "3". It decodes
	// from JSON strings and numbers alike.
	PeriodPart string

	// Meta carries the identity and timestamps shared by all records.
	Meta struct {
		ID        string    `json:"id" db:"id"`
		CreatedAt time.Time `json:"created_at" db:"created_at"`
		UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	}

	// Attachment describes an uploaded file referenced by a record.
	Attachment struct {
		URL          string `json:"url"`
		Filename     string `json:"filename"`
		OriginalName string `json:"originalName"`
		Size         int64  `json:"size"`
		Type         string `json:"type"`
	}

	// Attachments is an ordered attachment list stored as a JSON column.
	Attachments []Attachment
)

// Record is implemented by every module entity. The methods return copies;
// records are values.
type Record[T any] interface {
	GetID() string
	GetMeta() Meta
	WithMeta(Meta) T
	// WithDefaults fills fields the client may omit on create.
	WithDefaults(now time.Time) T
	// Period returns the year and month the record is filed under. Either
	// may be empty.
	Period() (year, month PeriodPart)
}

var (
	ErrInvalidDay    = errors.New("invalid day")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyName     = errors.New("empty name")
)

// NewID returns a fresh persisted id.
func NewID() string {
	return uuid.NewString()
}

// IsTemporaryID reports whether id carries the given client-side prefix.
func IsTemporaryID(id, prefix string) bool {
	return prefix != "" && strings.HasPrefix(id, prefix)
}

// IsPersistedID reports whether id has the shape of a backend-assigned id:
// long enough and free of any of the reserved temporary prefixes.
func IsPersistedID(id string, reserved ...string) bool {
	if len(id) < PersistedIDMinLength {
		return false
	}
	for _, p := range reserved {
		if IsTemporaryID(id, p) {
			return false
		}
	}
	return true
}

func (m Meta) GetID() string { return m.ID }
func (m Meta) GetMeta() Meta { return m }

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current UTC date.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate reads "2006-01-02" or an RFC 3339 timestamp. An empty string
// yields the zero Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return NewDate(t.Year(), int(t.Month()), t.Day()), nil
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// String returns the wire form, empty for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v.Year(), int(v.Month()), v.Day())
		return nil
	case string:
		parsed, err := ParseDate(v)
		*d = parsed
		return err
	case []byte:
		parsed, err := ParseDate(string(v))
		*d = parsed
		return err
	default:
		return fmt.Errorf("scan date: unsupported type %T", src)
	}
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Int returns the numeric value of the label, or 0 when it is not a number.
func (p PeriodPart) Int() int {
	n, err := strconv.Atoi(strings.TrimSpace(string(p)))
	if err != nil {
		return 0
	}
	return n
}

func (p PeriodPart) String() string { return string(p) }

func (p *PeriodPart) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PeriodPart(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("period: %w", err)
	}
	*p = PeriodPart(n.String())
	return nil
}

// Scan implements sql.Scanner.
func (a *Attachments) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*a = Attachments{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("scan attachments: unsupported type %T", src)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		*a = Attachments{}
		return nil
	}
	var out Attachments
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("scan attachments: %w", err)
	}
	*a = out
	return nil
}

// Value implements driver.Valuer.
func (a Attachments) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]Attachment(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
