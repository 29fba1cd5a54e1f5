package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultTransport is the means of transport preselected on travel rows
const DefaultTransport = "osobni automobil"

// Settings is a user's profile used to fill document headers and travel rates.
// Numeric fields stay NULL until the user enters a valid number.
type Settings struct {
	UserID           uuid.UUID           `json:"userId" db:"user_id"`
	FullName         string              `json:"fullName" db:"full_name"`
	OrganisationName string              `json:"organisationName" db:"organisation_name"`
	HomeAddress      string              `json:"homeAddress" db:"home_address"`
	WorkAddress      string              `json:"workAddress" db:"work_address"`
	DistanceToWork   decimal.NullDecimal `json:"distanceToWork" db:"distance_to_work"`
	DistanceFromWork decimal.NullDecimal `json:"distanceFromWork" db:"distance_from_work"`
	PricePerKm       decimal.NullDecimal `json:"pricePerKm" db:"price_per_km"`
	DefaultTransport string              `json:"defaultTransport" db:"default_transport"`
	UpdatedAt        time.Time           `json:"updatedAt" db:"updated_at"`
}

// Transport returns the configured default transport, falling back to DefaultTransport
func (s *Settings) Transport() string {
	if s == nil || strings.TrimSpace(s.DefaultTransport) == "" {
		return DefaultTransport
	}
	return s.DefaultTransport
}

// ParseDecimal reads a form number written with a comma or a dot. Blank or
// invalid text yields a NULL value.
func ParseDecimal(s string) decimal.NullDecimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// OrZero unwraps a nullable decimal, NULL counting as zero
func OrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

// FormatDecimal renders a nullable decimal for a form field
func FormatDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
