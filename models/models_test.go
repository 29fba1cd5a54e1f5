package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
		want  string
	}{
		{name: "dot", input: "0.5", valid: true, want: "0.5"},
		{name: "comma", input: "12,75", valid: true, want: "12.75"},
		{name: "padded", input: "  10 ", valid: true, want: "10"},
		{name: "blank", input: "   ", valid: false},
		{name: "invalid", input: "deset", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDecimal(tt.input)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.Equal(t, tt.want, got.Decimal.String())
			}
		})
	}
}

func TestOrZeroAndFormat(t *testing.T) {
	assert.True(t, OrZero(decimal.NullDecimal{}).IsZero())
	assert.Equal(t, "3.2", OrZero(ParseDecimal("3,2")).String())
	assert.Equal(t, "", FormatDecimal(decimal.NullDecimal{}))
	assert.Equal(t, "3.2", FormatDecimal(ParseDecimal("3.2")))
}

func TestSettingsTransport(t *testing.T) {
	var missing *Settings
	assert.Equal(t, DefaultTransport, missing.Transport())
	assert.Equal(t, DefaultTransport, (&Settings{DefaultTransport: " "}).Transport())
	assert.Equal(t, "autobus", (&Settings{DefaultTransport: "autobus"}).Transport())
}

func TestSessionExpired(t *testing.T) {
	now := time.Unix(1_000, 0)
	assert.False(t, (&Session{ExpiresAt: 1_001}).Expired(now))
	assert.True(t, (&Session{ExpiresAt: 1_000}).Expired(now))
}
