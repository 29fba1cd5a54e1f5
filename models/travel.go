package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TravelExpense is one saved working day of a commuting report
type TravelExpense struct {
	ID           uuid.UUID           `json:"id" db:"id"`
	UserID       uuid.UUID           `json:"userId" db:"user_id"`
	WorkDate     string              `json:"dateISO" db:"work_date"`
	Included     bool                `json:"included" db:"included"`
	Transport    string              `json:"transport" db:"transport"`
	DistanceTo   decimal.NullDecimal `json:"distanceTo" db:"distance_to"`
	DistanceFrom decimal.NullDecimal `json:"distanceFrom" db:"distance_from"`
	UpdatedAt    time.Time           `json:"updatedAt" db:"updated_at"`
}
