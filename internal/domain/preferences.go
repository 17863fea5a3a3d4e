package domain

import "github.com/google/uuid"

// TravelFrequency is how often a user likes to travel.
type TravelFrequency string

const (
	FrequencyRarely       TravelFrequency = "Rarely"
	FrequencyOccasionally TravelFrequency = "Occasionally"
	FrequencyFrequently   TravelFrequency = "Frequently"
)

// Valid reports whether f is a known category. The empty value means unset
// and is also accepted.
func (f TravelFrequency) Valid() bool {
	switch f {
	case "", FrequencyRarely, FrequencyOccasionally, FrequencyFrequently:
		return true
	}
	return false
}

// TravelBudget is a user's preferred spending range.
type TravelBudget string

const (
	BudgetLow    TravelBudget = "low"
	BudgetMedium TravelBudget = "medium"
	BudgetHigh   TravelBudget = "high"
)

// Valid reports whether b is a known category or unset.
func (b TravelBudget) Valid() bool {
	switch b {
	case "", BudgetLow, BudgetMedium, BudgetHigh:
		return true
	}
	return false
}

// Preferences holds a user's optional travel preferences.
// Either field may be empty when the user skipped it.
type Preferences struct {
	UserID          uuid.UUID
	TravelFrequency TravelFrequency
	TravelBudget    TravelBudget
}
