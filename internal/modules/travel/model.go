// README: Travel option domain model (query, categories, sort modes).
package travel

import (
	"errors"
	"strings"
)

// Category keys as they appear in the model's JSON reply.
const (
	CategoryFlights = "flights"
	CategoryTrains  = "trains"
	CategoryBuses   = "buses"
	CategoryCabs    = "cabs"
)

// Categories lists the categories in presentation order.
var Categories = []string{CategoryFlights, CategoryTrains, CategoryBuses, CategoryCabs}

// UnavailableProvider marks a mode of travel the model reports as impossible.
const UnavailableProvider = "Unavailable"

// DefaultDescription is shown when the model omits a description.
const DefaultDescription = "No description available."

// TravelOption is one provider offer within a category.
type TravelOption struct {
	Provider    string  `json:"provider"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration"`
	Notes       string  `json:"notes,omitempty"`
	Description string  `json:"description,omitempty"`
	BookingURL  string  `json:"booking_url,omitempty"`
}

// Unavailable reports whether the option is a placeholder for an impossible mode.
func (o TravelOption) Unavailable() bool {
	return strings.EqualFold(strings.TrimSpace(o.Provider), UnavailableProvider)
}

// Result maps a category key to its options in the order the model returned them.
type Result map[string][]TravelOption

// Options returns the options of a category; absent categories are empty.
func (r Result) Options(category string) []TravelOption {
	return r[category]
}

// Preference is the optimization intent passed to the model as guidance.
type Preference string

const (
	PreferenceCheapest    Preference = "Cheapest"
	PreferenceFastest     Preference = "Fastest"
	PreferenceComfortable Preference = "Comfortable"
	PreferenceEcoFriendly Preference = "Eco-friendly"
)

// Preferences lists the accepted preferences in form order.
var Preferences = []Preference{PreferenceCheapest, PreferenceFastest, PreferenceComfortable, PreferenceEcoFriendly}

// SortMode orders a category's options for display.
type SortMode string

const (
	SortDefault          SortMode = "Default"
	SortLowestPrice      SortMode = "Lowest Price"
	SortShortestDuration SortMode = "Shortest Duration"
)

// SortModes lists the accepted sort modes in form order.
var SortModes = []SortMode{SortDefault, SortLowestPrice, SortShortestDuration}

var (
	ErrBadRequest        = errors.New("bad request")
	ErrUnknownPreference = errors.New("unknown preference")
	ErrUnknownSortMode   = errors.New("unknown sort mode")
)

// Query is one user search. It is immutable once submitted.
type Query struct {
	Source      string     `json:"source"`
	Destination string     `json:"destination"`
	Preference  Preference `json:"preference"`
}

// NewQuery trims and validates user input.
func NewQuery(source, destination, preference string) (Query, error) {
	q := Query{
		Source:      strings.TrimSpace(source),
		Destination: strings.TrimSpace(destination),
	}
	if q.Source == "" || q.Destination == "" {
		return Query{}, ErrBadRequest
	}
	p, err := ParsePreference(preference)
	if err != nil {
		return Query{}, err
	}
	q.Preference = p
	return q, nil
}

// ParsePreference accepts a preference label case-insensitively; empty means Cheapest.
func ParsePreference(s string) (Preference, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PreferenceCheapest, nil
	}
	for _, p := range Preferences {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", ErrUnknownPreference
}

// ParseSortMode accepts the display label or a short key
// ("default", "price", "duration"); empty means Default.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return SortDefault, nil
	case "lowest price", "lowest_price", "price":
		return SortLowestPrice, nil
	case "shortest duration", "shortest_duration", "duration":
		return SortShortestDuration, nil
	}
	return "", ErrUnknownSortMode
}
