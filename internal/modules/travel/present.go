package travel

import (
	"strings"

	"pathplanner/internal/types"
)

// DisplaySettings is session-scoped and independent of the query.
type DisplaySettings struct {
	SortBy         SortMode `json:"sort_by"`
	Language       string   `json:"language"`
	CurrencySymbol string   `json:"currency_symbol"`
}

// DefaultDisplaySettings is what a fresh session starts with.
func DefaultDisplaySettings() DisplaySettings {
	return DisplaySettings{SortBy: SortDefault, Language: "en", CurrencySymbol: types.DefaultCurrencySymbol}
}

// Card is a TravelOption ready for display.
type Card struct {
	Provider    string      `json:"provider"`
	Price       types.Money `json:"-"`
	PriceText   string      `json:"price"`
	Duration    string      `json:"duration"`
	Notes       string      `json:"notes,omitempty"`
	Description string      `json:"description"`
	BookingURL  string      `json:"booking_url,omitempty"`
	Unavailable bool        `json:"unavailable"`
}

// CategoryView groups the cards of one category under its title.
type CategoryView struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Cards []Card `json:"cards"`
}

var categoryMeta = map[string]struct{ title, icon string }{
	CategoryFlights: {"Flight Options", "✈️"},
	CategoryTrains:  {"Train Options", "🚆"},
	CategoryBuses:   {"Bus Options", "🚌"},
	CategoryCabs:    {"Cab Options", "🚖"},
}

// Present sorts every category and turns its options into display cards,
// in Categories order. It never calls out to any collaborator.
func Present(result Result, settings DisplaySettings, booking BookingTable) []CategoryView {
	if booking == nil {
		booking = DefaultBookingTable()
	}
	views := make([]CategoryView, 0, len(Categories))
	for _, key := range Categories {
		meta := categoryMeta[key]
		sorted := SortOptions(result.Options(key), settings.SortBy)
		cards := make([]Card, 0, len(sorted))
		for _, o := range sorted {
			cards = append(cards, newCard(o, settings.CurrencySymbol, booking))
		}
		views = append(views, CategoryView{Key: key, Title: meta.title, Icon: meta.icon, Cards: cards})
	}
	return views
}

func newCard(o TravelOption, symbol string, booking BookingTable) Card {
	price := types.Money{Amount: o.Price, Symbol: symbol}
	desc := strings.TrimSpace(o.Description)
	if desc == "" {
		desc = DefaultDescription
	}
	return Card{
		Provider:    o.Provider,
		Price:       price,
		PriceText:   price.String(),
		Duration:    o.Duration,
		Notes:       o.Notes,
		Description: desc,
		BookingURL:  booking.ResolveBookingURL(o),
		Unavailable: o.Unavailable(),
	}
}
