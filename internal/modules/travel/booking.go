package travel

import (
	"net/url"
	"strings"
)

// BookingTable maps a provider name to its booking page. Lookups are exact.
type BookingTable map[string]string

// DefaultBookingTable holds the providers with known booking pages.
func DefaultBookingTable() BookingTable {
	return BookingTable{
		"Air India": "https://www.airindia.com/",
		"Delta":     "https://www.delta.com/",
		"Emirates":  "https://www.emirates.com/",
		"Uber":      "https://www.uber.com/global/en/price-estimate/",
		"RedBus":    "https://www.redbus.in/",
		"IRCTC":     "https://www.irctc.co.in/",
	}
}

// ResolveBookingURL picks the booking link for an option: the model-supplied
// URL, then the table, then a web search. Unavailable options get "".
func (t BookingTable) ResolveBookingURL(o TravelOption) string {
	if o.Unavailable() {
		return ""
	}
	if u := strings.TrimSpace(o.BookingURL); u != "" {
		return u
	}
	if u, ok := t[o.Provider]; ok {
		return u
	}
	return SearchURL(o.Provider)
}

// SearchURL builds the fallback "<provider> booking" web search link.
func SearchURL(provider string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(strings.TrimSpace(provider)) + "+booking"
}
