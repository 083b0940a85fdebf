package travel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBookingURL(t *testing.T) {
	table := DefaultBookingTable()

	tests := []struct {
		name   string
		option TravelOption
		want   string
	}{
		{"table hit", TravelOption{Provider: "Air India"}, "https://www.airindia.com/"},
		{"explicit wins", TravelOption{Provider: "Air India", BookingURL: "https://example.test/ai"}, "https://example.test/ai"},
		{"unavailable", TravelOption{Provider: "Unavailable", BookingURL: "https://example.test/x"}, ""},
		{"fallback search", TravelOption{Provider: "Obscure Co"}, "https://www.google.com/search?q=Obscure+Co+booking"},
		{"lookup is exact", TravelOption{Provider: "air india"}, "https://www.google.com/search?q=air+india+booking"},
		{"escapes", TravelOption{Provider: "A&B Travels"}, "https://www.google.com/search?q=A%26B+Travels+booking"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.ResolveBookingURL(tt.option))
		})
	}
}

func TestResolveBookingURL_UnavailableListedInTable(t *testing.T) {
	table := BookingTable{"Unavailable": "https://example.test/never"}
	assert.Empty(t, table.ResolveBookingURL(TravelOption{Provider: "Unavailable"}))
}
