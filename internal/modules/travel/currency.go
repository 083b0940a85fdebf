package travel

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"pathplanner/internal/infra"
	"pathplanner/internal/maps"
	"pathplanner/internal/types"
)

// CurrencyTable maps a country name (as the geocoder spells it) to a symbol.
type CurrencyTable map[string]string

// DefaultCurrencyTable covers the supported countries, including the short
// names Google uses in formatted addresses.
func DefaultCurrencyTable() CurrencyTable {
	return CurrencyTable{
		"India":          "₹",
		"United States":  "$",
		"USA":            "$",
		"United Kingdom": "£",
		"UK":             "£",
		"France":         "€",
		"Germany":        "€",
		"Italy":          "€",
		"Spain":          "€",
		"Japan":          "¥",
		"Canada":         "C$",
		"Australia":      "A$",
		"UAE":            "د.إ",
		"China":          "¥",
		"Russia":         "₽",
		"South Korea":    "₩",
		"Brazil":         "R$",
	}
}

// CurrencyResolver derives the currency symbol for a trip from its source.
type CurrencyResolver struct {
	geocoder maps.Geocoder
	table    CurrencyTable
	log      *zap.Logger
}

// NewCurrencyResolver builds a resolver. A nil geocoder always yields the default symbol.
func NewCurrencyResolver(geocoder maps.Geocoder, table CurrencyTable, log *zap.Logger) *CurrencyResolver {
	if table == nil {
		table = DefaultCurrencyTable()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CurrencyResolver{geocoder: geocoder, table: table, log: log}
}

// Resolve geocodes source once and maps its country to a symbol. Every failure
// falls back to "$" and is never returned as an error.
func (r *CurrencyResolver) Resolve(ctx context.Context, source string) string {
	if r.geocoder == nil {
		infra.GeocodeMisses.Inc()
		return types.DefaultCurrencySymbol
	}

	address, err := r.geocoder.Geocode(ctx, source)
	if err != nil {
		infra.GeocodeMisses.Inc()
		if !errors.Is(err, maps.ErrNotFound) {
			r.log.Warn("geocode failed", zap.String("source", source), zap.Error(err))
		}
		return types.DefaultCurrencySymbol
	}

	country := maps.CountryFromAddress(address)
	symbol, ok := r.table[country]
	if !ok {
		infra.GeocodeMisses.Inc()
		r.log.Debug("no currency for country", zap.String("country", country))
		return types.DefaultCurrencySymbol
	}
	return symbol
}
