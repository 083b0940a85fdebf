// README: Price value object rendered with the session's currency symbol.
package types

import "strconv"

// DefaultCurrencySymbol is used whenever the source country is unknown.
const DefaultCurrencySymbol = "$"

type Money struct {
	Amount float64
	Symbol string
}

// String renders the symbol directly followed by the amount without trailing
// zeros ("₹5000", "€12.5").
func (m Money) String() string {
	symbol := m.Symbol
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return symbol + strconv.FormatFloat(m.Amount, 'f', -1, 64)
}
