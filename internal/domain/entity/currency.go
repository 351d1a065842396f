package entity

import "strings"

// Currency is an ISO 4217 currency code
type Currency string

const (
	USD Currency = "USD"
	BRL Currency = "BRL"
	EUR Currency = "EUR"
	JPY Currency = "JPY"
)

// BaseCurrency is the currency every quote is expressed against
const BaseCurrency = USD

// SupportedCurrencies lists the target currencies that can be quoted
var SupportedCurrencies = []Currency{BRL, EUR, JPY}

// CurrencyDescriptor holds presentation data for a currency
type CurrencyDescriptor struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

var descriptors = map[Currency]CurrencyDescriptor{
	EUR: {Name: "Euro", Symbol: "€"},
	JPY: {Name: "Japanese Yen", Symbol: "¥"},
	BRL: {Name: "Brazilian Real", Symbol: "R$"},
}

var fallbackDescriptor = CurrencyDescriptor{Name: "US Dollar", Symbol: "$"}

// ParseCurrency normalizes a user supplied code and reports whether it is supported
func ParseCurrency(code string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	return c, c.IsSupported()
}

// IsSupported reports whether the currency can be quoted against USD
func (c Currency) IsSupported() bool {
	for _, supported := range SupportedCurrencies {
		if c == supported {
			return true
		}
	}
	return false
}

// Descriptor returns the display name and symbol, falling back to the dollar
func (c Currency) Descriptor() CurrencyDescriptor {
	if d, ok := descriptors[c]; ok {
		return d
	}
	return fallbackDescriptor
}

func (c Currency) String() string {
	return string(c)
}
