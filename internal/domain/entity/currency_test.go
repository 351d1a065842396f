package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want Currency
		ok   bool
	}{
		{"BRL", BRL, true},
		{"eur", EUR, true},
		{" jpy ", JPY, true},
		{"USD", USD, false},
		{"INVALID", Currency("INVALID"), false},
		{"", Currency(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCurrency(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestCurrencyDescriptor(t *testing.T) {
	assert.Equal(t, CurrencyDescriptor{Name: "Euro", Symbol: "€"}, EUR.Descriptor())
	assert.Equal(t, CurrencyDescriptor{Name: "Japanese Yen", Symbol: "¥"}, JPY.Descriptor())
	assert.Equal(t, CurrencyDescriptor{Name: "Brazilian Real", Symbol: "R$"}, BRL.Descriptor())
	assert.Equal(t, CurrencyDescriptor{Name: "US Dollar", Symbol: "$"}, Currency("GBP").Descriptor())
}
