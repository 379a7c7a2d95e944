package models

import "strings"

// Currency is the display information for a bill's currency.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Currencies are the built-in currencies offered to users.
var Currencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "TL", Symbol: "₺", Name: "Turkish Lira"},
}

// DefaultCurrency is used when a bill does not name one.
var DefaultCurrency = Currencies[0]

// LookupCurrency finds a built-in currency by code, case-insensitively.
func LookupCurrency(code string) (Currency, bool) {
	for _, c := range Currencies {
		if strings.EqualFold(c.Code, strings.TrimSpace(code)) {
			return c, true
		}
	}
	return Currency{}, false
}

// CurrencyOrDefault is LookupCurrency falling back to DefaultCurrency.
func CurrencyOrDefault(code string) Currency {
	if c, ok := LookupCurrency(code); ok {
		return c
	}
	return DefaultCurrency
}
