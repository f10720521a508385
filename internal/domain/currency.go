package domain

import "time"

// RateSnapshot is a USD-relative rate table with the moment it was fetched.
// A snapshot is immutable once built; staleness is judged by the holder.
type RateSnapshot struct {
	Rates     map[string]float64 `json:"rates"`
	FetchedAt time.Time          `json:"fetched_at"`
}

func (s RateSnapshot) FreshAt(now time.Time, maxAge time.Duration) bool {
	return s.Rates != nil && now.Sub(s.FetchedAt) < maxAge
}

type CurrencyInfo struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// SupportedCurrencies is the fixed set accepted by the conversion surfaces.
// Codes outside this table are rejected before any network call.
var SupportedCurrencies = map[string]CurrencyInfo{
	"USD": {Symbol: "$", Name: "US Dollar"},
	"EUR": {Symbol: "€", Name: "Euro"},
	"GBP": {Symbol: "£", Name: "British Pound"},
	"JPY": {Symbol: "¥", Name: "Japanese Yen"},
	"INR": {Symbol: "₹", Name: "Indian Rupee"},
	"CAD": {Symbol: "C$", Name: "Canadian Dollar"},
	"AUD": {Symbol: "A$", Name: "Australian Dollar"},
	"CHF": {Symbol: "CHF", Name: "Swiss Franc"},
	"CNY": {Symbol: "¥", Name: "Chinese Yuan"},
	"KRW": {Symbol: "₩", Name: "South Korean Won"},
	"SGD": {Symbol: "S$", Name: "Singapore Dollar"},
	"HKD": {Symbol: "HK$", Name: "Hong Kong Dollar"},
	"THB": {Symbol: "฿", Name: "Thai Baht"},
	"MXN": {Symbol: "$", Name: "Mexican Peso"},
	"BRL": {Symbol: "R$", Name: "Brazilian Real"},
	"ZAR": {Symbol: "R", Name: "South African Rand"},
	"SEK": {Symbol: "kr", Name: "Swedish Krona"},
	"NOK": {Symbol: "kr", Name: "Norwegian Krone"},
	"DKK": {Symbol: "kr", Name: "Danish Krone"},
	"PLN": {Symbol: "zł", Name: "Polish Zloty"},
	"AED": {Symbol: "د.إ", Name: "UAE Dirham"},
	"SAR": {Symbol: "ر.س", Name: "Saudi Riyal"},
	"QAR": {Symbol: "ر.ق", Name: "Qatari Riyal"},
	"KWD": {Symbol: "د.ك", Name: "Kuwaiti Dinar"},
	"BHD": {Symbol: ".د.ب", Name: "Bahraini Dinar"},
	"OMR": {Symbol: "ر.ع.", Name: "Omani Rial"},
	"EGP": {Symbol: "£", Name: "Egyptian Pound"},
	"TRY": {Symbol: "₺", Name: "Turkish Lira"},
	"RUB": {Symbol: "₽", Name: "Russian Ruble"},
	"NZD": {Symbol: "NZ$", Name: "New Zealand Dollar"},
	"TWD": {Symbol: "NT$", Name: "Taiwan Dollar"},
	"MYR": {Symbol: "RM", Name: "Malaysian Ringgit"},
	"IDR": {Symbol: "Rp", Name: "Indonesian Rupiah"},
	"PHP": {Symbol: "₱", Name: "Philippine Peso"},
	"VND": {Symbol: "₫", Name: "Vietnamese Dong"},
	"ILS": {Symbol: "₪", Name: "Israeli Shekel"},
	"CZK": {Symbol: "Kč", Name: "Czech Koruna"},
	"HUF": {Symbol: "Ft", Name: "Hungarian Forint"},
	"RON": {Symbol: "lei", Name: "Romanian Leu"},
	"BGN": {Symbol: "лв", Name: "Bulgarian Lev"},
	"HRK": {Symbol: "kn", Name: "Croatian Kuna"},
	"ISK": {Symbol: "kr", Name: "Icelandic Krona"},
}

func IsSupportedCurrency(code string) bool {
	_, ok := SupportedCurrencies[code]
	return ok
}
