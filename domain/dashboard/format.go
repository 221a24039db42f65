package dashboard

import (
	"encoding/json"
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Metric is a headline number; NaN stands for "no data" and is written to JSON as null.
type Metric float64

func (m Metric) MarshalJSON() ([]byte, error) {
	v := float64(m)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// Valid reports whether the metric holds a number.
func (m Metric) Valid() bool {
	return !math.IsNaN(float64(m)) && !math.IsInf(float64(m), 0)
}

// Round rounds to the given number of decimals.
func (m Metric) Round(decimals int) Metric {
	if !m.Valid() {
		return m
	}
	p := math.Pow(10, float64(decimals))
	return Metric(math.Round(float64(m)*p) / p)
}

var currencySymbols = map[string]string{
	"BRL": "R$",
	"USD": "US$",
	"EUR": "€",
}

// FormatCurrency renders amount with two decimals using the number conventions of locale,
// e.g. "R$ 1.234,50" for BRL in pt-BR. NaN renders as "-".
func FormatCurrency(amount float64, currency, locale string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "-"
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}
	p := message.NewPrinter(tag)
	return fmt.Sprintf("%s %s", symbol, p.Sprintf("%.2f", amount))
}
