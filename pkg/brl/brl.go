// Package brl formatea valores en reales con las convenciones pt-BR (R$ 1.234,56).
package brl

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Format devuelve "R$ 1.234,56"; los negativos conservan el signo ("R$ -500,00").
func Format(v decimal.Decimal) string {
	return "R$ " + printer.Sprint(number.Decimal(v.Round(2).InexactFloat64(), number.Scale(2)))
}

// FormatAbs formatea el valor absoluto, para columnas que ya indican el sentido (salidas, crédito).
func FormatAbs(v decimal.Decimal) string {
	return Format(v.Abs())
}
