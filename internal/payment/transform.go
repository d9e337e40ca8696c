package payment

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Document types accepted by the gateway.
const (
	DocumentCPF  = "CPF"
	DocumentCNPJ = "CNPJ"
)

// maxItemTitleLen is the gateway's limit for a line-item title.
const maxItemTitleLen = 50

// NormalizeDigits strips everything that is not an ASCII digit.
func NormalizeDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToMinorUnits converts a decimal currency amount to integer minor units
// (centavos), rounding to the nearest integer.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// ClassifyDocument tells CPF from CNPJ by digit count alone: a CPF has
// 11 digits, anything longer is treated as a CNPJ.
func ClassifyDocument(digits string) string {
	if len(digits) > 11 {
		return DocumentCNPJ
	}
	return DocumentCPF
}

// ItemTitle derives the synthetic line-item title from the free-text
// description, truncated to the gateway's limit. The cut falls on a rune
// boundary so accented descriptions stay valid UTF-8.
func ItemTitle(description string) string {
	runes := []rune(description)
	if len(runes) > maxItemTitleLen {
		return string(runes[:maxItemTitleLen])
	}
	return description
}
