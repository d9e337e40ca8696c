package payment

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		want   int64
	}{
		{"whole reais", "150", 15000},
		{"with cents", "150.50", 15050},
		{"single cent", "0.01", 1},
		{"rounds up", "10.005", 1001},
		{"rounds down", "10.004", 1000},
		{"large", "99999.99", 9999999},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.amount)
			assert.Equal(t, tc.want, ToMinorUnits(amount))
		})
	}
}

func TestNormalizeDigits(t *testing.T) {
	assert.Equal(t, "12345678900", NormalizeDigits("123.456.789-00"))
	assert.Equal(t, "11987654321", NormalizeDigits("(11) 98765-4321"))
	assert.Equal(t, "", NormalizeDigits("abc-def"))
	assert.Equal(t, "12345678900", NormalizeDigits("12345678900"))
}

func TestClassifyDocument(t *testing.T) {
	// 11 digits or fewer is a CPF, anything longer a CNPJ
	assert.Equal(t, DocumentCPF, ClassifyDocument("12345678900"))
	assert.Equal(t, DocumentCPF, ClassifyDocument("123"))
	assert.Equal(t, DocumentCNPJ, ClassifyDocument("123456789000"))
	assert.Equal(t, DocumentCNPJ, ClassifyDocument("12345678000190"))
}

func TestItemTitle(t *testing.T) {
	assert.Equal(t, "Livro X", ItemTitle("Livro X"))
	assert.Equal(t, "Edição antiga", ItemTitle("Edição antiga"))

	long := strings.Repeat("a", 80)
	got := ItemTitle(long)
	assert.Len(t, got, 50)
	assert.Equal(t, long[:50], got)
}

func TestItemTitleMultiByteBoundary(t *testing.T) {
	// a multi-byte rune straddling the limit must not be split
	desc := strings.Repeat("a", 49) + "ção do livro"
	got := ItemTitle(desc)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 50, utf8.RuneCountInString(got))
	assert.Equal(t, strings.Repeat("a", 49)+"ç", got)

	accented := strings.Repeat("ã", 60)
	got = ItemTitle(accented)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 50, utf8.RuneCountInString(got))
}
