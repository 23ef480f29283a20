package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"zero", decimal.Zero, "0.00"},
		{"small", decimal.NewFromFloat(5.5), "5.50"},
		{"three digits", decimal.NewFromInt(999), "999.00"},
		{"four digits", decimal.NewFromInt(1000), "1,000.00"},
		{"millions", decimal.NewFromFloat(1234567.5), "1,234,567.50"},
		{"negative in parentheses", decimal.NewFromFloat(-1234567.5), "(1,234,567.50)"},
		{"negative small", decimal.NewFromFloat(-0.25), "(0.25)"},
		{"rounds to two places", decimal.NewFromFloat(10.005), "10.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount))
		})
	}
}
