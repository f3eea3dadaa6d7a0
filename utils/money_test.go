package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"50", "₹50.00"},
		{"210", "₹210.00"},
		{"999", "₹999.00"},
		{"1000", "₹1,000.00"},
		{"123456", "₹1,23,456.00"},
		{"1234567.5", "₹12,34,567.50"},
		{"12345678", "₹1,23,45,678.00"},
		{"-1500", "-₹1,500.00"},
	}
	for _, tc := range cases {
		got := FormatINR(decimal.RequireFromString(tc.in))
		assert.Equal(t, tc.want, got, "input %s", tc.in)
	}
}
