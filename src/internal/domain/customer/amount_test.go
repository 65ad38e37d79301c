package customer_test

import (
	"testing"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"3万円", 30000},
		{"5-10万", 75000},
		{"no digits", 0},
		{"", 0},
		{"12000円", 12000},
		{"1.5万", 15000},
		{"約20〜30万円（税別）", 250000},
		{"３万", 30000},
		{"2.5", 3},
		{"1-2-9", 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, customer.ParseAmount(tt.input))
		})
	}
}
