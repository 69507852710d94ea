package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		input string
		want  Category
		ok    bool
	}{
		{input: "environmental", want: Environmental, ok: true},
		{input: "ENVIRONMENTAL", want: Environmental, ok: true},
		{input: "Social", want: Social, ok: true},
		{input: "governance", want: Governance, ok: true},
		{input: "  social  ", want: Social, ok: true},
		{input: "Foo", want: Environmental, ok: false},
		{input: "", want: Environmental, ok: false},
		{input: "Environment", want: Environmental, ok: false},
	}
	for _, tt := range tests {
		t.Run("input="+tt.input, func(t *testing.T) {
			got, ok := Canonicalize(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestAsStringSlice(t *testing.T) {
	assert.Equal(t, []string{"Environmental", "Social", "Governance"}, AsStringSlice())
}

func TestDocumentStem(t *testing.T) {
	assert.Equal(t, "acme-2023", DocumentStem("/reports/acme-2023.pdf"))
	assert.Equal(t, "acme 2023", DocumentStem("acme 2023.pdf"))
	assert.Equal(t, "plain", DocumentStem("plain"))
}
