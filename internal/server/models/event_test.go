package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "exact", in: "Community", want: "Community"},
		{name: "surrounding spaces", in: "  Engineering & Business ", want: "Engineering & Business"},
		{name: "case insensitive", in: "enterprise it & education", want: "Enterprise IT & Education"},
		{name: "unknown kept trimmed", in: "  Cooking  ", want: "Cooking"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.in))
		})
	}
}

func TestIsCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, IsCategory(c), c)
	}
	assert.False(t, IsCategory("community"))
	assert.False(t, IsCategory(" Community"))
}
