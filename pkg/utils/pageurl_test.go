package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageURL(t *testing.T) {
	cases := []struct {
		name     string
		page     string
		expected string
	}{
		{"single word", "Dashboard", "/Dashboard"},
		{"two words", "Profile Settings", "/Profile-Settings"},
		{"three words", "My Deal Pipeline", "/My-Deal-Pipeline"},
		{"surrounding whitespace", "  Portfolio  ", "/Portfolio"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PageURL(tc.page))
		})
	}
}
