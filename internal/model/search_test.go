package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryReady(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"", false},
		{"j", false},
		{"é", false},
		{"jo", true},
		{"éa", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, QueryReady(tt.query), "query %q", tt.query)
	}
}

func TestNoMatchesMessage(t *testing.T) {
	assert.Equal(t, `No players found matching "xyz"`, NoMatchesMessage("xyz"))
	assert.Equal(t, `No players found matching "a"b"`, NoMatchesMessage(`a"b`))
}
