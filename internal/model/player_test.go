package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRating(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{3.5, "3.5"},
		{4, "4.0"},
		{4.25, "4.3"},
		{4.75, "4.8"},
		{3.65, "3.6"},
		{3.66, "3.7"},
		{5.049, "5.0"},
		{0, "0.0"},
		{-4.25, "-4.3"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRating(tt.rating), "FormatRating(%v)", tt.rating)
	}
}

func TestPlayerRatingLabel(t *testing.T) {
	p := Player{Name: "Priya Patel", DUPRRating: 5}
	assert.Equal(t, "5.0", p.RatingLabel())
}

func TestSessionExpired(t *testing.T) {
	s := Session{ExpiresAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}

	assert.False(t, s.Expired(s.ExpiresAt.Add(-time.Second)))
	assert.False(t, s.Expired(s.ExpiresAt))
	assert.True(t, s.Expired(s.ExpiresAt.Add(time.Nanosecond)))
}
