package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscriberActivePremium(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name     string
		sub      Subscriber
		expected bool
	}{
		{"lifetime premium", Subscriber{Premium: true}, true},
		{"active until future", Subscriber{Premium: true, PremiumUntil: &future}, true},
		{"expired", Subscriber{Premium: true, PremiumUntil: &past}, false},
		{"not premium", Subscriber{Premium: false}, false},
		{"not premium despite date", Subscriber{Premium: false, PremiumUntil: &future}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.sub.ActivePremium(now))
		})
	}
}
