package actionitem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"open closes directly", StatusOpen, StatusClosed, true},
		{"open parks for verification", StatusOpen, StatusPendingVerification, true},
		{"open cannot jump to verified", StatusOpen, StatusVerified, false},
		{"pending approves to verified", StatusPendingVerification, StatusVerified, true},
		{"pending rejects back to open", StatusPendingVerification, StatusOpen, true},
		{"pending cannot close directly", StatusPendingVerification, StatusClosed, false},
		{"closed is terminal", StatusClosed, StatusOpen, false},
		{"verified is terminal", StatusVerified, StatusOpen, false},
		{"no self transition", StatusOpen, StatusOpen, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusOpen.IsTerminal())
	assert.False(t, StatusPendingVerification.IsTerminal())
	assert.True(t, StatusClosed.IsTerminal())
	assert.True(t, StatusVerified.IsTerminal())
}

func TestPriorityIsValid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical} {
		assert.True(t, p.IsValid(), string(p))
	}
	assert.False(t, Priority("urgent").IsValid())
	assert.False(t, Priority("").IsValid())
}
