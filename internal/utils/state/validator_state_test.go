package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

func TestIsQualifiedStateForValidatorStateChange(t *testing.T) {
	tests := []struct {
		name     string
		current  types.ValidatorStatus
		next     types.ValidatorStatus
		expected bool
	}{
		{"neutral to offline", types.StatusNeutral, types.StatusNotDelegatable, true},
		{"neutral to delinquent", types.StatusNeutral, types.StatusDelinquent, true},
		{"offline to neutral", types.StatusNotDelegatable, types.StatusNeutral, true},
		{"offline to delinquent", types.StatusNotDelegatable, types.StatusDelinquent, true},
		{"delinquent to neutral", types.StatusDelinquent, types.StatusNeutral, true},
		{"delinquent to offline", types.StatusDelinquent, types.StatusNotDelegatable, true},
		{"same state", types.StatusNeutral, types.StatusNeutral, true},
		{"unknown current", types.ValidatorStatus("UNKNOWN"), types.StatusNeutral, false},
		{"unknown next", types.StatusNeutral, types.ValidatorStatus("UNKNOWN"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsQualifiedStateForValidatorStateChange(tt.current, tt.next))
		})
	}
}

func TestIsQualifiedState(t *testing.T) {
	assert.True(t, IsQualifiedState(types.StatusNotDelegatable, types.QualifiedStatesForGoOnline()))
	assert.False(t, IsQualifiedState(types.StatusNeutral, types.QualifiedStatesForGoOnline()))
	assert.True(t, IsQualifiedState(types.StatusDelinquent, types.QualifiedStatesForDelinquencyReport()))
	assert.False(t, IsQualifiedState(types.StatusDelinquent, types.QualifiedStatesForBlockReport()))
}
