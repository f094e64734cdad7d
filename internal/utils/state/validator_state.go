package state

import (
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
	"github.com/babylonlabs-io/liquid-staking-core/internal/utils"
)

// validatorStateChangeMap maps the current status of a validator to the
// statuses it can transition to
var validatorStateChangeMap = map[types.ValidatorStatus][]types.ValidatorStatus{
	types.StatusNeutral: {
		types.StatusNotDelegatable,
		types.StatusDelinquent,
	},
	types.StatusNotDelegatable: {
		types.StatusNeutral,
		types.StatusDelinquent,
	},
	types.StatusDelinquent: {
		types.StatusNeutral,
		types.StatusNotDelegatable,
	},
}

// IsQualifiedStateForValidatorStateChange reports whether a validator in
// currentState may move to newState. Staying in the same state is allowed.
func IsQualifiedStateForValidatorStateChange(
	currentState types.ValidatorStatus, newState types.ValidatorStatus,
) bool {
	if currentState == newState {
		_, ok := validatorStateChangeMap[currentState]
		return ok
	}
	qualifiedStates, ok := validatorStateChangeMap[currentState]
	if !ok {
		return false
	}
	return utils.Contains(qualifiedStates, newState)
}

// IsQualifiedState reports whether state is one of qualified
func IsQualifiedState(state types.ValidatorStatus, qualified []types.ValidatorStatus) bool {
	return utils.Contains(qualified, state)
}
