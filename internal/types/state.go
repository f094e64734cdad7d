package types

import "fmt"

// Enum values for validator status
type ValidatorStatus string

const (
	// StatusNeutral validators are online and eligible for bidding and delegation.
	StatusNeutral ValidatorStatus = "NEUTRAL"
	// StatusNotDelegatable validators are offline or freshly registered.
	StatusNotDelegatable ValidatorStatus = "NOT_DELEGATABLE"
	// StatusDelinquent validators missed proposals and must work down their
	// delinquency counter before anything else is allowed.
	StatusDelinquent ValidatorStatus = "DELINQUENT"
)

func (s ValidatorStatus) String() string {
	return string(s)
}

func ValidatorStatusFromString(s string) (ValidatorStatus, error) {
	switch s {
	case StatusNeutral.String():
		return StatusNeutral, nil
	case StatusNotDelegatable.String():
		return StatusNotDelegatable, nil
	case StatusDelinquent.String():
		return StatusDelinquent, nil
	default:
		return "", fmt.Errorf("invalid validator status: %s", s)
	}
}

// QualifiedStatesForGoOnline returns the statuses a validator may be in to go online
func QualifiedStatesForGoOnline() []ValidatorStatus {
	return []ValidatorStatus{StatusNotDelegatable}
}

// QualifiedStatesForDelinquencyReport returns the statuses in which missed
// proposals can be reported. Offline validators are not expected to propose.
func QualifiedStatesForDelinquencyReport() []ValidatorStatus {
	return []ValidatorStatus{StatusNeutral, StatusDelinquent}
}

// QualifiedStatesForBlockReport returns the statuses in which a proposed block
// can be settled through ReportBlock. Delinquent validators settle through
// SolveDelinquency instead.
func QualifiedStatesForBlockReport() []ValidatorStatus {
	return []ValidatorStatus{StatusNeutral, StatusNotDelegatable}
}
