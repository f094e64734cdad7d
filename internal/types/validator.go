package types

import "strconv"

// ValidatorID is the stable registry key of a validator. IDs are assigned
// sequentially starting at 1; the zero value marks an empty reference.
type ValidatorID uint64

const NoValidator ValidatorID = 0

func (id ValidatorID) IsNone() bool {
	return id == NoValidator
}

func (id ValidatorID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

func ParseValidatorID(s string) (ValidatorID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return NoValidator, err
	}
	return ValidatorID(v), nil
}

// ParticipationKeys are the consensus keys registered when an escrow goes online
type ParticipationKeys struct {
	VoteKey         []byte `json:"vote_key"`
	SelectionKey    []byte `json:"selection_key"`
	StateProofKey   []byte `json:"state_proof_key"`
	VoteFirstValid  uint64 `json:"vote_first_valid"`
	VoteLastValid   uint64 `json:"vote_last_valid"`
	VoteKeyDilution uint64 `json:"vote_key_dilution"`
}

// BlockProposal is what the host ledger knows about a past round
type BlockProposal struct {
	Round    uint64  `json:"round"`
	Proposer Address `json:"proposer"`
	Payout   uint64  `json:"payout"`
}
