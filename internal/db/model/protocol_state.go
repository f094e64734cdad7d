package model

import (
	"time"

	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

const (
	ProtocolStateCollection = "protocol_state"
	// the protocol state is a single document
	ProtocolStateID = "protocol_state"
)

type ProtocolStateDocument struct {
	ID              string    `bson:"_id"` // Primary key
	TotalBacking    uint64    `bson:"total_backing"`
	TotalSupply     uint64    `bson:"total_supply"`
	PegRatio        uint64    `bson:"peg_ratio"`
	IdleBacking     uint64    `bson:"idle_backing"`
	HighestBidder   uint64    `bson:"highest_bidder"`
	ExhaustedPeriod uint64    `bson:"exhausted_period"`
	NextValidatorID uint64    `bson:"next_validator_id"`
	BurnQueue       []uint64  `bson:"burn_queue"`
	LastOperation   string    `bson:"last_operation"`
	LastRound       uint64    `bson:"last_round"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

func BurnQueueToDocument(slots []types.ValidatorID) []uint64 {
	out := make([]uint64, len(slots))
	for i, id := range slots {
		out[i] = uint64(id)
	}
	return out
}

func (d *ProtocolStateDocument) BurnQueueSlots() []types.ValidatorID {
	out := make([]types.ValidatorID, len(d.BurnQueue))
	for i, id := range d.BurnQueue {
		out[i] = types.ValidatorID(id)
	}
	return out
}
