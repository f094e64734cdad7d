// Package burnqueue holds the fixed set of validators that forced
// withdrawals are taken from when idle backing runs out.
package burnqueue

import (
	"github.com/babylonlabs-io/liquid-staking-core/internal/core/registry"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

// Length is the fixed capacity of the queue
const Length = 10

// Queue always holds the validators with the highest buffers seen at
// insertion time. Empty slots hold types.NoValidator. It is a value type.
type Queue struct {
	slots [Length]types.ValidatorID
}

// Withdrawal is stake pulled out of a validator by Drain
type Withdrawal struct {
	Validator types.ValidatorID
	Escrow    types.Address
	Amount    uint64
}

// FromSlots restores a persisted queue
func FromSlots(slots []types.ValidatorID) (Queue, error) {
	var q Queue
	if len(slots) > Length {
		return q, types.Errorf(types.CapacityExceeded, "burn queue holds at most %d entries, got %d", Length, len(slots))
	}
	seen := make(map[types.ValidatorID]struct{}, len(slots))
	for i, id := range slots {
		if id.IsNone() {
			continue
		}
		if _, ok := seen[id]; ok {
			return q, types.Errorf(types.InvalidState, "validator %s appears twice in burn queue", id)
		}
		seen[id] = struct{}{}
		q.slots[i] = id
	}
	return q, nil
}

// Slots returns a copy of the raw slots, sentinels included
func (q *Queue) Slots() []types.ValidatorID {
	out := make([]types.ValidatorID, Length)
	copy(out, q.slots[:])
	return out
}

// Entries returns the occupied slots in queue order
func (q *Queue) Entries() []types.ValidatorID {
	out := make([]types.ValidatorID, 0, Length)
	for _, id := range q.slots {
		if !id.IsNone() {
			out = append(out, id)
		}
	}
	return out
}

func (q *Queue) Len() int {
	n := 0
	for _, id := range q.slots {
		if !id.IsNone() {
			n++
		}
	}
	return n
}

// IsFull reports whether no empty slot remains
func (q *Queue) IsFull() bool {
	for _, id := range q.slots {
		if id.IsNone() {
			return false
		}
	}
	return true
}

func (q *Queue) Contains(id types.ValidatorID) bool {
	for _, slot := range q.slots {
		if slot == id {
			return true
		}
	}
	return false
}

// Snitch offers candidate to the queue. The first empty slot takes it;
// on a full queue the lowest buffer among the residents and the candidate is
// carried to the end of the scan and left out, ties keeping the resident.
// It returns the validator that did not make it into the queue, or
// NoValidator when nothing was evicted.
func (q *Queue) Snitch(reg *registry.Registry, candidate types.ValidatorID) (types.ValidatorID, error) {
	carried := candidate
	carriedBuffer, err := reg.Buffer(candidate)
	if err != nil {
		return types.NoValidator, err
	}
	if q.Contains(candidate) {
		return types.NoValidator, nil
	}

	for i, resident := range q.slots {
		if resident.IsNone() {
			q.slots[i] = candidate
			return types.NoValidator, nil
		}
	}

	next := q.slots
	for i, resident := range next {
		residentBuffer, err := reg.Buffer(resident)
		if err != nil {
			return types.NoValidator, err
		}
		if residentBuffer < carriedBuffer {
			next[i] = carried
			carried, carriedBuffer = resident, residentBuffer
		}
	}
	q.slots = next
	return carried, nil
}

// Remove clears any slot holding id
func (q *Queue) Remove(id types.ValidatorID) bool {
	removed := false
	for i, slot := range q.slots {
		if slot == id {
			q.slots[i] = types.NoValidator
			removed = true
		}
	}
	return removed
}

// Drain withdraws up to requested from the queued validators in order.
// Fully drained validators leave the queue. Slots pointing at unknown
// validators are cleared.
func (q *Queue) Drain(reg *registry.Registry, requested uint64) (uint64, []Withdrawal, error) {
	var (
		burned      uint64
		withdrawals []Withdrawal
	)
	next := q.slots
	for i, id := range next {
		if burned == requested {
			break
		}
		if id.IsNone() {
			continue
		}
		current, err := reg.Get(id)
		if err != nil {
			next[i] = types.NoValidator
			continue
		}
		if current.Delegated == 0 {
			next[i] = types.NoValidator
			continue
		}

		taken := min(requested-burned, current.Delegated)
		rec, err := reg.Update(id, func(rec *registry.Record) error {
			rec.Delegated -= taken
			return nil
		})
		if err != nil {
			return 0, nil, err
		}
		if rec.Delegated == 0 {
			next[i] = types.NoValidator
		}
		burned += taken
		withdrawals = append(withdrawals, Withdrawal{
			Validator: id,
			Escrow:    rec.Escrow,
			Amount:    taken,
		})
	}
	q.slots = next
	return burned, withdrawals, nil
}
