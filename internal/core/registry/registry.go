// Package registry stores validator records keyed by a stable id. Records are
// only handed out as copies; every mutation goes through Update, which
// re-derives the buffer.
package registry

import (
	"sort"

	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

type Registry struct {
	params     Params
	nextID     types.ValidatorID
	records    map[types.ValidatorID]*Record
	byOperator map[types.Address]types.ValidatorID
	byEscrow   map[types.Address]types.ValidatorID

	// changes since the last Clone or Restore
	dirty   map[types.ValidatorID]struct{}
	removed map[types.ValidatorID]struct{}
}

func New(params Params) *Registry {
	return &Registry{
		params:     params,
		nextID:     1,
		records:    make(map[types.ValidatorID]*Record),
		byOperator: make(map[types.Address]types.ValidatorID),
		byEscrow:   make(map[types.Address]types.ValidatorID),
		dirty:      make(map[types.ValidatorID]struct{}),
		removed:    make(map[types.ValidatorID]struct{}),
	}
}

// Restore rebuilds a registry from persisted records
func Restore(params Params, nextID types.ValidatorID, records []Record) (*Registry, error) {
	r := New(params)
	for i := range records {
		rec := records[i]
		if rec.ID.IsNone() {
			return nil, types.Errorf(types.InvalidState, "record without id")
		}
		if _, ok := r.records[rec.ID]; ok {
			return nil, types.Errorf(types.AlreadyExists, "duplicate validator %s", rec.ID)
		}
		if _, ok := r.byOperator[rec.Operator]; ok {
			return nil, types.Errorf(types.AlreadyExists, "duplicate operator %s", rec.Operator)
		}
		if _, ok := r.byEscrow[rec.Escrow]; ok {
			return nil, types.Errorf(types.AlreadyExists, "duplicate escrow %s", rec.Escrow)
		}
		rec.Buffer = params.ComputeBuffer(&rec)
		r.records[rec.ID] = &rec
		r.byOperator[rec.Operator] = rec.ID
		r.byEscrow[rec.Escrow] = rec.ID
		if rec.ID >= nextID {
			nextID = rec.ID + 1
		}
	}
	r.nextID = nextID
	return r, nil
}

func (r *Registry) Params() Params {
	return r.params
}

func (r *Registry) NextID() types.ValidatorID {
	return r.nextID
}

// Register creates a zero-initialized NotDelegatable record for operator
func (r *Registry) Register(operator, escrow types.Address) (types.ValidatorID, error) {
	if operator.IsEmpty() || escrow.IsEmpty() {
		return types.NoValidator, types.Errorf(types.BadRequest, "operator and escrow are required")
	}
	if id, ok := r.byOperator[operator]; ok {
		return types.NoValidator, types.Errorf(types.AlreadyExists,
			"operator %s already controls validator %s", operator, id)
	}
	if id, ok := r.byEscrow[escrow]; ok {
		return types.NoValidator, types.Errorf(types.AlreadyExists,
			"escrow %s already belongs to validator %s", escrow, id)
	}

	id := r.nextID
	r.nextID++
	rec := &Record{
		ID:       id,
		Operator: operator,
		Escrow:   escrow,
		Status:   types.StatusNotDelegatable,
	}
	rec.Buffer = r.params.ComputeBuffer(rec)

	r.records[id] = rec
	r.byOperator[operator] = id
	r.byEscrow[escrow] = id
	r.markDirty(id)
	return id, nil
}

func (r *Registry) Get(id types.ValidatorID) (Record, error) {
	rec, ok := r.records[id]
	if !ok {
		return Record{}, types.Errorf(types.NotFound, "validator %s not found", id)
	}
	return *rec, nil
}

func (r *Registry) GetByOperator(operator types.Address) (Record, error) {
	id, ok := r.byOperator[operator]
	if !ok {
		return Record{}, types.Errorf(types.NotFound, "no validator for operator %s", operator)
	}
	return r.Get(id)
}

func (r *Registry) GetByEscrow(escrow types.Address) (Record, error) {
	id, ok := r.byEscrow[escrow]
	if !ok {
		return Record{}, types.Errorf(types.NotFound, "no validator for account %s", escrow)
	}
	return r.Get(id)
}

func (r *Registry) Exists(id types.ValidatorID) bool {
	_, ok := r.records[id]
	return ok
}

// Buffer returns the current buffer of a validator
func (r *Registry) Buffer(id types.ValidatorID) (uint64, error) {
	rec, ok := r.records[id]
	if !ok {
		return 0, types.Errorf(types.NotFound, "validator %s not found", id)
	}
	return rec.Buffer, nil
}

// Update applies mutator to a copy of the record and stores it when the
// mutator succeeds. Identity fields cannot be changed and the buffer is
// always recomputed.
func (r *Registry) Update(id types.ValidatorID, mutator func(rec *Record) error) (Record, error) {
	current, ok := r.records[id]
	if !ok {
		return Record{}, types.Errorf(types.NotFound, "validator %s not found", id)
	}

	next := *current
	if err := mutator(&next); err != nil {
		return Record{}, err
	}
	next.ID = current.ID
	next.Operator = current.Operator
	next.Escrow = current.Escrow
	next.Buffer = r.params.ComputeBuffer(&next)

	r.records[id] = &next
	r.markDirty(id)
	return next, nil
}

// Close removes a validator. The caller sweeps its balances first.
func (r *Registry) Close(id types.ValidatorID) error {
	rec, ok := r.records[id]
	if !ok {
		return types.Errorf(types.NotFound, "validator %s not found", id)
	}
	if rec.Status == types.StatusDelinquent {
		return types.Errorf(types.InvalidState, "validator %s is delinquent and cannot be closed", id)
	}

	delete(r.records, id)
	delete(r.byOperator, rec.Operator)
	delete(r.byEscrow, rec.Escrow)
	delete(r.dirty, id)
	r.removed[id] = struct{}{}
	return nil
}

// All returns copies of every record ordered by id
func (r *Registry) All() []Record {
	out := make([]Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Registry) Len() int {
	return len(r.records)
}

func (r *Registry) CountByStatus() map[types.ValidatorStatus]int {
	counts := make(map[types.ValidatorStatus]int, 3)
	for _, rec := range r.records {
		counts[rec.Status]++
	}
	return counts
}

// TotalDelegated sums the delegated stake of all validators
func (r *Registry) TotalDelegated() uint64 {
	var total uint64
	for _, rec := range r.records {
		total += rec.Delegated
	}
	return total
}

// Clone returns an independent copy with an empty change set. Records are
// replaced rather than mutated in place, so the pointers can be shared.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		params:     r.params,
		nextID:     r.nextID,
		records:    make(map[types.ValidatorID]*Record, len(r.records)),
		byOperator: make(map[types.Address]types.ValidatorID, len(r.byOperator)),
		byEscrow:   make(map[types.Address]types.ValidatorID, len(r.byEscrow)),
		dirty:      make(map[types.ValidatorID]struct{}),
		removed:    make(map[types.ValidatorID]struct{}),
	}
	for id, rec := range r.records {
		c.records[id] = rec
	}
	for k, v := range r.byOperator {
		c.byOperator[k] = v
	}
	for k, v := range r.byEscrow {
		c.byEscrow[k] = v
	}
	return c
}

// Changes lists records written and ids removed since the last Clone
func (r *Registry) Changes() (updated []Record, removed []types.ValidatorID) {
	for id := range r.dirty {
		updated = append(updated, *r.records[id])
	}
	for id := range r.removed {
		removed = append(removed, id)
	}
	sort.Slice(updated, func(i, j int) bool { return updated[i].ID < updated[j].ID })
	sort.Slice(removed, func(i, j int) bool { return removed[i] < removed[j] })
	return updated, removed
}

func (r *Registry) markDirty(id types.ValidatorID) {
	delete(r.removed, id)
	r.dirty[id] = struct{}{}
}
