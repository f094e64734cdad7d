package api

import (
	"context"
	"net/http"

	"github.com/babylonlabs-io/liquid-staking-core/internal/core/registry"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

type validatorResponse struct {
	ID                    types.ValidatorID     `json:"id"`
	Operator              types.Address         `json:"operator"`
	Escrow                types.Address         `json:"escrow"`
	Commit                uint64                `json:"commit"`
	Delegated             uint64                `json:"delegated"`
	Performance           uint64                `json:"performance"`
	Buffer                uint64                `json:"buffer"`
	Status                types.ValidatorStatus `json:"status"`
	LastBlockReported     uint64                `json:"last_block_reported"`
	LastDelinquencyReport uint64                `json:"last_delinquency_report"`
	Delinquency           uint64                `json:"delinquency"`
}

func newValidatorResponse(rec registry.Record) validatorResponse {
	return validatorResponse{
		ID:                    rec.ID,
		Operator:              rec.Operator,
		Escrow:                rec.Escrow,
		Commit:                rec.Commit,
		Delegated:             rec.Delegated,
		Performance:           rec.Performance,
		Buffer:                rec.Buffer,
		Status:                rec.Status,
		LastBlockReported:     rec.LastBlockReported,
		LastDelinquencyReport: rec.LastDelinquencyReport,
		Delinquency:           rec.Delinquency,
	}
}

func (h *Handler) registerValidator(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	operator, err := parseAddress("operator", req.Operator)
	if err != nil {
		writeError(w, r, err)
		return
	}
	escrow, err := parseAddress("escrow", req.Escrow)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.protocol.RegisterValidator(r.Context(), operator, escrow)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]types.ValidatorID{"id": id})
}

// listValidators returns all validators, or the one run by ?operator=
func (h *Handler) listValidators(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("operator"); raw != "" {
		operator, err := parseAddress("operator", raw)
		if err != nil {
			writeError(w, r, err)
			return
		}
		rec, err := h.protocol.ValidatorByOperator(operator)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, newValidatorResponse(rec))
		return
	}

	records := h.protocol.Validators()
	resp := make([]validatorResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, newValidatorResponse(rec))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) getValidator(w http.ResponseWriter, r *http.Request) {
	id, err := validatorIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, err := h.protocol.Validator(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newValidatorResponse(rec))
}

func (h *Handler) commit(w http.ResponseWriter, r *http.Request) {
	h.moveCommit(w, r, h.protocol.Commit)
}

func (h *Handler) uncommit(w http.ResponseWriter, r *http.Request) {
	h.moveCommit(w, r, h.protocol.Uncommit)
}

func (h *Handler) moveCommit(
	w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, caller types.Address, id types.ValidatorID, amount uint64) error,
) {
	id, err := validatorIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req amountRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	caller, err := req.caller()
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := op(r.Context(), caller, id, req.Amount); err != nil {
		writeError(w, r, err)
		return
	}
	h.respondValidator(w, r, id)
}

func (h *Handler) goOnline(w http.ResponseWriter, r *http.Request) {
	id, err := validatorIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req onlineRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.protocol.GoOnline(r.Context(), caller, id, req.Keys); err != nil {
		writeError(w, r, err)
		return
	}
	h.respondValidator(w, r, id)
}

func (h *Handler) goOffline(w http.ResponseWriter, r *http.Request) {
	h.callerOperation(w, r, h.protocol.GoOffline, true)
}

func (h *Handler) closeValidator(w http.ResponseWriter, r *http.Request) {
	h.callerOperation(w, r, h.protocol.CloseValidator, false)
}

func (h *Handler) callerOperation(
	w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, caller types.Address, id types.ValidatorID) error,
	respondWithValidator bool,
) {
	id, err := validatorIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req accountRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	caller, err := req.caller()
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := op(r.Context(), caller, id); err != nil {
		writeError(w, r, err)
		return
	}
	if !respondWithValidator {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.respondValidator(w, r, id)
}

func (h *Handler) respondValidator(w http.ResponseWriter, r *http.Request, id types.ValidatorID) {
	rec, err := h.protocol.Validator(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newValidatorResponse(rec))
}
