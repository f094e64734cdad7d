package api

import (
	"net/http"

	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

func (h *Handler) mint(w http.ResponseWriter, r *http.Request) {
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
	res, err := h.protocol.Mint(r.Context(), caller, req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *Handler) burn(w http.ResponseWriter, r *http.Request) {
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
	res, err := h.protocol.Burn(r.Context(), caller, req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	// a deferred burn did nothing, the caller retries next round
	status := http.StatusOK
	if res.Deferred {
		status = http.StatusAccepted
	}
	writeJSON(w, r, status, res)
}

func (h *Handler) delegate(w http.ResponseWriter, r *http.Request) {
	var req delegateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id, err := h.protocol.Delegate(r.Context(), req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"validator": id,
		"amount":    req.Amount,
	})
}

func (h *Handler) bid(w http.ResponseWriter, r *http.Request) {
	id, err := validatorIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	won, err := h.protocol.Bid(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"won":            won,
		"highest_bidder": h.protocol.Ledger().HighestBidder,
	})
}

func (h *Handler) snitch(w http.ResponseWriter, r *http.Request) {
	id, err := validatorIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	evicted, err := h.protocol.Snitch(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"evicted":    evicted,
		"burn_queue": h.protocol.BurnQueue(),
	})
}

func (h *Handler) reportDelinquency(w http.ResponseWriter, r *http.Request) {
	id, err := validatorIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.protocol.ReportDelinquency(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	h.respondValidator(w, r, id)
}

func (h *Handler) solveDelinquency(w http.ResponseWriter, r *http.Request) {
	id, err := validatorIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req solveRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	reporter, err := parseAddress("reporter", req.Reporter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	settlement, err := h.protocol.SolveDelinquency(r.Context(), reporter, id, req.Round)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, settlement)
}

func (h *Handler) reportBlock(w http.ResponseWriter, r *http.Request) {
	round, err := roundParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req reporterRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	reporter, err := parseAddress("reporter", req.Reporter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	settlement, err := h.protocol.ReportBlock(r.Context(), reporter, round)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, settlement)
}

func (h *Handler) sweepDust(w http.ResponseWriter, r *http.Request) {
	swept, err := h.protocol.SweepDust(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]uint64{"swept": swept})
}

func (h *Handler) getLedger(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.protocol.Ledger())
}

func (h *Handler) getBurnQueue(w http.ResponseWriter, r *http.Request) {
	slots := h.protocol.BurnQueue()
	entries := make([]types.ValidatorID, 0, len(slots))
	for _, id := range slots {
		if !id.IsNone() {
			entries = append(entries, id)
		}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"slots":   slots,
		"entries": entries,
	})
}
