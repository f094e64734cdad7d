package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

const maxRequestBodyBytes = 1 << 16

func badRequest(format string, args ...any) *types.Error {
	return types.Errorf(types.BadRequest, format, args...)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return badRequest("invalid request body: %v", err)
	}
	return nil
}

func parseAddress(field, value string) (types.Address, error) {
	addr, err := types.ParseAddress(value)
	if err != nil {
		return "", badRequest("invalid %s: %v", field, err)
	}
	return addr, nil
}

func validatorIDParam(r *http.Request) (types.ValidatorID, error) {
	raw := chi.URLParam(r, "id")
	id, err := types.ParseValidatorID(raw)
	if err != nil || id.IsNone() {
		return types.NoValidator, badRequest("invalid validator id %q", raw)
	}
	return id, nil
}

func roundParam(r *http.Request) (uint64, error) {
	raw := chi.URLParam(r, "round")
	round, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, badRequest("invalid round %q", raw)
	}
	return round, nil
}

// accountRequest carries the acting account as sent. The gateway in front of
// the API must authenticate the sender and fill in caller.
type accountRequest struct {
	Caller string `json:"caller"`
}

func (req accountRequest) caller() (types.Address, error) {
	return parseAddress("caller", req.Caller)
}

type amountRequest struct {
	Caller string `json:"caller"`
	Amount uint64 `json:"amount"`
}

func (req amountRequest) caller() (types.Address, error) {
	return parseAddress("caller", req.Caller)
}

type registerRequest struct {
	Operator string `json:"operator"`
	Escrow   string `json:"escrow"`
}

type onlineRequest struct {
	Caller string                  `json:"caller"`
	Keys   types.ParticipationKeys `json:"keys"`
}

type reporterRequest struct {
	Reporter string `json:"reporter"`
}

type solveRequest struct {
	Reporter string `json:"reporter"`
	Round    uint64 `json:"round"`
}

type delegateRequest struct {
	Amount uint64 `json:"amount"`
}
