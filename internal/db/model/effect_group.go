package model

import (
	"time"

	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

const EffectGroupCollection = "effect_group"

// EffectGroupDocument records the host effects submitted for one operation
type EffectGroupDocument struct {
	ID        string         `bson:"_id"` // Primary key
	Operation string         `bson:"operation"`
	Round     uint64         `bson:"round"`
	Effects   []EffectDetail `bson:"effects"`
	CreatedAt time.Time      `bson:"created_at"`
}

type EffectDetail struct {
	Type    string `bson:"type"`
	From    string `bson:"from,omitempty"`
	To      string `bson:"to,omitempty"`
	Amount  uint64 `bson:"amount,omitempty"`
	Account string `bson:"account,omitempty"`
}

func NewEffectGroupDocument(id, operation string, round uint64, effects []types.Effect) *EffectGroupDocument {
	details := make([]EffectDetail, 0, len(effects))
	for _, e := range effects {
		details = append(details, EffectDetail{
			Type:    e.Type.String(),
			From:    e.From.String(),
			To:      e.To.String(),
			Amount:  e.Amount,
			Account: e.Account.String(),
		})
	}
	return &EffectGroupDocument{
		ID:        id,
		Operation: operation,
		Round:     round,
		Effects:   details,
		CreatedAt: time.Now().UTC(),
	}
}
