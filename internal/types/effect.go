package types

type EffectType string

const (
	// EffectPayment moves backing asset between accounts
	EffectPayment EffectType = "PAYMENT"
	// EffectAssetTransfer moves receipt tokens between accounts
	EffectAssetTransfer EffectType = "ASSET_TRANSFER"
	// EffectKeyRegOnline registers participation keys for an account
	EffectKeyRegOnline EffectType = "KEYREG_ONLINE"
	// EffectKeyRegOffline withdraws an account from consensus participation
	EffectKeyRegOffline EffectType = "KEYREG_OFFLINE"
)

func (t EffectType) String() string {
	return string(t)
}

// Effect is a single host-ledger action produced by a protocol operation.
// All effects of one operation are submitted as one atomic group.
type Effect struct {
	Type    EffectType         `json:"type"`
	From    Address            `json:"from,omitempty"`
	To      Address            `json:"to,omitempty"`
	Amount  uint64             `json:"amount,omitempty"`
	Account Address            `json:"account,omitempty"`
	Keys    *ParticipationKeys `json:"keys,omitempty"`
}

func Payment(from, to Address, amount uint64) Effect {
	return Effect{Type: EffectPayment, From: from, To: to, Amount: amount}
}

func AssetTransfer(from, to Address, amount uint64) Effect {
	return Effect{Type: EffectAssetTransfer, From: from, To: to, Amount: amount}
}

func KeyRegOnline(account Address, keys ParticipationKeys) Effect {
	return Effect{Type: EffectKeyRegOnline, Account: account, Keys: &keys}
}

func KeyRegOffline(account Address) Effect {
	return Effect{Type: EffectKeyRegOffline, Account: account}
}
