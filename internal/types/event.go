package types

type EventType string

func (e EventType) String() string {
	return string(e)
}

const (
	EventValidatorRegistered  EventType = "validator_registered"
	EventValidatorCommitted   EventType = "validator_committed"
	EventValidatorUncommitted EventType = "validator_uncommitted"
	EventValidatorOnline      EventType = "validator_online"
	EventValidatorOffline     EventType = "validator_offline"
	EventValidatorClosed      EventType = "validator_closed"
	EventBidAccepted          EventType = "bid_accepted"
	EventStakeDelegated       EventType = "stake_delegated"
	EventLstMinted            EventType = "lst_minted"
	EventLstBurned            EventType = "lst_burned"
	EventBurnDeferred         EventType = "burn_deferred"
	EventValidatorSnitched    EventType = "validator_snitched"
	EventBlockReported        EventType = "block_reported"
	EventDelinquencyReported  EventType = "delinquency_reported"
	EventDelinquencySolved    EventType = "delinquency_solved"
	EventDustSwept            EventType = "dust_swept"
)

// ProtocolEvent is emitted once an operation has been committed
type ProtocolEvent struct {
	Type      EventType      `json:"type"`
	Round     uint64         `json:"round"`
	Validator ValidatorID    `json:"validator,omitempty"`
	Account   Address        `json:"account,omitempty"`
	Amount    uint64         `json:"amount,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}
