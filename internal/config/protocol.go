package config

import (
	"errors"
	"fmt"

	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

// amounts are expressed in the smallest unit of the backing asset
const (
	defaultScale                    = 1_000_000_000_000
	defaultBufferMax                = 1_000_000
	defaultPerformanceStakeIncrease = 10_000_000_000
	defaultPerformanceStep          = 10
	defaultMinCommit                = 30_000_000_000
	defaultMaxStakePerAccount       = 70_000_000_000_000
	defaultKeyRegFee                = 2_000_000
	defaultValidatorCommission      = 10
	defaultOperatorReportMaxTime    = 320
	defaultDelinquencyRounds        = 20_000
	defaultMinDelegation            = 1_000_000_000
	defaultMaxDelegationPerRound    = 1_000_000_000_000
)

type ProtocolConfig struct {
	// Account holding idle backing and the receipt token reserve
	Account                  string `mapstructure:"account"`
	Scale                    uint64 `mapstructure:"scale"`
	BufferMax                uint64 `mapstructure:"buffer-max"`
	PerformanceStakeIncrease uint64 `mapstructure:"performance-stake-increase"`
	PerformanceStep          uint64 `mapstructure:"performance-step"`
	MinCommit                uint64 `mapstructure:"min-commit"`
	MaxStakePerAccount       uint64 `mapstructure:"max-stake-per-account"`
	KeyRegFee                uint64 `mapstructure:"keyreg-fee"`
	// ValidatorCommission is the percentage of a block payout paid as fee
	ValidatorCommission   uint64 `mapstructure:"validator-commission"`
	OperatorReportMaxTime uint64 `mapstructure:"operator-report-max-time"`
	DelinquencyRounds     uint64 `mapstructure:"delinquency-rounds"`
	MinDelegation         uint64 `mapstructure:"min-delegation"`
	MaxDelegationPerRound uint64 `mapstructure:"max-delegation-per-round"`
}

func DefaultProtocolConfig() *ProtocolConfig {
	return &ProtocolConfig{
		Scale:                    defaultScale,
		BufferMax:                defaultBufferMax,
		PerformanceStakeIncrease: defaultPerformanceStakeIncrease,
		PerformanceStep:          defaultPerformanceStep,
		MinCommit:                defaultMinCommit,
		MaxStakePerAccount:       defaultMaxStakePerAccount,
		KeyRegFee:                defaultKeyRegFee,
		ValidatorCommission:      defaultValidatorCommission,
		OperatorReportMaxTime:    defaultOperatorReportMaxTime,
		DelinquencyRounds:        defaultDelinquencyRounds,
		MinDelegation:            defaultMinDelegation,
		MaxDelegationPerRound:    defaultMaxDelegationPerRound,
	}
}

func (cfg *ProtocolConfig) Validate() error {
	if _, err := types.ParseAddress(cfg.Account); err != nil {
		return fmt.Errorf("invalid protocol account: %w", err)
	}
	if cfg.Scale == 0 {
		return errors.New("scale must be positive")
	}
	if cfg.BufferMax == 0 {
		return errors.New("buffer-max must be positive")
	}
	if cfg.PerformanceStep == 0 {
		return errors.New("performance-step must be positive")
	}
	if cfg.ValidatorCommission > 100 {
		return errors.New("validator-commission is a percentage and must not exceed 100")
	}
	if cfg.MinCommit > cfg.MaxStakePerAccount {
		return errors.New("min-commit must not exceed max-stake-per-account")
	}
	if cfg.DelinquencyRounds == 0 {
		return errors.New("delinquency-rounds must be positive")
	}
	if cfg.MaxDelegationPerRound < cfg.MinDelegation {
		return errors.New("max-delegation-per-round must not be lower than min-delegation")
	}

	return nil
}

// ProtocolAccount returns the configured account, Validate must have passed
func (cfg *ProtocolConfig) ProtocolAccount() types.Address {
	return types.Address(cfg.Account)
}
