package cli

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/liquid-staking-core/internal/config"
	"github.com/babylonlabs-io/liquid-staking-core/internal/db"
	"github.com/babylonlabs-io/liquid-staking-core/internal/db/model"
	"github.com/babylonlabs-io/liquid-staking-core/internal/protocol"
	"github.com/babylonlabs-io/liquid-staking-core/internal/services"
)

// DumpStateCmd prints the persisted protocol state and checks that it
// restores cleanly
// Usage: ./lst-core dump-state --config config.yml [--validator 3] [--operator <addr>] [--effects 10] [--operation burn]
func DumpStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump-state",
		Short: "Print the persisted protocol state",
		Args:  cobra.ExactArgs(0),
		Run:   dumpState,
	}

	cmd.Flags().Uint64("validator", 0, "Only print the validator with this id")
	cmd.Flags().String("operator", "", "Only print the validator run by this operator")
	cmd.Flags().Int64("effects", 0, "Number of latest effect groups to print")
	cmd.Flags().String("operation", "", "Only print effect groups of this operation")

	return cmd
}

func dumpState(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		log.Err(err).Msg("Failed to load config")
		os.Exit(1)
	}

	effects, err := cmd.Flags().GetInt64("effects")
	if err != nil {
		log.Err(err).Msg("Failed to parse effects flag")
		os.Exit(1)
	}
	operation, err := cmd.Flags().GetString("operation")
	if err != nil {
		log.Err(err).Msg("Failed to parse operation flag")
		os.Exit(1)
	}

	validatorID, err := cmd.Flags().GetUint64("validator")
	if err != nil {
		log.Err(err).Msg("Failed to parse validator flag")
		os.Exit(1)
	}
	operator, err := cmd.Flags().GetString("operator")
	if err != nil {
		log.Err(err).Msg("Failed to parse operator flag")
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		log.Err(err).Msg("Failed to connect to database")
		os.Exit(1)
	}

	if validatorID != 0 || operator != "" {
		var validator *model.ValidatorDocument
		if validatorID != 0 {
			validator, err = dbClient.GetValidatorByID(ctx, validatorID)
		} else {
			validator, err = dbClient.GetValidatorByOperator(ctx, operator)
		}
		if err != nil {
			log.Err(err).Msg("Failed to load validator")
			os.Exit(1)
		}
		spew.Dump(validator)
		os.Exit(0)
	}

	// the dump only reads, host and queue are not needed
	service := services.NewService(cfg, dbClient, nil, nil)
	snap, err := service.LoadSnapshot(ctx)
	if err != nil {
		log.Err(err).Msg("Failed to load protocol state")
		os.Exit(1)
	}
	spew.Dump(snap)

	if _, err := protocol.RestoreState(&cfg.Protocol, snap); err != nil {
		fmt.Printf("state is inconsistent: %v\n", err)
	}

	if effects > 0 {
		groups, err := dbClient.GetEffectGroups(ctx, operation, effects)
		if err != nil {
			log.Err(err).Msg("Failed to load effect groups")
			os.Exit(1)
		}
		spew.Dump(groups)
	}

	os.Exit(0)
}
