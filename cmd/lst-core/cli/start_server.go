package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/liquid-staking-core/internal/api"
	"github.com/babylonlabs-io/liquid-staking-core/internal/clients/hostledger"
	"github.com/babylonlabs-io/liquid-staking-core/internal/config"
	"github.com/babylonlabs-io/liquid-staking-core/internal/db"
	dbmodel "github.com/babylonlabs-io/liquid-staking-core/internal/db/model"
	"github.com/babylonlabs-io/liquid-staking-core/internal/observability/metrics"
	"github.com/babylonlabs-io/liquid-staking-core/internal/observability/tracing"
	"github.com/babylonlabs-io/liquid-staking-core/internal/queue"
	"github.com/babylonlabs-io/liquid-staking-core/internal/services"
)

const shutdownTimeout = 10 * time.Second

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the liquid staking protocol server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up protocol db model")
	}

	// create new db client
	database, err := db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	var dbClient db.DbInterface = db.NewDbWithMetrics(database)
	if err := dbClient.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("error while connecting to db")
	}

	var hostClient hostledger.HostLedgerInterface = hostledger.NewClient(&cfg.Host)
	hostClient = hostledger.NewHostLedgerWithMetrics(hostClient)

	qm, err := queue.NewQueueManager(cfg.Queue)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating queue manager")
	}
	defer qm.Shutdown()

	service := services.NewService(cfg, dbClient, hostClient, qm)
	if err := service.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("error while bootstrapping protocol")
	}

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	service.StartPollers(ctx)

	server := api.New(&cfg.Server, service.Protocol())
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error while shutting down api server")
		}
		if err := database.Disconnect(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error while disconnecting db client")
		}
	}()

	return server.Start()
}
