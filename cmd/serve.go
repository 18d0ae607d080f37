package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tranvictor/repscan/server"
	"github.com/tranvictor/repscan/telemetry"
)

var ServeAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reputation profiles over HTTP",
	Long: `Starts the HTTP service:

	GET  /api/onchain-stats?address=0x...           reputation profile of an address
	POST /api/calculate-role                        role prediction from profile features
	GET  /api/github/callback?code=...              GitHub OAuth callback (GITHUB_CLIENT_ID)
	POST /api/reward                                reward token mint (PRIVATE_KEY)
	POST /api/mint-badge                            role badge mint (PRIVATE_KEY)
	GET  /api/mint-badge/check-badge?address=0x...  role badge lookup (PRIVATE_KEY)
	GET  /health, GET /metrics

The GitHub and reward routes are only served when their variables are set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			appConfig.Addr = ServeAddr
		}
		defer func() { _ = appLog.Sync() }()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		shutdownTracing, err := telemetry.Setup(ctx, "repscan", VERSION, appConfig.OTELEndpoint)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				appLog.Warn("tracing shutdown failed", zap.Error(err))
			}
		}()

		network, err := currentNetwork()
		if err != nil {
			return err
		}

		metrics := server.NewMetrics("repscan")
		agg, r := newAggregator(network, metrics)
		defer r.Close()

		opts := []server.Option{
			server.WithLogger(appLog),
			server.WithMetrics(metrics),
			server.WithScorer(newScorer()),
		}
		if gh := newGitHubAuth(); gh != nil {
			opts = append(opts, server.WithGitHub(gh))
		}
		rw, cleanup, err := newRewards()
		if err != nil {
			return err
		}
		defer cleanup()
		if rw != nil {
			opts = append(opts, server.WithRewarder(rw))
		}

		appLog.Info("starting repscan",
			zap.String("version", VERSION),
			zap.String("network", network.GetName()),
			zap.String("addr", appConfig.Addr),
			zap.Duration("timeout", agg.Timeout()),
		)
		return server.New(appConfig.Addr, agg, opts...).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&ServeAddr, "addr", "", "listen address. Overrides REPSCAN_ADDR")
	rootCmd.AddCommand(serveCmd)
}
