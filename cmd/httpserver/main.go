package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ruteri/biosdk-services/api/biosdkhandler"
	"github.com/ruteri/biosdk-services/cmd/flags"
	"github.com/ruteri/biosdk-services/common"
	_ "github.com/ruteri/biosdk-services/engine/sample"
	"github.com/ruteri/biosdk-services/httpserver"
	"github.com/ruteri/biosdk-services/metrics"
	"github.com/urfave/cli/v2"
)

var serverFlags = append([]cli.Flag{
	flags.ConfigFileFlag,
	flags.EngineFlag,
	flags.LogRequestResponseFlag,
	flags.ListenAddrFlag,
}, flags.CommonFlags...)

func main() {
	app := &cli.App{
		Name:    "biosdk-server",
		Usage:   "Serve biometric SDK operations over HTTP",
		Version: common.Version,
		Flags:   serverFlags,
		Action: func(cCtx *cli.Context) error {
			cfg, err := flags.LoadConfig(cCtx)
			if err != nil {
				return err
			}
			logger := flags.SetupLogger(cfg)

			metricsSrv, err := metrics.New(common.PackageName, cfg.MetricsAddr)
			if err != nil {
				logger.Error("Failed to create metrics server", "err", err)
				return err
			}

			serviceProvider, err := flags.ComposeProvider(cfg, logger, metricsSrv.Metrics)
			if err != nil {
				return err
			}

			handler := biosdkhandler.NewHandler(serviceProvider, cfg.Engine, logger)
			server, err := httpserver.New(flags.ConfigureServer(cfg, logger), handler, metricsSrv)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return fmt.Errorf("could not create server: %w", err)
			}

			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
