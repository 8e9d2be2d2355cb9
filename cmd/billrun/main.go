package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"billrun/internal/config"
	"billrun/internal/csvsource"
	"billrun/internal/infra"
	"billrun/internal/model"
	"billrun/internal/runner"
	"billrun/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var csvPath string

func main() {
	root := &cobra.Command{
		Use:           "billrun",
		Short:         "Batch invoicing client for the Billogram API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&csvPath, "file", "f", "", "invoice CSV file (default from INVOICES_CSV)")
	root.AddCommand(runCmd(), validateCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("billrun failed")
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process the invoice CSV: ensure customers, create and send billograms",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, records, err := load()
			if err != nil {
				return err
			}
			if dryRun {
				if sum := runner.DryRun(records); sum.Failed > 0 {
					return fmt.Errorf("%d of %d records invalid", sum.Failed, len(records))
				}
				return nil
			}
			if err := cfg.RequireAPICredentials(); err != nil {
				return err
			}

			// Graceful stop between records on SIGINT / SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client := infra.NewBillogramClient(
				cfg.APIBase, cfg.APIUser, cfg.APIPassword,
				time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)
			r := runner.New(service.NewInvoiceService(client))

			if sum := r.Run(ctx, records); sum.Failed > 0 {
				return fmt.Errorf("%d of %d records failed", sum.Failed, len(records))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and derive all fields without calling the API")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Offline check of the invoice CSV (no network calls)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, records, err := load()
			if err != nil {
				return err
			}
			if sum := runner.DryRun(records); sum.Failed > 0 {
				return fmt.Errorf("%d of %d records invalid", sum.Failed, len(records))
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the billrun version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("billrun " + version)
		},
	}
}

// load reads config, configures the logger, and decodes the input CSV.
func load() (*config.Config, []model.InvoiceRecord, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	setupLogger(cfg)

	path := csvPath
	if path == "" {
		path = cfg.InvoicesCSV
	}
	records, err := csvsource.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("file", path).Int("records", len(records)).Msg("invoice CSV loaded")
	return cfg, records, nil
}

// setupLogger configures zerolog — dev: pretty console, prod: JSON.
func setupLogger(cfg *config.Config) {
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
