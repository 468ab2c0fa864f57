package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/cleaner"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/config"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/pkg/logger"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/ui"
)

var (
	servePort string
	serveData string
	serveDemo bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard API server",
	Long: `Serve starts the JSON API the dashboard talks to. Datasets can be
preloaded from a file (--data) or generated (--demo); further datasets
arrive through POST /api/datasets.

Examples:
  survey-analyzer serve --demo
  survey-analyzer serve --data responses.xlsx --sheet "Form Responses" --port 9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (default from PORT env or 8080)")
	serveCmd.Flags().StringVar(&serveData, "data", "", "survey file to preload at startup")
	serveCmd.Flags().BoolVar(&serveDemo, "demo", false, "preload a generated demo dataset")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Server.Port = servePort
	}
	if serveData != "" {
		cfg.Data.File = serveData
	}
	if serveDemo {
		cfg.Data.Demo = true
	}
	if sheet := viper.GetString("sheet"); sheet != "" {
		cfg.Data.SheetName = sheet
	}
	if !quiet && !verbose {
		logger.SetLevel(cfg.Logging.Level)
	}

	opts, err := cleaner.LoadOptions(viper.GetString("cleaning"))
	if err != nil {
		return err
	}

	s := ui.NewServer(cfg, opts)
	if cfg.Data.File != "" {
		if _, err := s.PreloadFile(cfg.Data.File, cfg.Data.SheetName); err != nil {
			return err
		}
	}
	if cfg.Data.Demo {
		if _, err := s.PreloadDemo(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Logger.Infof("[Server] Received %s, shutting down", sig)
		cancel()
	}()

	return s.Run(ctx)
}
