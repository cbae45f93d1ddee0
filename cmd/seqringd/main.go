// Command seqringd runs one producer source feeding a ring.BroadcastRing and
// several reader goroutines that drain it, plus a metrics server — the
// generalization of feeder/main.go's "load config, start feeds, wait" shape
// from a fixed set of exchange feeds to one configured source.Source.
package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alephtx/seqring/internal/logging"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "seqringd",
	Short: "seqringd runs a seqlock broadcast ring with one producer source and N readers",
	RunE:  runServe,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "config.toml", "path to the TOML config file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn, or error")
}

func main() {
	_ = godotenv.Load() // best-effort; fine if no .env is present

	if err := rootCmd.Execute(); err != nil {
		logger := logging.Must(logging.Config{Level: logLevel})
		logger.Sugar().Fatalf("seqringd: %v", err)
	}
}
