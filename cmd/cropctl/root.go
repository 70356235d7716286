package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/quentinrf/plant-monitor/services/crop-service/pkg/tlsconfig"
)

var version = "dev"

// globalOptions are shared by every subcommand
type globalOptions struct {
	catalogPath string
	addr        string
	tls         tlsconfig.Files
	format      string
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "cropctl",
		Short: "cropctl - fuzzy crop suitability from soil readings",
		Long: `cropctl ranks crops by how well they suit a soil reading.

Each crop is scored by a fuzzy inference system over soil pH, temperature
and humidity. Commands run against the embedded crop catalog unless --addr
points them at a running crop service.`,
		Version:      version,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	debugLogging := flags.Bool("debug", false, "Enable debug logging")
	flags.StringVar(&opts.catalogPath, "catalog", "", "Crop catalog YAML (default: embedded catalog)")
	flags.StringVar(&opts.addr, "addr", "", "Crop service address; when set, queries go to the server")
	flags.StringVar(&opts.tls.Cert, "tls-cert", "", "Client certificate for mTLS")
	flags.StringVar(&opts.tls.Key, "tls-key", "", "Client key for mTLS")
	flags.StringVar(&opts.tls.CA, "tls-ca", "", "CA certificate for mTLS")
	flags.StringVarP(&opts.format, "format", "f", formatTable, "Output format: table or json")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		if *debugLogging {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		return validateFormat(opts.format)
	}

	// Add subcommands
	cmd.AddCommand(newRecommendCommand(opts))
	cmd.AddCommand(newConditionsCommand(opts))
	cmd.AddCommand(newCropsCommand(opts))
	cmd.AddCommand(newBatchCommand(opts))

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
