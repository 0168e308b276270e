// Package root contains the root command for the application
package root

import (
	"nordledger/sie-import/internal/common"
	"nordledger/sie-import/internal/config"
	"nordledger/sie-import/internal/fiscalyear"
	"nordledger/sie-import/internal/importer"
	"nordledger/sie-import/internal/sie4parser"
	"nordledger/sie-import/internal/sie5parser"
	"nordledger/sie-import/internal/store"
	"nordledger/sie-import/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are shared by multiple commands
type CommonFlags struct {
	Input        string
	Output       string
	Organization string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration
	Cfg *config.Config

	// SharedFlags holds the flag values shared across subcommands
	SharedFlags CommonFlags

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "sie-import",
		Short: "A CLI tool to parse, validate and prepare SIE accounting files for ledger import.",
		Long: `sie-import reads Swedish SIE accounting interchange files (SIE4 text and
SIE5 XML), validates them, and converts them into balance-checked journal
entries ready for import into a ledger.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to sie-import!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Fatal("Failed to load configuration")
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)

			if cfg.CSV.Delimiter != "" {
				common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			}
			sie4parser.SetDefaultSeries(cfg.Import.DefaultSeries)
			importer.SetTolerance(cfg.Import.BalanceTolerance)
			validation.SetTolerance(cfg.Import.BalanceTolerance)

			// Route every package through the configured logger.
			sie4parser.SetLogger(Log)
			sie5parser.SetLogger(Log)
			validation.SetLogger(Log)
			fiscalyear.SetLogger(Log)
			store.SetLogger(Log)
			common.SetLogger(Log)
		},
	}
)

func init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input SIE file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output CSV file")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Organization, "org", "", "Organization id in the target ledger")
}
