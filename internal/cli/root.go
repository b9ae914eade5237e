package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"marketbrief/config"
)

var (
	cfgFile string
	rootDir string
	cfg     *config.Config
	log     *logrus.Entry
)

var rootCmd = &cobra.Command{
	Use:   "marketbrief",
	Short: "Market brief generator for ticker symbols and queries",
	Long: `marketbrief aggregates market data and news for a set of ticker symbols,
ranks the news against your query by keyword overlap, and produces a
narrative market brief.

Example usage:
  marketbrief query -q "TSMC earnings"       # Rank news snippets for a query
  marketbrief brief -q "risk exposure in TSM" # Produce a full brief
  marketbrief serve                           # Run the HTTP API`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger := logrus.New()
		level, err := logrus.ParseLevel(cfg.Logging.Level)
		if err != nil {
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)
		log = logrus.NewEntry(logger)

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./marketbrief.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "working directory (default is current directory)")
}
