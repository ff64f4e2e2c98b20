package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	configDir string
	envFile   string
	chainID   int64
	refresh   bool
)

// rootCmd is the base command; every subcommand talks to one chain.
var rootCmd = &cobra.Command{
	Use:   "donatectl",
	Short: "Donate, approve and claim donation NFTs from the command line",
	Long: `donatectl drives the donation contracts deployed on the supported test networks.
Reads work without a wallet; writes sign with BAM_DONATION_WALLET_PRIVATE_KEY
and wait for the receipt, printing each status transition.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv(envFile)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "configs", "directory holding config.yaml")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file loaded before the config")
	rootCmd.PersistentFlags().Int64VarP(&chainID, "chain", "c", 84532, "chain id the wallet is pointed at")
	rootCmd.PersistentFlags().BoolVar(&refresh, "refresh", false, "bypass cached reads")
}
