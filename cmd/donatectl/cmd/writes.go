package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bam-donation/internal/application/port"
	"bam-donation/internal/domain/entity"
	"bam-donation/internal/pkg/async"
)

var donateCmd = &cobra.Command{
	Use:   "donate <amount>",
	Short: "Donate native currency, amount in ether",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		tx, err := a.donations.DonateNative(cmd.Context(), a.session(), args[0], txOptions(cmd)...)
		if err != nil {
			return err
		}
		return follow(cmd, tx)
	}),
}

var donateTokenCmd = &cobra.Command{
	Use:   "donate-token <token> <amount>",
	Short: "Donate an ERC-20 token; approve it first",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		token, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		tx, err := a.donations.DonateToken(cmd.Context(), a.session(), token, args[1], txOptions(cmd)...)
		if err != nil {
			return err
		}
		return follow(cmd, tx)
	}),
}

var approveCmd = &cobra.Command{
	Use:   "approve <token> <amount>",
	Short: "Allow the donation contract to spend a token",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		token, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		tx, err := a.donations.ApproveToken(cmd.Context(), a.session(), token, args[1], txOptions(cmd)...)
		if err != nil {
			return err
		}
		return follow(cmd, tx)
	}),
}

var claimCmd = &cobra.Command{
	Use:   "claim <donation-index>",
	Short: "Claim the NFT earned by a donation",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		idx, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		tx, err := a.nfts.ClaimNFT(cmd.Context(), a.session(), idx)
		if err != nil {
			return err
		}
		return follow(cmd, tx)
	}),
}

func txOptions(cmd *cobra.Command) []port.TxOption {
	var opts []port.TxOption
	if cmd.Flags().Lookup("message") != nil {
		msg, _ := cmd.Flags().GetString("message")
		opts = append(opts, port.WithMessage(msg))
	}
	if cmd.Flags().Changed("decimals") {
		d, _ := cmd.Flags().GetUint8("decimals")
		opts = append(opts, port.WithDecimals(d))
	}
	return opts
}

// follow prints every status transition until the transaction settles.
func follow(cmd *cobra.Command, tx port.Transaction) error {
	updates, cancel := tx.Subscribe()
	defer cancel()

	out := cmd.OutOrStdout()
	var last entity.TransactionStatus
	for {
		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		case snap := <-updates:
			if changed(last, snap.Value) {
				printStatus(out, snap)
				last = snap.Value
			}
			if snap.Value.State.Terminal() {
				status, err := tx.Wait(cmd.Context())
				if err != nil {
					return err
				}
				return status.Error
			}
		}
	}
}

func changed(prev, next entity.TransactionStatus) bool {
	return prev.State != next.State || (prev.TransactionHash == nil) != (next.TransactionHash == nil)
}

func printStatus(w io.Writer, snap async.Snapshot[entity.TransactionStatus]) {
	s := snap.Value
	switch {
	case s.State == entity.TxConfirmed:
		fmt.Fprintf(w, "confirmed %s in block %d\n", s.TransactionHash.Hex(), s.BlockNumber)
	case s.State == entity.TxFailed:
		fmt.Fprintf(w, "failed: %v\n", s.Error)
	case s.TransactionHash != nil:
		fmt.Fprintf(w, "pending %s\n", s.TransactionHash.Hex())
	default:
		fmt.Fprintf(w, "%s\n", s.State)
	}
}

func init() {
	rootCmd.AddCommand(donateCmd, donateTokenCmd, approveCmd, claimCmd)
	for _, c := range []*cobra.Command{donateCmd, donateTokenCmd} {
		c.Flags().StringP("message", "m", "", "message stored with the donation")
	}
	for _, c := range []*cobra.Command{donateTokenCmd, approveCmd} {
		c.Flags().Uint8("decimals", 0, "token decimals; read from the token when unset")
	}
}
