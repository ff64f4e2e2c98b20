package cmd

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"bam-donation/internal/pkg/apperrors"
)

var donationsCmd = &cobra.Command{
	Use:   "donations",
	Short: "List donations, optionally only those of one donor",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
		donorHex, _ := cmd.Flags().GetString("donor")
		if donorHex == "" {
			donations, err := a.donations.AllDonations(cmd.Context(), a.session(), readOptions()...)
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), donationViews(donations))
		}

		donor, err := parseAddress(donorHex)
		if err != nil {
			return err
		}
		res, err := a.nfts.DonationsByDonor(cmd.Context(), a.session(), donor, readOptions()...)
		if err != nil {
			return err
		}
		return writeYAML(cmd.OutOrStdout(), donationViews(res.Donations))
	}),
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show what the donation contract holds",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
		tokenHex, _ := cmd.Flags().GetString("token")
		if tokenHex == "" {
			bal, err := a.donations.ContractBalance(cmd.Context(), a.session(), readOptions()...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s ETH\n", bal.Formatted)
			return err
		}
		token, err := parseAddress(tokenHex)
		if err != nil {
			return err
		}
		bal, err := a.donations.ContractTokenBalance(cmd.Context(), a.session(), token, readOptions()...)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), bal.String())
		return err
	}),
}

var allowanceCmd = &cobra.Command{
	Use:   "allowance <token> <owner>",
	Short: "Show how much of a token owner let the donation contract spend",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		token, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		owner, err := parseAddress(args[1])
		if err != nil {
			return err
		}
		allowance, err := a.donations.TokenAllowance(cmd.Context(), a.session(), token, owner, readOptions()...)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), allowance.String())
		return err
	}),
}

type nftView struct {
	User           string          `yaml:"user"`
	HasReceivedNFT bool            `yaml:"hasReceivedNft"`
	Balance        uint64          `yaml:"balance"`
	ClaimedByIndex map[string]bool `yaml:"claimedByIndex,omitempty"`
}

var nftCmd = &cobra.Command{
	Use:   "nft <address>",
	Short: "Show NFT ownership and claim status of a donor",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		user, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		ctx, sess, opts := cmd.Context(), a.session(), readOptions()

		view := nftView{User: user.Hex()}
		if view.HasReceivedNFT, err = a.nfts.HasReceivedNFT(ctx, sess, user, opts...); err != nil {
			return err
		}
		if view.Balance, err = a.nfts.UserNFTBalance(ctx, sess, user, opts...); err != nil {
			return err
		}
		res, err := a.nfts.DonationsByDonor(ctx, sess, user, opts...)
		if err != nil {
			return err
		}
		for _, idx := range res.DonationIndices {
			claimed, err := a.nfts.IsDonationClaimed(ctx, sess, idx, opts...)
			if err != nil {
				return err
			}
			if view.ClaimedByIndex == nil {
				view.ClaimedByIndex = make(map[string]bool, len(res.DonationIndices))
			}
			view.ClaimedByIndex[idx.String()] = claimed
		}
		return writeYAML(cmd.OutOrStdout(), view)
	}),
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q is not an address", apperrors.ErrInvalidInput, s)
	}
	return common.HexToAddress(s), nil
}

func parseIndex(s string) (*big.Int, error) {
	idx, ok := new(big.Int).SetString(s, 10)
	if !ok || idx.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q is not a donation index", apperrors.ErrInvalidInput, s)
	}
	return idx, nil
}

func init() {
	rootCmd.AddCommand(donationsCmd, balanceCmd, allowanceCmd, nftCmd)
	donationsCmd.Flags().String("donor", "", "only donations made by this address")
	balanceCmd.Flags().String("token", "", "token address; native balance when empty")
}
