package cmd

import (
	"github.com/spf13/cobra"

	"bam-donation/internal/domain/entity"
)

type networkView struct {
	entity.NetworkInfo `yaml:",inline"`
	RPCs               []rpcView `yaml:"rpcs,omitempty"`
}

type rpcView struct {
	URL       string `yaml:"url"`
	Working   bool   `yaml:"working"`
	LatencyMs int64  `yaml:"latencyMs,omitempty"`
}

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List supported networks as YAML",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
		withRPCs, _ := cmd.Flags().GetBool("rpcs")

		var views []networkView
		for _, info := range a.networks.Networks(cmd.Context()) {
			view := networkView{NetworkInfo: info}
			if withRPCs {
				rpcs, err := a.networks.CheckedRPCs(cmd.Context(), info.ChainID)
				if err != nil {
					return err
				}
				for _, r := range rpcs {
					rv := rpcView{URL: r.URL.String(), Working: r.IsWorking != nil && *r.IsWorking}
					if r.LatencyMs != nil {
						rv.LatencyMs = *r.LatencyMs
					}
					view.RPCs = append(view.RPCs, rv)
				}
			}
			views = append(views, view)
		}
		return writeYAML(cmd.OutOrStdout(), views)
	}),
}

func init() {
	rootCmd.AddCommand(networksCmd)
	networksCmd.Flags().Bool("rpcs", false, "probe every known RPC endpoint of each network")
}
