package main

import (
	"fmt"

	"github.com/kilnhq/promptc/pkg/seedpack"
	"github.com/spf13/cobra"
)

func newArtifactsCmd() *cobra.Command {
	var seedPath string

	cmd := &cobra.Command{
		Use:   "artifacts",
		Short: "List the artifacts available in a seed pack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pack, err := seedpack.Load(seedPath)
			if err != nil {
				return fmt.Errorf("loading seed pack: %w", err)
			}

			names := pack.Names()
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), styleMuted.Render("no artifacts in this pack"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), styleHeading.Render(fmt.Sprintf("artifacts (%d)", len(names))))
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "  @%s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&seedPath, "seed", envDefault("PROMPTC_SEED_PACK", "seeds/default.yaml"), "path to a seed pack YAML file")

	return cmd
}
