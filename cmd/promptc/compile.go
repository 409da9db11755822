package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/kilnhq/promptc/pkg/compiler"
	"github.com/kilnhq/promptc/pkg/promptspec"
	"github.com/kilnhq/promptc/pkg/seedpack"
	"github.com/spf13/cobra"
)

func newCompileCmd() *cobra.Command {
	var (
		dial           int
		budget         int
		templateID     string
		forceArtifacts []string
		seedPath       string
		showReport     bool
	)

	cmd := &cobra.Command{
		Use:   "compile [request]",
		Short: "Compile a natural-language request into a structured prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pack, err := seedpack.Load(seedPath)
			if err != nil {
				return fmt.Errorf("loading seed pack: %w", err)
			}

			input := promptspec.CompileInput{
				RawInput:       args[0],
				Dial:           promptspec.DialLevel(dial),
				TokenBudget:    budget,
				ForceArtifacts: forceArtifacts,
			}
			if templateID != "" {
				id := promptspec.TemplateID(templateID)
				input.TemplateOverride = &id
			}

			resolveRefs := func(ctx context.Context, names []string) ([]promptspec.ArtifactRef, error) {
				return pack.ResolveRefs(names), nil
			}
			fetchArtifact := func(ctx context.Context, id string) (*promptspec.Artifact, error) {
				return pack.FetchArtifact(id), nil
			}

			out, err := compiler.New(nil).Compile(cmd.Context(), input, resolveRefs, fetchArtifact)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), styleError.Render("compile failed: "+err.Error()))
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), out.Rendered)

			if showReport {
				printReport(cmd, out)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&dial, "dial", envDefaultInt("PROMPTC_DIAL", 3), "verbosity dial, 0-5")
	cmd.Flags().IntVar(&budget, "budget", envDefaultInt("PROMPTC_BUDGET", 0), "token budget (0 = unlimited)")
	cmd.Flags().StringVar(&templateID, "template", "", "force a template id instead of auto-detecting one")
	cmd.Flags().StringSliceVar(&forceArtifacts, "artifact", nil, "artifact name to resolve even if absent from the request")
	cmd.Flags().StringVar(&seedPath, "seed", envDefault("PROMPTC_SEED_PACK", "seeds/default.yaml"), "path to a seed pack YAML file")
	cmd.Flags().BoolVar(&showReport, "report", false, "print the lint and injection report after the rendered prompt")

	return cmd
}

func printReport(cmd *cobra.Command, out promptspec.CompileOutput) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleHeading.Render(fmt.Sprintf("lint score: %d (passed=%v)", out.Lint.Score, out.Lint.Passed)))
	for _, r := range out.Lint.Results {
		fmt.Fprintf(w, "  [%s] %s: %s\n", r.Severity, r.RuleID, r.Message)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, styleMuted.Render(fmt.Sprintf(
		"blocks included=%d omitted=%d, tokens used=%d/%s",
		out.Injection.BlocksIncluded, out.Injection.BlocksOmitted,
		out.Injection.TotalTokensUsed, budgetLabel(out.Injection.TotalTokensBudget),
	)))
	for _, e := range out.Injection.Entries {
		status := "included"
		if !e.Included {
			status = "omitted: " + e.Reason
		}
		fmt.Fprintf(w, "  - %s / %s (%d tok): %s\n", e.ArtifactName, e.BlockLabel, e.TokenCount, status)
	}
}

func budgetLabel(budget int) string {
	if budget == 0 {
		return "unlimited"
	}
	return strings.TrimSpace(fmt.Sprintf("%d", budget))
}
