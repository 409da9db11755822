package main

import (
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	styleHeading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7586"))
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e53935"))
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "promptc",
		Short: "A deterministic prompt compiler",
		Long: `promptc turns a short natural-language request into a structured,
renderable prompt, using a library of reusable artifact blocks and a
fixed catalog of templates.`,
		SilenceUsage: true,
	}

	root.AddCommand(newCompileCmd())
	root.AddCommand(newArtifactsCmd())
	return root
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envDefaultInt is envDefault for integer-valued flag defaults (PROMPTC_DIAL,
// PROMPTC_BUDGET). An unset or unparseable value falls back silently, same
// as envDefault does for an unset string.
func envDefaultInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
