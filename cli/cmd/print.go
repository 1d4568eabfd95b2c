package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jeffvincent/flywheel-env/internal/endpoints"
	"github.com/jeffvincent/flywheel-env/internal/environ"
)

func newPrintCmd() *cobra.Command {
	var (
		format   string
		external bool
	)

	c := &cobra.Command{
		Use:   "print",
		Short: "Print the endpoint variables",
		Long: `Prints the exported variables without touching the environment.

Examples:
  eval "$(flywheel-env print)"
  flywheel-env print --format json
  flywheel-env print --format dotenv --external`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := environ.ParseFormat(format)
			if err != nil {
				return err
			}
			return environ.RenderEndpoints(cmd.OutOrStdout(), endpoints.Default(), f, external)
		},
	}

	c.Flags().StringVarP(&format, "format", "o", envOrDefault("FLYWHEEL_ENV_FORMAT", string(environ.FormatShell)),
		"Output format: shell, dotenv, json, yaml")
	c.Flags().BoolVar(&external, "external", false, "Also print NIM_EXTERNAL_URL (a comment in shell and dotenv output)")
	return c
}
