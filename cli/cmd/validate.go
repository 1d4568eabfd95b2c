package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeffvincent/flywheel-env/internal/endpoints"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that every endpoint URL is well formed",
		Long: `Parses every exported URL and checks its scheme and namespace.
No connections are made.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eps := endpoints.Default()
			out := cmd.OutOrStdout()

			header(out, "Endpoints")
			for _, ev := range eps.EnvVars() {
				keyValue(out, ev.Name, ev.Value)
			}

			if err := eps.Validate(); err != nil {
				for _, line := range strings.Split(err.Error(), "\n") {
					fail(out, line)
				}
				return errors.New("endpoint validation failed")
			}
			success(out, "All endpoint URLs are well formed")
			return nil
		},
	}
}
