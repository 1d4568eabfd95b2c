package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeffvincent/flywheel-env/internal/endpoints"
	"github.com/jeffvincent/flywheel-env/internal/environ"
)

func newWriteEnvCmd() *cobra.Command {
	var dir string

	c := &cobra.Command{
		Use:   "write-env",
		Short: "Write the endpoint variables to a managed env file",
		Long: `Writes <dir>/flywheel.env with one KEY=VALUE line per variable, for
sidecars and wrapper scripts that source a file instead of inheriting
the environment.

Examples:
  flywheel-env write-env --dir /shared`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				return fmt.Errorf("--dir is required")
			}
			eps := endpoints.Default()
			path, err := environ.WriteFile(dir, eps)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			header(out, "Writing env file")
			for _, ev := range eps.EnvVars() {
				step(out, "✏️ ", ev.Name)
			}
			success(out, fmt.Sprintf("Wrote %s", path))
			return nil
		},
	}

	c.Flags().StringVar(&dir, "dir", envOrDefault("FLYWHEEL_ENV_DIR", ""), "Directory for flywheel.env")
	return c
}
