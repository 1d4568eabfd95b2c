package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jeffvincent/flywheel-env/internal/environ"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Configure the environment and print the endpoint summary",
		Long: `Sets API_BASE_URL, ELASTICSEARCH_URL, MONGODB_URL, REDIS_URL,
MLFLOW_TRACKING_URI, NEMO_BASE_URL, NIM_BASE_URL and DATASTORE_BASE_URL
in this process and prints the confirmation summary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := environ.ConfigureProcess(cmd.Context(), cmd.OutOrStdout())
			return err
		},
	}
}
