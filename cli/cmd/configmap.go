package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jeffvincent/flywheel-env/internal/endpoints"
	"github.com/jeffvincent/flywheel-env/internal/publish"
)

func newConfigMapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configmap",
		Short: "Print the endpoints ConfigMap manifest",
		Long: `Prints a ConfigMap holding the exported variables, ready for
kubectl apply -f - or for mounting with envFrom.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := publish.RenderConfigMap(endpoints.Default())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
