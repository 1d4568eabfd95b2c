package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/jeffvincent/flywheel-env/internal/endpoints"
	"github.com/jeffvincent/flywheel-env/internal/publish"
)

// newClient builds the cluster client; tests swap in a fake.
var newClient = func(kubeconfig string) (client.Client, error) {
	cfg, err := publish.RESTConfig(kubeconfig)
	if err != nil {
		return nil, err
	}
	return publish.NewClient(cfg)
}

func newApplyCmd(opts *options) *cobra.Command {
	var deployments []string

	c := &cobra.Command{
		Use:   "apply",
		Short: "Publish the endpoints ConfigMap and inject Deployments",
		Long: `Creates or updates the flywheel-endpoints ConfigMap in the
hacohen-flywheel namespace. Each --deployment also gets the variables
merged into all of its containers; unchanged Deployments are left alone.

Examples:
  flywheel-env apply
  flywheel-env apply -d df-api -d df-celery-worker`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kc, err := newClient(opts.kubeconfig)
			if err != nil {
				return err
			}
			p := &publish.Publisher{Client: kc}
			eps := endpoints.Default()
			out := cmd.OutOrStdout()

			header(out, fmt.Sprintf("Publishing endpoints to %s", eps.Namespace))
			res, err := p.ReconcileConfigMap(cmd.Context(), eps)
			if err != nil {
				fail(out, "ConfigMap "+publish.ConfigMapName)
				return err
			}
			if res == publish.Updated {
				warn(out, fmt.Sprintf("configmap/%s had drifted and was rewritten", publish.ConfigMapName))
			} else {
				success(out, fmt.Sprintf("configmap/%s %s", publish.ConfigMapName, res))
			}

			for _, name := range deployments {
				changed, err := p.InjectDeployment(cmd.Context(), name, eps)
				if err != nil {
					fail(out, "deployment/"+name)
					return err
				}
				if changed {
					success(out, fmt.Sprintf("deployment/%s updated, rolling restart triggered", name))
				} else {
					step(out, "•", dimText(fmt.Sprintf("deployment/%s unchanged", name)))
				}
			}
			return nil
		},
	}

	c.Flags().StringSliceVarP(&deployments, "deployment", "d", nil, "Deployment to inject the variables into (repeatable)")
	return c
}
