package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// options holds the persistent flags shared by every command.
type options struct {
	// kubeconfig overrides the kubeconfig lookup for cluster commands.
	kubeconfig string

	// verbose enables debug logging.
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "flywheel-env",
		Short: "flywheel-env: in-cluster endpoints for the data flywheel",
		Long: `flywheel-env resolves the Service URLs of the data flywheel stack
(API, Elasticsearch, MongoDB, Redis, MLflow, NeMo gateway, data store)
in the hacohen-flywheel namespace and publishes them as environment
variables.

Common workflow:

  flywheel-env show                        # configure + print the summary
  flywheel-env print --format shell        # export lines for eval
  flywheel-env exec -- python train.py     # run a child with the variables
  flywheel-env write-env --dir /shared     # managed flywheel.env file
  flywheel-env configmap                   # ConfigMap manifest
  flywheel-env apply -d df-api             # publish to the cluster
  flywheel-env sync                        # keep the ConfigMap in place`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctrl.SetLogger(zap.New(zap.UseDevMode(opts.verbose), zap.WriteTo(cmd.ErrOrStderr())))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.kubeconfig, "kubeconfig", "", "Path to a kubeconfig (default: $KUBECONFIG, in-cluster, ~/.kube/config)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newShowCmd(),
		newPrintCmd(),
		newExecCmd(),
		newWriteEnvCmd(),
		newConfigMapCmd(),
		newApplyCmd(opts),
		newValidateCmd(),
		newSyncCmd(opts),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	if err := newRootCmd().Execute(); err != nil {
		return fmt.Errorf("cli error: %w", err)
	}
	return nil
}

// envOrDefault returns the value of an env var, or fallback if unset.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
