package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/cache"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	"github.com/jeffvincent/flywheel-env/internal/endpoints"
	"github.com/jeffvincent/flywheel-env/internal/publish"
)

func newSyncCmd(opts *options) *cobra.Command {
	var probeAddr string

	c := &cobra.Command{
		Use:   "sync",
		Short: "Keep the endpoints ConfigMap published",
		Long: `Runs a controller that watches the flywheel-endpoints ConfigMap in
the hacohen-flywheel namespace, recreating it when deleted and
reverting manual edits. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLog := ctrl.Log.WithName("setup")
			eps := endpoints.Default()

			cfg, err := publish.RESTConfig(opts.kubeconfig)
			if err != nil {
				return err
			}

			mgr, err := ctrl.NewManager(cfg, ctrl.Options{
				Scheme: clientgoscheme.Scheme,
				Cache: cache.Options{
					DefaultNamespaces: map[string]cache.Config{eps.Namespace: {}},
				},
				Metrics:                metricsserver.Options{BindAddress: "0"},
				HealthProbeBindAddress: probeAddr,
			})
			if err != nil {
				return fmt.Errorf("unable to create manager: %w", err)
			}

			r := &publish.ConfigMapReconciler{Client: mgr.GetClient(), Endpoints: eps}
			if err := r.SetupWithManager(mgr); err != nil {
				return fmt.Errorf("unable to create controller: %w", err)
			}
			if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
				return fmt.Errorf("unable to set up health check: %w", err)
			}
			if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
				return fmt.Errorf("unable to set up ready check: %w", err)
			}

			// The watch only fires for existing objects, so publish once
			// before starting.
			direct, err := publish.NewClient(cfg)
			if err != nil {
				return err
			}
			if _, err := (&publish.Publisher{Client: direct}).ReconcileConfigMap(cmd.Context(), eps); err != nil {
				return err
			}

			setupLog.Info("starting manager", "namespace", eps.Namespace)
			return mgr.Start(ctrl.SetupSignalHandler())
		},
	}

	c.Flags().StringVar(&probeAddr, "health-probe-bind-address", ":8081", "The address the probe endpoint binds to")
	return c
}
