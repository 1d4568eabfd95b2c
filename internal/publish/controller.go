/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package publish

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/predicate"

	"github.com/jeffvincent/flywheel-env/internal/endpoints"
)

// ConfigMapReconciler keeps the endpoints ConfigMap equal to Endpoints,
// recreating it when deleted and reverting edits.
type ConfigMapReconciler struct {
	client.Client
	Endpoints *endpoints.Endpoints
}

//+kubebuilder:rbac:groups="",resources=configmaps,verbs=get;list;watch;create;update;patch
//+kubebuilder:rbac:groups=apps,resources=deployments,verbs=get;list;watch;update;patch

// Reconcile brings the endpoints ConfigMap back to its desired state.
// Requests for any other object are ignored.
func (r *ConfigMapReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx)

	if req.Name != ConfigMapName || req.Namespace != r.Endpoints.Namespace {
		return ctrl.Result{}, nil
	}

	res, err := (&Publisher{Client: r.Client}).ReconcileConfigMap(ctx, r.Endpoints)
	if err != nil {
		return ctrl.Result{}, err
	}
	if res != Unchanged {
		logger.Info("Reconciliation complete", "result", res)
	}
	return ctrl.Result{}, nil
}

// SetupWithManager watches only the endpoints ConfigMap.
func (r *ConfigMapReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		Named("flywheel-endpoints").
		For(&corev1.ConfigMap{}, builder.WithPredicates(r.watchPredicate())).
		Complete(r)
}

// watchPredicate drops events for every ConfigMap but the endpoints one.
func (r *ConfigMapReconciler) watchPredicate() predicate.Predicate {
	return predicate.NewPredicateFuncs(r.owns)
}

func (r *ConfigMapReconciler) owns(obj client.Object) bool {
	return obj.GetName() == ConfigMapName && obj.GetNamespace() == r.Endpoints.Namespace
}
