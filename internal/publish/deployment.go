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
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/equality"
	"k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/jeffvincent/flywheel-env/internal/endpoints"
)

// InjectDeployment merges the endpoint variables into every container of the
// named Deployment in the endpoint namespace. It reports whether the
// Deployment was updated; an unchanged Deployment is not written, so no
// rollout is triggered.
func (p *Publisher) InjectDeployment(ctx context.Context, name string, eps *endpoints.Endpoints) (bool, error) {
	logger := log.FromContext(ctx)

	deploy := &appsv1.Deployment{}
	if err := p.Get(ctx, types.NamespacedName{Name: name, Namespace: eps.Namespace}, deploy); err != nil {
		if errors.IsNotFound(err) {
			return false, fmt.Errorf("deployment %q not found in namespace %q", name, eps.Namespace)
		}
		return false, err
	}

	if !injectEnv(deploy.Spec.Template.Spec.Containers, eps.EnvVars()) {
		logger.V(1).Info("Deployment already has endpoint variables, skipping", "name", name)
		return false, nil
	}

	logger.Info("Injecting endpoint variables", "deployment", name, "namespace", eps.Namespace)
	if err := p.Update(ctx, deploy); err != nil {
		return false, fmt.Errorf("update deployment %s: %w", name, err)
	}
	return true, nil
}

// injectEnv merges vars into each container in place and reports a change.
func injectEnv(containers []corev1.Container, vars []corev1.EnvVar) bool {
	changed := false
	for i := range containers {
		merged := MergeEnvVars(containers[i].Env, vars)
		if !equality.Semantic.DeepEqual(containers[i].Env, merged) {
			containers[i].Env = merged
			changed = true
		}
	}
	return changed
}

// MergeEnvVars merges two slices of EnvVar, with overrides taking precedence.
func MergeEnvVars(base, overrides []corev1.EnvVar) []corev1.EnvVar {
	m := make(map[string]corev1.EnvVar, len(base)+len(overrides))
	var order []string
	for _, e := range base {
		if _, exists := m[e.Name]; !exists {
			order = append(order, e.Name)
		}
		m[e.Name] = e
	}
	for _, e := range overrides {
		if _, exists := m[e.Name]; !exists {
			order = append(order, e.Name)
		}
		m[e.Name] = e
	}
	result := make([]corev1.EnvVar, 0, len(order))
	for _, name := range order {
		result = append(result, m[name])
	}
	return result
}
