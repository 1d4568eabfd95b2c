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

// Package publish makes resolved endpoints visible inside the cluster: as a
// ConfigMap in the flywheel namespace and as env vars on Deployments.
package publish

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/yaml"

	"github.com/jeffvincent/flywheel-env/internal/endpoints"
)

const (
	// ConfigMapName is the ConfigMap holding the exported variables.
	ConfigMapName = "flywheel-endpoints"

	specHashAnnotation = "flywheel.example.com/spec-hash"
	managedBy          = "flywheel-env"
)

// Result reports what a reconcile did to the cluster.
type Result string

const (
	Created   Result = "created"
	Updated   Result = "updated"
	Unchanged Result = "unchanged"
)

// Publisher writes endpoints into the cluster through a controller-runtime
// client.
type Publisher struct {
	client.Client
}

// BuildConfigMap returns the desired ConfigMap for eps. Its data is exactly
// eps.Map(), so pods can mount it with envFrom.
func BuildConfigMap(eps *endpoints.Endpoints) *corev1.ConfigMap {
	data := eps.Map()
	return &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "ConfigMap",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      ConfigMapName,
			Namespace: eps.Namespace,
			Labels:    labelsForEndpoints(),
			Annotations: map[string]string{
				specHashAnnotation: computeSpecHash(data),
			},
		},
		Data: data,
	}
}

// RenderConfigMap returns the ConfigMap manifest as YAML.
func RenderConfigMap(eps *endpoints.Endpoints) ([]byte, error) {
	out, err := yaml.Marshal(BuildConfigMap(eps))
	if err != nil {
		return nil, fmt.Errorf("failed to render ConfigMap: %w", err)
	}
	return out, nil
}

// ReconcileConfigMap creates the endpoints ConfigMap, or rewrites it when its
// data no longer matches eps.
func (p *Publisher) ReconcileConfigMap(ctx context.Context, eps *endpoints.Endpoints) (Result, error) {
	logger := log.FromContext(ctx)
	desired := BuildConfigMap(eps)

	existing := &corev1.ConfigMap{}
	err := p.Get(ctx, types.NamespacedName{Name: desired.Name, Namespace: desired.Namespace}, existing)
	if err != nil {
		if errors.IsNotFound(err) {
			logger.Info("Creating ConfigMap", "name", desired.Name, "namespace", desired.Namespace)
			if err := p.Create(ctx, desired); err != nil {
				return "", fmt.Errorf("create ConfigMap %s: %w", desired.Name, err)
			}
			return Created, nil
		}
		return "", err
	}

	// Hash the live data as well as reading the annotation so hand edits
	// are reverted.
	desiredHash := desired.Annotations[specHashAnnotation]
	if existing.Annotations[specHashAnnotation] == desiredHash && computeSpecHash(existing.Data) == desiredHash {
		logger.V(1).Info("ConfigMap already up to date, skipping", "name", desired.Name)
		return Unchanged, nil
	}

	existing.Data = desired.Data
	if existing.Labels == nil {
		existing.Labels = make(map[string]string)
	}
	for k, v := range desired.Labels {
		existing.Labels[k] = v
	}
	if existing.Annotations == nil {
		existing.Annotations = make(map[string]string)
	}
	existing.Annotations[specHashAnnotation] = desiredHash
	logger.Info("Updating ConfigMap", "name", desired.Name, "namespace", desired.Namespace)
	if err := p.Update(ctx, existing); err != nil {
		return "", fmt.Errorf("update ConfigMap %s: %w", desired.Name, err)
	}
	return Updated, nil
}

// labelsForEndpoints returns the labels applied to everything we publish.
func labelsForEndpoints() map[string]string {
	return map[string]string{
		"app.kubernetes.io/name":       ConfigMapName,
		"app.kubernetes.io/part-of":    "data-flywheel",
		"app.kubernetes.io/managed-by": managedBy,
	}
}

// computeSpecHash returns a short SHA-256 hash of the JSON-serialized input.
func computeSpecHash(obj interface{}) string {
	data, _ := json.Marshal(obj)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum[:8])
}
