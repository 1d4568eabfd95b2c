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

// Package environ publishes resolved endpoints into a process environment
// and reads them back on the consumer side.
package environ

import (
	"context"
	"fmt"
	"io"
	"os"

	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/jeffvincent/flywheel-env/internal/endpoints"
)

// Setter assigns environment variables.
type Setter interface {
	Setenv(key, value string) error
}

// OSEnv writes to the environment of the current process.
type OSEnv struct{}

// Setenv implements Setter.
func (OSEnv) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

// MapEnv is an in-memory environment.
type MapEnv map[string]string

// Setenv implements Setter.
func (m MapEnv) Setenv(key, value string) error {
	m[key] = value
	return nil
}

// Lookup has the signature of os.LookupEnv.
func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Configurator mirrors an Endpoints value into an environment and prints a
// confirmation block.
type Configurator struct {
	Env Setter
	Out io.Writer
}

// Configure sets every exported variable of eps. Running it again with the
// same endpoints leaves the environment unchanged.
func (c *Configurator) Configure(ctx context.Context, eps *endpoints.Endpoints) error {
	logger := log.FromContext(ctx)

	for _, ev := range eps.EnvVars() {
		if err := c.Env.Setenv(ev.Name, ev.Value); err != nil {
			return fmt.Errorf("set %s: %w", ev.Name, err)
		}
		logger.V(1).Info("Environment variable set", "name", ev.Name, "value", ev.Value)
	}

	if c.Out != nil {
		writeConfirmation(c.Out, eps)
	}
	logger.V(1).Info("Environment configured", "namespace", eps.Namespace, "variables", len(eps.EnvVars()))
	return nil
}

// ConfigureProcess configures the current process with the default
// endpoints and prints the confirmation to out. Programs call it once at
// startup, before starting anything that reads the variables.
func ConfigureProcess(ctx context.Context, out io.Writer) (*endpoints.Endpoints, error) {
	eps := endpoints.Default()
	c := &Configurator{Env: OSEnv{}, Out: out}
	if err := c.Configure(ctx, eps); err != nil {
		return nil, err
	}
	return eps, nil
}

func writeConfirmation(w io.Writer, eps *endpoints.Endpoints) {
	fmt.Fprintln(w, "✓ OpenShift AI environment configured")
	fmt.Fprintf(w, "  Namespace: %s\n", eps.Namespace)
	fmt.Fprintf(w, "  API URL: %s\n", eps.APIBaseURL)
	fmt.Fprintf(w, "  Elasticsearch: %s\n", eps.ElasticsearchURL)
	fmt.Fprintf(w, "  MLflow: %s\n", eps.MLflowTrackingURI)
	fmt.Fprintf(w, "  NeMo Gateway: %s\n", eps.NeMoBaseURL)
}
