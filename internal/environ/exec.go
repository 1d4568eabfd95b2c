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

package environ

import (
	"context"
	"os"
	"os/exec"
	"strings"

	corev1 "k8s.io/api/core/v1"

	"github.com/jeffvincent/flywheel-env/internal/endpoints"
)

// Command returns a child process that inherits the current environment
// with the endpoint variables layered on top.
func Command(ctx context.Context, eps *endpoints.Endpoints, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = MergeEnviron(os.Environ(), eps.EnvVars())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// MergeEnviron overlays vars onto a KEY=VALUE list. Existing keys keep their
// position and take the new value; new keys are appended in order.
func MergeEnviron(environ []string, vars []corev1.EnvVar) []string {
	index := make(map[string]int, len(environ))
	out := make([]string, 0, len(environ)+len(vars))
	for _, kv := range environ {
		key, _, _ := strings.Cut(kv, "=")
		if i, ok := index[key]; ok {
			out[i] = kv
			continue
		}
		index[key] = len(out)
		out = append(out, kv)
	}
	for _, ev := range vars {
		kv := ev.Name + "=" + ev.Value
		if i, ok := index[ev.Name]; ok {
			out[i] = kv
			continue
		}
		index[ev.Name] = len(out)
		out = append(out, kv)
	}
	return out
}
