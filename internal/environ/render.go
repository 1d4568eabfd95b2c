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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
	corev1 "k8s.io/api/core/v1"

	"github.com/jeffvincent/flywheel-env/internal/endpoints"
)

// Format selects how Render prints variables.
type Format string

const (
	FormatShell  Format = "shell"
	FormatDotenv Format = "dotenv"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
)

// EnvFileName is the file WriteFile manages inside its directory.
const EnvFileName = "flywheel.env"

// ParseFormat accepts the names of the Format constants.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatShell, FormatDotenv, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want shell, dotenv, json or yaml)", s)
	}
}

// Render writes vars to w. Shell, dotenv and YAML output keep the order of
// vars; JSON objects are keyed alphabetically.
func Render(w io.Writer, vars []corev1.EnvVar, f Format) error {
	switch f {
	case FormatShell:
		for _, ev := range vars {
			if _, err := fmt.Fprintf(w, "export %s=%s\n", ev.Name, shellQuote(ev.Value)); err != nil {
				return err
			}
		}
		return nil
	case FormatDotenv:
		_, err := io.WriteString(w, dotenv(vars))
		return err
	case FormatJSON:
		m := make(map[string]string, len(vars))
		for _, ev := range vars {
			m[ev.Name] = ev.Value
		}
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case FormatYAML:
		doc := &yaml.Node{Kind: yaml.MappingNode}
		for _, ev := range vars {
			doc.Content = append(doc.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: ev.Name},
				&yaml.Node{Kind: yaml.ScalarNode, Value: ev.Value},
			)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// RenderEndpoints writes the exported variables of eps to w. With external
// set it also prints NIM_EXTERNAL_URL: as a data key in JSON and YAML, and as
// a comment in shell and dotenv output so sourcing the result never exports
// it.
func RenderEndpoints(w io.Writer, eps *endpoints.Endpoints, f Format, external bool) error {
	vars := eps.EnvVars()
	if !external {
		return Render(w, vars, f)
	}

	switch f {
	case FormatShell, FormatDotenv:
		if err := Render(w, vars, f); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "# %s=%s\n", endpoints.EnvNIMExternalURL, eps.NIMExternalURL)
		return err
	default:
		vars = append(vars, corev1.EnvVar{Name: endpoints.EnvNIMExternalURL, Value: eps.NIMExternalURL})
		return Render(w, vars, f)
	}
}

// WriteFile writes the exported variables of eps to <dir>/flywheel.env and
// returns the path. An empty dir disables the file and returns "".
func WriteFile(dir string, eps *endpoints.Endpoints) (string, error) {
	if dir == "" {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	content := "# Managed by flywheel-env, do not edit by hand\n" +
		"# Namespace: " + eps.Namespace + "\n" +
		dotenv(eps.EnvVars())

	path := filepath.Join(dir, EnvFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func dotenv(vars []corev1.EnvVar) string {
	var b strings.Builder
	for _, ev := range vars {
		b.WriteString(ev.Name)
		b.WriteByte('=')
		b.WriteString(ev.Value)
		b.WriteByte('\n')
	}
	return b.String()
}

// shellQuote wraps s in single quotes for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
