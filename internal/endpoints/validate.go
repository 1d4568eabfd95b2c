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

package endpoints

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Validate checks that every exported URL is well formed and points into
// the endpoint namespace. It never dials anything.
func (e *Endpoints) Validate() error {
	var errs []error
	for _, svc := range publicationOrder {
		d := serviceRegistry[svc]
		if err := validateURL(d, e.Lookup(svc), e.Namespace); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.EnvVarName, err))
		}
	}

	// The cache URL is handed straight to redis clients, so hold it to
	// the client's own parser.
	if _, err := redis.ParseURL(e.RedisURL); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", EnvRedisURL, err))
	}

	return errors.Join(errs...)
}

func validateURL(d serviceDefaults, raw, namespace string) error {
	if raw == "" {
		return errors.New("empty URL")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != d.Scheme {
		return fmt.Errorf("scheme %q, want %q", u.Scheme, d.Scheme)
	}
	suffix := "." + namespace + "." + ClusterDomain
	if !strings.HasSuffix(u.Hostname(), suffix) {
		return fmt.Errorf("host %q is not a Service in namespace %q", u.Hostname(), namespace)
	}
	return nil
}
