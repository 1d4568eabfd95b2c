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
	"strings"

	"github.com/jeffvincent/flywheel-env/internal/endpoints"
)

// Lookup reads one variable; os.LookupEnv satisfies it.
type Lookup func(key string) (string, bool)

// FromEnv rebuilds endpoints from previously published variables. The
// namespace is not exported, so it is always endpoints.Namespace.
func FromEnv(lookup Lookup) (*endpoints.Endpoints, error) {
	eps := &endpoints.Endpoints{
		Namespace:      endpoints.Namespace,
		NIMExternalURL: endpoints.NIMExternalURL,
	}

	fields := map[string]*string{
		endpoints.EnvAPIBaseURL:        &eps.APIBaseURL,
		endpoints.EnvElasticsearchURL:  &eps.ElasticsearchURL,
		endpoints.EnvMongoDBURL:        &eps.MongoDBURL,
		endpoints.EnvRedisURL:          &eps.RedisURL,
		endpoints.EnvMLflowTrackingURI: &eps.MLflowTrackingURI,
		endpoints.EnvNeMoBaseURL:       &eps.NeMoBaseURL,
		endpoints.EnvNIMBaseURL:        &eps.NIMBaseURL,
		endpoints.EnvDatastoreBaseURL:  &eps.DatastoreBaseURL,
	}

	var missing []string
	for _, svc := range endpoints.Services() {
		name, _ := endpoints.EnvVarName(svc)
		v, ok := lookup(name)
		if !ok || v == "" {
			missing = append(missing, name)
			continue
		}
		*fields[name] = v
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}
	return eps, nil
}
