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

// Package endpoints holds the in-cluster service table of the data flywheel
// and the URLs derived from it. Every URL is a function of the namespace and
// the registry below; nothing here reads the environment.
package endpoints

import (
	"fmt"
	"strconv"
	"sync"

	corev1 "k8s.io/api/core/v1"
)

const (
	// Namespace is where every flywheel service is deployed.
	Namespace = "hacohen-flywheel"

	// ClusterDomain is the Service DNS suffix inside the cluster.
	ClusterDomain = "svc.cluster.local"

	// NIMExternalURL is the OpenShift route to the NeMo gateway for access
	// from outside the cluster. It is never exported to the environment.
	NIMExternalURL = "http://nemo-gateway-hacohen-flywheel.apps.ai-dev05.kni.syseng.devcluster.openshift.com"
)

// Environment variable names, the contract with downstream consumers.
const (
	EnvAPIBaseURL        = "API_BASE_URL"
	EnvElasticsearchURL  = "ELASTICSEARCH_URL"
	EnvMongoDBURL        = "MONGODB_URL"
	EnvRedisURL          = "REDIS_URL"
	EnvMLflowTrackingURI = "MLFLOW_TRACKING_URI"
	EnvNeMoBaseURL       = "NEMO_BASE_URL"
	EnvNIMBaseURL        = "NIM_BASE_URL"
	EnvDatastoreBaseURL  = "DATASTORE_BASE_URL"

	// EnvNIMExternalURL names the external route in display output only.
	EnvNIMExternalURL = "NIM_EXTERNAL_URL"
)

// Service identifies one logical dependency of the flywheel.
type Service string

const (
	ServiceAPI           Service = "api"
	ServiceElasticsearch Service = "elasticsearch"
	ServiceMongoDB       Service = "mongodb"
	ServiceRedis         Service = "redis"
	ServiceMLflow        Service = "mlflow"
	ServiceNeMo          Service = "nemo"
	ServiceNIM           Service = "nim"
	ServiceDatastore     Service = "datastore"
)

// serviceDefaults describes how to reach a service inside the namespace.
type serviceDefaults struct {
	Scheme     string // e.g. "http", "redis"
	Host       string // Service name, without namespace or domain
	Port       int32  // 0 = scheme default, omitted from the URL
	Path       string // appended after a slash when non-empty
	EnvVarName string // exported variable
}

// serviceRegistry maps each Service to its connection defaults.
var serviceRegistry = map[Service]serviceDefaults{
	ServiceAPI: {
		Scheme:     "http",
		Host:       "df-api-service",
		Port:       8000,
		EnvVarName: EnvAPIBaseURL,
	},
	ServiceElasticsearch: {
		Scheme:     "http",
		Host:       "elasticsearch-master",
		Port:       9200,
		EnvVarName: EnvElasticsearchURL,
	},
	ServiceMongoDB: {
		Scheme:     "mongodb",
		Host:       "flywheel-infra-mongodb",
		Port:       27017,
		EnvVarName: EnvMongoDBURL,
	},
	ServiceRedis: {
		Scheme:     "redis",
		Host:       "flywheel-infra-redis-master",
		Port:       6379,
		Path:       "0",
		EnvVarName: EnvRedisURL,
	},
	ServiceMLflow: {
		Scheme:     "http",
		Host:       "df-mlflow-service",
		Port:       5000,
		EnvVarName: EnvMLflowTrackingURI,
	},
	ServiceNeMo: {
		Scheme:     "http",
		Host:       "nemo-gateway",
		EnvVarName: EnvNeMoBaseURL,
	},
	ServiceNIM: {
		Scheme:     "http",
		Host:       "nemo-gateway",
		EnvVarName: EnvNIMBaseURL,
	},
	ServiceDatastore: {
		Scheme:     "http",
		Host:       "nemodatastore-sample",
		Port:       8000,
		EnvVarName: EnvDatastoreBaseURL,
	},
}

// publicationOrder is the order variables are set, printed and rendered.
var publicationOrder = []Service{
	ServiceAPI,
	ServiceElasticsearch,
	ServiceMongoDB,
	ServiceRedis,
	ServiceMLflow,
	ServiceNeMo,
	ServiceNIM,
	ServiceDatastore,
}

// Services returns every known service in publication order.
func Services() []Service {
	out := make([]Service, len(publicationOrder))
	copy(out, publicationOrder)
	return out
}

// EnvVarName returns the environment variable a service is exported as.
func EnvVarName(svc Service) (string, bool) {
	d, ok := serviceRegistry[svc]
	if !ok {
		return "", false
	}
	return d.EnvVarName, true
}

// ServiceHost returns the in-cluster DNS name of a Service.
func ServiceHost(host, namespace string) string {
	return host + "." + namespace + "." + ClusterDomain
}

// BuildURL returns the connection URL of svc in the given namespace.
func BuildURL(svc Service, namespace string) (string, error) {
	d, ok := serviceRegistry[svc]
	if !ok {
		return "", fmt.Errorf("unknown service: %s", svc)
	}
	return buildURL(d, namespace), nil
}

func buildURL(d serviceDefaults, namespace string) string {
	u := d.Scheme + "://" + ServiceHost(d.Host, namespace)
	if d.Port != 0 {
		u += ":" + strconv.Itoa(int(d.Port))
	}
	if d.Path != "" {
		u += "/" + d.Path
	}
	return u
}

// Endpoints is the resolved URL set for one namespace. It is built once and
// handed to consumers by pointer; nothing mutates it after construction.
type Endpoints struct {
	Namespace string

	APIBaseURL        string
	ElasticsearchURL  string
	MongoDBURL        string
	RedisURL          string
	MLflowTrackingURI string
	NeMoBaseURL       string
	NIMBaseURL        string
	DatastoreBaseURL  string

	// NIMExternalURL is informational and not part of EnvVars.
	NIMExternalURL string
}

// ForNamespace resolves every service URL for namespace.
func ForNamespace(namespace string) *Endpoints {
	url := func(svc Service) string {
		return buildURL(serviceRegistry[svc], namespace)
	}
	return &Endpoints{
		Namespace:         namespace,
		APIBaseURL:        url(ServiceAPI),
		ElasticsearchURL:  url(ServiceElasticsearch),
		MongoDBURL:        url(ServiceMongoDB),
		RedisURL:          url(ServiceRedis),
		MLflowTrackingURI: url(ServiceMLflow),
		NeMoBaseURL:       url(ServiceNeMo),
		NIMBaseURL:        url(ServiceNIM),
		DatastoreBaseURL:  url(ServiceDatastore),
		NIMExternalURL:    NIMExternalURL,
	}
}

var defaultEndpoints = sync.OnceValue(func() *Endpoints {
	return ForNamespace(Namespace)
})

// Default returns the endpoints of the flywheel namespace. The set is
// computed on first use; each call returns a fresh copy.
func Default() *Endpoints {
	e := *defaultEndpoints()
	return &e
}

// Lookup returns the URL of svc, or "" for an unknown service.
func (e *Endpoints) Lookup(svc Service) string {
	switch svc {
	case ServiceAPI:
		return e.APIBaseURL
	case ServiceElasticsearch:
		return e.ElasticsearchURL
	case ServiceMongoDB:
		return e.MongoDBURL
	case ServiceRedis:
		return e.RedisURL
	case ServiceMLflow:
		return e.MLflowTrackingURI
	case ServiceNeMo:
		return e.NeMoBaseURL
	case ServiceNIM:
		return e.NIMBaseURL
	case ServiceDatastore:
		return e.DatastoreBaseURL
	default:
		return ""
	}
}

// EnvVars returns the exported variables in publication order.
func (e *Endpoints) EnvVars() []corev1.EnvVar {
	envVars := make([]corev1.EnvVar, 0, len(publicationOrder))
	for _, svc := range publicationOrder {
		envVars = append(envVars, corev1.EnvVar{
			Name:  serviceRegistry[svc].EnvVarName,
			Value: e.Lookup(svc),
		})
	}
	return envVars
}

// Map returns the exported variables keyed by name.
func (e *Endpoints) Map() map[string]string {
	m := make(map[string]string, len(publicationOrder))
	for _, ev := range e.EnvVars() {
		m[ev.Name] = ev.Value
	}
	return m
}
