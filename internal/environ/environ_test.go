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
	"bytes"
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jeffvincent/flywheel-env/internal/endpoints"
)

// failingEnv rejects one key.
type failingEnv struct {
	MapEnv
	reject string
}

func (f failingEnv) Setenv(key, value string) error {
	if key == f.reject {
		return errors.New("read-only")
	}
	return f.MapEnv.Setenv(key, value)
}

var _ = Describe("Configurator", func() {
	var (
		ctx context.Context
		env MapEnv
		out *bytes.Buffer
		c   *Configurator
		eps *endpoints.Endpoints
	)

	BeforeEach(func() {
		ctx = context.Background()
		env = MapEnv{}
		out = &bytes.Buffer{}
		c = &Configurator{Env: env, Out: out}
		eps = endpoints.Default()
	})

	DescribeTable("sets each variable to its computed URL",
		func(name, expected string) {
			Expect(c.Configure(ctx, eps)).To(Succeed())
			Expect(env).To(HaveKeyWithValue(name, expected))
		},
		Entry("API_BASE_URL", "API_BASE_URL", "http://df-api-service.hacohen-flywheel.svc.cluster.local:8000"),
		Entry("ELASTICSEARCH_URL", "ELASTICSEARCH_URL", "http://elasticsearch-master.hacohen-flywheel.svc.cluster.local:9200"),
		Entry("MONGODB_URL", "MONGODB_URL", "mongodb://flywheel-infra-mongodb.hacohen-flywheel.svc.cluster.local:27017"),
		Entry("REDIS_URL", "REDIS_URL", "redis://flywheel-infra-redis-master.hacohen-flywheel.svc.cluster.local:6379/0"),
		Entry("MLFLOW_TRACKING_URI", "MLFLOW_TRACKING_URI", "http://df-mlflow-service.hacohen-flywheel.svc.cluster.local:5000"),
		Entry("NEMO_BASE_URL", "NEMO_BASE_URL", "http://nemo-gateway.hacohen-flywheel.svc.cluster.local"),
		Entry("NIM_BASE_URL", "NIM_BASE_URL", "http://nemo-gateway.hacohen-flywheel.svc.cluster.local"),
		Entry("DATASTORE_BASE_URL", "DATASTORE_BASE_URL", "http://nemodatastore-sample.hacohen-flywheel.svc.cluster.local:8000"),
	)

	It("sets exactly the eight exported variables", func() {
		Expect(c.Configure(ctx, eps)).To(Succeed())
		Expect(env).To(HaveLen(8))
		Expect(env).NotTo(HaveKey("NIM_EXTERNAL_URL"))
	})

	It("is idempotent", func() {
		Expect(c.Configure(ctx, eps)).To(Succeed())
		first := MapEnv{}
		for k, v := range env {
			first[k] = v
		}
		Expect(c.Configure(ctx, eps)).To(Succeed())
		Expect(env).To(Equal(first))
	})

	It("prints the confirmation block", func() {
		Expect(c.Configure(ctx, eps)).To(Succeed())
		Expect(out.String()).To(Equal(
			"✓ OpenShift AI environment configured\n" +
				"  Namespace: hacohen-flywheel\n" +
				"  API URL: http://df-api-service.hacohen-flywheel.svc.cluster.local:8000\n" +
				"  Elasticsearch: http://elasticsearch-master.hacohen-flywheel.svc.cluster.local:9200\n" +
				"  MLflow: http://df-mlflow-service.hacohen-flywheel.svc.cluster.local:5000\n" +
				"  NeMo Gateway: http://nemo-gateway.hacohen-flywheel.svc.cluster.local\n"))
	})

	It("stays quiet without an output writer", func() {
		c.Out = nil
		Expect(c.Configure(ctx, eps)).To(Succeed())
		Expect(env).To(HaveLen(8))
	})

	It("wraps a setter failure with the variable name", func() {
		c.Env = failingEnv{MapEnv: env, reject: "REDIS_URL"}
		err := c.Configure(ctx, eps)
		Expect(err).To(MatchError(ContainSubstring("set REDIS_URL")))
		Expect(out.String()).To(BeEmpty())
	})
})

var _ = Describe("FromEnv", func() {
	It("round-trips through a configured environment", func() {
		env := MapEnv{}
		c := &Configurator{Env: env}
		Expect(c.Configure(context.Background(), endpoints.Default())).To(Succeed())

		eps, err := FromEnv(env.Lookup)
		Expect(err).NotTo(HaveOccurred())
		Expect(eps).To(Equal(endpoints.Default()))
	})

	It("names every missing variable", func() {
		env := MapEnv{"API_BASE_URL": "http://df-api-service.hacohen-flywheel.svc.cluster.local:8000"}
		_, err := FromEnv(env.Lookup)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("REDIS_URL"))
		Expect(err.Error()).To(ContainSubstring("DATASTORE_BASE_URL"))
		Expect(err.Error()).NotTo(ContainSubstring("API_BASE_URL"))
	})

	It("treats an empty value as missing", func() {
		env := MapEnv{}
		Expect((&Configurator{Env: env}).Configure(context.Background(), endpoints.Default())).To(Succeed())
		env["MONGODB_URL"] = ""
		_, err := FromEnv(env.Lookup)
		Expect(err).To(MatchError(ContainSubstring("MONGODB_URL")))
	})
})
