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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/yaml"

	"github.com/jeffvincent/flywheel-env/internal/endpoints"
)

// ────────────────────────────────────────────────────────────────────────────
// Builders (no cluster)
// ────────────────────────────────────────────────────────────────────────────

var _ = Describe("BuildConfigMap", func() {
	It("holds exactly the exported variables", func() {
		eps := endpoints.Default()
		cm := BuildConfigMap(eps)
		Expect(cm.Name).To(Equal("flywheel-endpoints"))
		Expect(cm.Namespace).To(Equal("hacohen-flywheel"))
		Expect(cm.Data).To(Equal(eps.Map()))
		Expect(cm.Data).NotTo(HaveKey("NIM_EXTERNAL_URL"))
		Expect(cm.Labels).To(HaveKeyWithValue("app.kubernetes.io/managed-by", "flywheel-env"))
		Expect(cm.Annotations).To(HaveKey(specHashAnnotation))
	})

	It("is stable across calls", func() {
		Expect(BuildConfigMap(endpoints.Default())).To(Equal(BuildConfigMap(endpoints.Default())))
	})
})

var _ = Describe("RenderConfigMap", func() {
	It("renders a v1 ConfigMap manifest", func() {
		out, err := RenderConfigMap(endpoints.Default())
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(ContainSubstring("apiVersion: v1"))
		Expect(string(out)).To(ContainSubstring("kind: ConfigMap"))

		cm := &corev1.ConfigMap{}
		Expect(yaml.Unmarshal(out, cm)).To(Succeed())
		Expect(cm.Data).To(Equal(endpoints.Default().Map()))
	})
})

// ────────────────────────────────────────────────────────────────────────────
// Reconcile against a fake client
// ────────────────────────────────────────────────────────────────────────────

var _ = Describe("Publisher", func() {
	var (
		ctx context.Context
		eps *endpoints.Endpoints
		key types.NamespacedName
	)

	newPublisher := func(objs ...client.Object) *Publisher {
		c := fake.NewClientBuilder().WithScheme(clientgoscheme.Scheme).WithObjects(objs...).Build()
		return &Publisher{Client: c}
	}

	BeforeEach(func() {
		ctx = context.Background()
		eps = endpoints.Default()
		key = types.NamespacedName{Name: ConfigMapName, Namespace: eps.Namespace}
	})

	Context("ReconcileConfigMap", func() {
		It("creates the ConfigMap when absent", func() {
			p := newPublisher()
			res, err := p.ReconcileConfigMap(ctx, eps)
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(Equal(Created))

			cm := &corev1.ConfigMap{}
			Expect(p.Get(ctx, key, cm)).To(Succeed())
			Expect(cm.Data).To(Equal(eps.Map()))
		})

		It("is idempotent", func() {
			p := newPublisher()
			_, err := p.ReconcileConfigMap(ctx, eps)
			Expect(err).NotTo(HaveOccurred())
			res, err := p.ReconcileConfigMap(ctx, eps)
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(Equal(Unchanged))
		})

		It("reverts a hand edit", func() {
			edited := BuildConfigMap(eps)
			edited.Data["REDIS_URL"] = "redis://elsewhere:6379/0"
			p := newPublisher(edited)

			res, err := p.ReconcileConfigMap(ctx, eps)
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(Equal(Updated))

			cm := &corev1.ConfigMap{}
			Expect(p.Get(ctx, key, cm)).To(Succeed())
			Expect(cm.Data["REDIS_URL"]).To(Equal(eps.RedisURL))
		})

		It("adopts a ConfigMap created by someone else", func() {
			foreign := &corev1.ConfigMap{
				ObjectMeta: metav1.ObjectMeta{
					Name:      ConfigMapName,
					Namespace: eps.Namespace,
					Labels:    map[string]string{"team": "flywheel"},
				},
				Data: map[string]string{"OTHER": "x"},
			}
			p := newPublisher(foreign)

			res, err := p.ReconcileConfigMap(ctx, eps)
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(Equal(Updated))

			cm := &corev1.ConfigMap{}
			Expect(p.Get(ctx, key, cm)).To(Succeed())
			Expect(cm.Data).To(Equal(eps.Map()))
			Expect(cm.Labels).To(HaveKeyWithValue("team", "flywheel"))
			Expect(cm.Labels).To(HaveKeyWithValue("app.kubernetes.io/managed-by", "flywheel-env"))
		})
	})

	Context("InjectDeployment", func() {
		newDeployment := func(env ...corev1.EnvVar) *appsv1.Deployment {
			labels := map[string]string{"app": "df-api"}
			return &appsv1.Deployment{
				ObjectMeta: metav1.ObjectMeta{Name: "df-api", Namespace: eps.Namespace},
				Spec: appsv1.DeploymentSpec{
					Selector: &metav1.LabelSelector{MatchLabels: labels},
					Template: corev1.PodTemplateSpec{
						ObjectMeta: metav1.ObjectMeta{Labels: labels},
						Spec: corev1.PodSpec{
							Containers: []corev1.Container{
								{Name: "api", Image: "df-api:latest", Env: env},
								{Name: "worker", Image: "df-worker:latest"},
							},
						},
					},
				},
			}
		}

		It("injects the variables into every container", func() {
			p := newPublisher(newDeployment(corev1.EnvVar{Name: "LOG_LEVEL", Value: "debug"}))
			changed, err := p.InjectDeployment(ctx, "df-api", eps)
			Expect(err).NotTo(HaveOccurred())
			Expect(changed).To(BeTrue())

			deploy := &appsv1.Deployment{}
			Expect(p.Get(ctx, types.NamespacedName{Name: "df-api", Namespace: eps.Namespace}, deploy)).To(Succeed())
			api := deploy.Spec.Template.Spec.Containers[0]
			Expect(api.Env[0]).To(Equal(corev1.EnvVar{Name: "LOG_LEVEL", Value: "debug"}))
			Expect(api.Env).To(HaveLen(9))
			Expect(deploy.Spec.Template.Spec.Containers[1].Env).To(Equal(eps.EnvVars()))
		})

		It("overrides a stale value in place", func() {
			p := newPublisher(newDeployment(corev1.EnvVar{Name: "REDIS_URL", Value: "redis://old:6379/0"}))
			_, err := p.InjectDeployment(ctx, "df-api", eps)
			Expect(err).NotTo(HaveOccurred())

			deploy := &appsv1.Deployment{}
			Expect(p.Get(ctx, types.NamespacedName{Name: "df-api", Namespace: eps.Namespace}, deploy)).To(Succeed())
			env := deploy.Spec.Template.Spec.Containers[0].Env
			Expect(env[0]).To(Equal(corev1.EnvVar{Name: "REDIS_URL", Value: eps.RedisURL}))
		})

		It("does not write an up-to-date Deployment", func() {
			p := newPublisher(newDeployment())
			changed, err := p.InjectDeployment(ctx, "df-api", eps)
			Expect(err).NotTo(HaveOccurred())
			Expect(changed).To(BeTrue())

			changed, err = p.InjectDeployment(ctx, "df-api", eps)
			Expect(err).NotTo(HaveOccurred())
			Expect(changed).To(BeFalse())
		})

		It("reports a missing Deployment", func() {
			p := newPublisher()
			_, err := p.InjectDeployment(ctx, "nope", eps)
			Expect(err).To(MatchError(ContainSubstring(`deployment "nope" not found`)))
		})
	})
})

var _ = Describe("ConfigMapReconciler", func() {
	var (
		ctx context.Context
		r   *ConfigMapReconciler
		c   client.Client
	)

	BeforeEach(func() {
		ctx = context.Background()
		c = fake.NewClientBuilder().WithScheme(clientgoscheme.Scheme).Build()
		r = &ConfigMapReconciler{Client: c, Endpoints: endpoints.Default()}
	})

	It("recreates the endpoints ConfigMap", func() {
		req := ctrl.Request{NamespacedName: types.NamespacedName{Name: ConfigMapName, Namespace: endpoints.Namespace}}
		_, err := r.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		cm := &corev1.ConfigMap{}
		Expect(c.Get(ctx, req.NamespacedName, cm)).To(Succeed())
		Expect(cm.Data).To(HaveLen(8))
	})

	It("ignores other ConfigMaps", func() {
		req := ctrl.Request{NamespacedName: types.NamespacedName{Name: "unrelated", Namespace: endpoints.Namespace}}
		_, err := r.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		list := &corev1.ConfigMapList{}
		Expect(c.List(ctx, list)).To(Succeed())
		Expect(list.Items).To(BeEmpty())
	})
})
