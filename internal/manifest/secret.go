// Package manifest builds the Kubernetes Secret document that is handed to
// kubeseal.
package manifest

import (
	"bytes"
	"fmt"
	"io"

	"github.com/PolarWolf314/envseal/internal/envfile"
	"gopkg.in/yaml.v3"
	corev1 "k8s.io/api/core/v1"
)

// Secret is a fixed-shape Opaque Secret whose data keys keep the order they
// had in the source env file.
type Secret struct {
	APIVersion string
	Kind       string
	Name       string
	Namespace  string
	Type       string

	keys []string
	data map[string]string
}

// Build wraps env in a Secret named name in namespace.
func Build(env *envfile.Env, name, namespace string) *Secret {
	s := &Secret{
		APIVersion: "v1",
		Kind:       "Secret",
		Name:       name,
		Namespace:  namespace,
		Type:       string(corev1.SecretTypeOpaque),
		data:       make(map[string]string, env.Len()),
	}
	for _, k := range env.Keys() {
		v, _ := env.Get(k)
		s.keys = append(s.keys, k)
		s.data[k] = v
	}
	return s
}

// Keys returns the data keys in order.
func (s *Secret) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Data returns the base64 value for key.
func (s *Secret) Data(key string) (string, bool) {
	v, ok := s.data[key]
	return v, ok
}

// MarshalYAML implements yaml.Marshaler. Building the node tree by hand
// keeps both the top-level field order and the data key order stable.
func (s *Secret) MarshalYAML() (any, error) {
	metadata := mapping(
		scalar("name"), scalar(s.Name),
		scalar("namespace"), scalar(s.Namespace),
	)

	data := mapping()
	for _, k := range s.keys {
		data.Content = append(data.Content, scalar(k), scalar(s.data[k]))
	}

	return mapping(
		scalar("apiVersion"), scalar(s.APIVersion),
		scalar("kind"), scalar(s.Kind),
		scalar("metadata"), metadata,
		scalar("type"), scalar(s.Type),
		scalar("data"), data,
	), nil
}

// Encode writes the Secret to w as a single YAML document.
func (s *Secret) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding secret %s/%s: %w", s.Namespace, s.Name, err)
	}
	return enc.Close()
}

// Marshal returns the YAML encoding of the Secret.
func (s *Secret) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func mapping(content ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: content}
}
