package manifest

import (
	"encoding/base64"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/validation"
)

// Validate checks that the Secret would be accepted by the API server:
// name is a DNS-1123 subdomain, namespace a DNS-1123 label, every data key
// a valid Secret key, and the decoded payload fits in MaxSecretSize.
func (s *Secret) Validate() error {
	var problems []string

	for _, msg := range validation.IsDNS1123Subdomain(s.Name) {
		problems = append(problems, fmt.Sprintf("name %q: %s", s.Name, msg))
	}
	for _, msg := range validation.IsDNS1123Label(s.Namespace) {
		problems = append(problems, fmt.Sprintf("namespace %q: %s", s.Namespace, msg))
	}

	size := 0
	for _, k := range s.keys {
		for _, msg := range validation.IsConfigMapKey(k) {
			problems = append(problems, fmt.Sprintf("key %q: %s", k, msg))
		}
		raw, _ := base64.StdEncoding.DecodeString(s.data[k])
		size += len(raw)
	}
	if size > corev1.MaxSecretSize {
		problems = append(problems, fmt.Sprintf("data is %d bytes, must be at most %d", size, corev1.MaxSecretSize))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", kerrors.ErrInvalidManifest, strings.Join(problems, "; "))
	}
	return nil
}
