package kubeseal

import (
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

// Sealing scopes understood by kubeseal.
const (
	ScopeStrict        = "strict"
	ScopeNamespaceWide = "namespace-wide"
	ScopeClusterWide   = "cluster-wide"
)

// Scopes lists the valid scopes, strictest first.
var Scopes = []string{ScopeStrict, ScopeNamespaceWide, ScopeClusterWide}

// ValidateScope returns ErrInvalidScope unless scope is one of Scopes.
func ValidateScope(scope string) error {
	for _, s := range Scopes {
		if scope == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (expected one of %s)", kerrors.ErrInvalidScope, scope, strings.Join(Scopes, ", "))
}
