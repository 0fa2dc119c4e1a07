// Package cli holds the user-facing helpers shared by the edgeship
// commands: input validation and rendering of resolved configurations.
package cli

import (
	"errors"
	"fmt"
	"strings"
)

// Validation error messages
var (
	ErrNameRequired = errors.New("a script name is required")
	ErrNameTooLong  = errors.New("script names must be 63 characters or fewer")
	ErrNameSyntax   = errors.New("script names may only contain lowercase letters, digits, and dashes, and cannot start or end with a dash")
)

// maxScriptNameLength matches the DNS label limit script names are
// subject to once deployed to a subdomain.
const maxScriptNameLength = 63

// ValidateWorkerName enforces the syntax deployable script names need.
// It is handed to the manifest loader as its name predicate.
func ValidateWorkerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if len(name) > maxScriptNameLength {
		return fmt.Errorf("%w: %q is %d characters", ErrNameTooLong, name, len(name))
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		return fmt.Errorf("%w: %q", ErrNameSyntax, name)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return fmt.Errorf("%w: %q", ErrNameSyntax, name)
		}
	}
	return nil
}
