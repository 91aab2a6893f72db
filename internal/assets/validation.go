package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that a style name is safe to use as a filename.
// Returns ErrInvalidAssetName if the name is empty or contains '/', '\' or '.'.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
