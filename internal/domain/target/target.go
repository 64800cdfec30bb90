// Where: cli/internal/domain/target/target.go
// What: Deployment target value types.
// Why: Keep slot validation and display rules in one place.
package target

import (
	"fmt"
	"strings"
)

// Slot is a deployment environment within a hosted service.
type Slot string

const (
	Production Slot = "production"
	Staging    Slot = "staging"
)

// ErrInvalidSlot is returned by ParseSlot for anything but the two literals.
var ErrInvalidSlot = fmt.Errorf("slot must be one of %q or %q", Production, Staging)

// ParseSlot accepts exactly "production" or "staging". Matching is case-sensitive.
func ParseSlot(value string) (Slot, error) {
	switch Slot(value) {
	case Production, Staging:
		return Slot(value), nil
	default:
		return "", ErrInvalidSlot
	}
}

// Title returns the slot name with its first letter upper-cased.
func (s Slot) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

func (s Slot) String() string {
	return string(s)
}

// Target identifies one deployment slot of a hosted service.
type Target struct {
	SubscriptionID string
	ServiceName    string
	Slot           Slot
}

// Describe renders the target for log lines.
func (t Target) Describe() string {
	return fmt.Sprintf("%s/%s (%s)", t.SubscriptionID, t.ServiceName, t.Slot)
}
