// Where: cli/internal/domain/fault/fault.go
// What: Error kinds for the reboot workflow.
// Why: Each failure class has its own message and exit behavior.
package fault

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a fatal condition.
type Kind int

const (
	Unknown Kind = iota
	Usage
	Credential
	NotFound
	NoInstances
	Network
)

func (k Kind) String() string {
	switch k {
	case Usage:
		return "usage"
	case Credential:
		return "credential"
	case NotFound:
		return "not found"
	case NoInstances:
		return "no instances"
	case Network:
		return "network"
	default:
		return "unknown"
	}
}

// Error carries a Kind alongside its cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String() + " error"
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Usagef reports invalid command-line input.
func Usagef(format string, args ...any) error {
	return newError(Usage, format, args...)
}

// Credentialf reports a problem loading credentials.
func Credentialf(format string, args ...any) error {
	return newError(Credential, format, args...)
}

// WrapCredential classifies err as a credential failure.
func WrapCredential(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: Credential, Err: errors.Wrap(err, message)}
}

// WrapNetwork classifies err as a transport or remote failure.
func WrapNetwork(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: Network, Err: errors.Wrap(err, message)}
}

// Networkf reports a remote failure without an underlying cause.
func Networkf(format string, args ...any) error {
	return newError(Network, format, args...)
}

// NoInstancesf reports an empty instance list.
func NoInstancesf(format string, args ...any) error {
	return newError(NoInstances, format, args...)
}

// DeploymentNotFound is returned when the management endpoint answers 404
// for a deployment slot.
type DeploymentNotFound struct {
	SlotTitle   string
	ServiceName string
}

func (e *DeploymentNotFound) Error() string {
	return fmt.Sprintf("%s deployment for service %s not found, or the credentials were invalid.", e.SlotTitle, e.ServiceName)
}

// NewNotFound wraps a DeploymentNotFound in a NotFound fault.
func NewNotFound(slotTitle, serviceName string) error {
	return &Error{Kind: NotFound, Err: &DeploymentNotFound{SlotTitle: slotTitle, ServiceName: serviceName}}
}

// KindOf returns the Kind of the first fault in err's chain.
func KindOf(err error) Kind {
	var f *Error
	if errors.As(err, &f) {
		return f.Kind
	}
	return Unknown
}
