// Where: cli/internal/usecase/reboot/reboot.go
// What: Reboot workflow orchestration.
// Why: Encapsulate list-pick-reboot without CLI concerns.
package reboot

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/poruru-code/wazmonkey/internal/domain/target"
	"github.com/poruru-code/wazmonkey/internal/infra/ui"
	"github.com/poruru-code/wazmonkey/internal/selection"
)

var (
	errInstanceAPINotConfigured = errors.New("instance api is not configured")
	errUINotConfigured          = errors.New("user interface is not configured")
)

// InstanceAPI is the slice of the management client the workflow needs.
type InstanceAPI interface {
	ListInstances(ctx context.Context, t target.Target) ([]string, error)
	RebootInstance(ctx context.Context, t target.Target, instance string) (int, error)
}

// Request captures the inputs required to run a reboot.
type Request struct {
	Target target.Target
}

// Result describes a completed reboot call.
type Result struct {
	Instance   string
	StatusCode int
	// Accepted is true when the endpoint answered 202.
	Accepted bool
}

// Workflow executes the reboot orchestration steps.
type Workflow struct {
	API           InstanceAPI
	Source        selection.Source
	UserInterface ui.UserInterface
	Logger        log.Logger
}

// NewRebootWorkflow constructs a Workflow.
func NewRebootWorkflow(api InstanceAPI, source selection.Source, userInterface ui.UserInterface, logger log.Logger) Workflow {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return Workflow{
		API:           api,
		Source:        source,
		UserInterface: userInterface,
		Logger:        log.With(logger, "component", "reboot"),
	}
}

// Run lists the slot's instances, reboots one picked at random, and reports
// a non-202 answer as information only.
func (w Workflow) Run(ctx context.Context, req Request) (Result, error) {
	if w.API == nil {
		return Result{}, errInstanceAPINotConfigured
	}
	if w.UserInterface == nil {
		return Result{}, errUINotConfigured
	}
	logger := w.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	instances, err := w.API.ListInstances(ctx, req.Target)
	if err != nil {
		return Result{}, err
	}
	level.Debug(logger).Log("msg", "instances found", "target", req.Target.Describe(), "count", len(instances))

	instance, err := selection.Pick(w.Source, instances)
	if err != nil {
		return Result{}, errors.WithMessagef(err, "%s deployment of %s", req.Target.Slot.Title(), req.Target.ServiceName)
	}
	w.UserInterface.Info(fmt.Sprintf("Rebooting %s.", instance))

	status, err := w.API.RebootInstance(ctx, req.Target, instance)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Instance:   instance,
		StatusCode: status,
		Accepted:   status == http.StatusAccepted,
	}
	if !result.Accepted {
		w.UserInterface.Warn(fmt.Sprintf("Got unexpected status code: %s", statusText(status)))
	}
	level.Info(logger).Log("msg", "reboot requested", "instance", instance, "status", status)
	return result, nil
}

func statusText(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return fmt.Sprintf("%d", code)
	}
	return fmt.Sprintf("%d %s", code, text)
}
