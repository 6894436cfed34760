package input

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"
)

// DefaultExecTimeout bounds how long an external injector command may run.
const DefaultExecTimeout = 2 * time.Second

// ExecInjector performs actions by running an external command (for
// example an xdotool wrapper script) with the request as JSON on stdin.
// Useful on setups where direct input synthesis is unavailable.
type ExecInjector struct {
	command string
	args    []string
	timeout time.Duration
}

// NewExecInjector creates an ExecInjector running the given command.
func NewExecInjector(command string, args ...string) *ExecInjector {
	return &ExecInjector{
		command: command,
		args:    args,
		timeout: DefaultExecTimeout,
	}
}

// SetTimeout overrides the per-request execution timeout.
func (e *ExecInjector) SetTimeout(d time.Duration) {
	if d > 0 {
		e.timeout = d
	}
}

// Inject implements Injector. The command's stderr is included in the
// error on failure.
func (e *ExecInjector) Inject(req Request) error {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	reqJSON, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.command, e.args...)
	cmd.Stdin = bytes.NewReader(reqJSON)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("injector command timeout after %v", e.timeout)
		}
		if stderr.Len() > 0 {
			return fmt.Errorf("injector command failed: %w, stderr: %s", err, stderr.String())
		}
		return fmt.Errorf("injector command failed: %w", err)
	}
	return nil
}
