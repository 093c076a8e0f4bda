package power

import (
	"fmt"
	"os/exec"
	"runtime"
)

type Action string

const (
	ActionRestart  Action = "restart"
	ActionShutdown Action = "shutdown"
)

// Controller triggers a platform power operation. The call returns as soon as
// the OS accepts the request; the process does not observe the action's
// completion because the action terminates the process.
type Controller interface {
	Trigger(action Action) error
}

// OSController starts the platform shutdown command without waiting for it.
type OSController struct{}

func NewOSController() *OSController { return &OSController{} }

func (c *OSController) Trigger(action Action) error {
	cmd, err := buildPowerCommand(action)
	if err != nil {
		return err
	}
	// Start, not Run: the report for this command must go out before the OS
	// takes the machine down.
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", action, err)
	}
	return nil
}

func buildPowerCommand(action Action) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "windows":
		flag := "/s"
		if action == ActionRestart {
			flag = "/r"
		}
		return exec.Command("shutdown", flag, "/t", "10"), nil
	case "linux", "darwin":
		flag := "-h"
		if action == ActionRestart {
			flag = "-r"
		}
		return exec.Command("shutdown", flag, "+0"), nil
	default:
		return nil, fmt.Errorf("%s unsupported on %s", action, runtime.GOOS)
	}
}
