package command

import (
	"context"
	"fmt"

	"labfleet/internal/agent/logger"
	"labfleet/internal/agent/power"
	"labfleet/internal/agent/screen"
)

const (
	statusDone   = "done"
	statusFailed = "failed"
)

// Executor turns a command name + args into a local action. Every path ends
// in an Outcome; nothing escapes the executor boundary, so one bad command
// can never take the polling loop down.
type Executor struct {
	Screen           screen.Capturer
	Power            power.Controller
	Uploader         Uploader
	AllowDestructive bool
}

func NewExecutor(capturer screen.Capturer, ctrl power.Controller, up Uploader, allowDestructive bool) *Executor {
	return &Executor{
		Screen:           capturer,
		Power:            ctrl,
		Uploader:         up,
		AllowDestructive: allowDestructive,
	}
}

func (e *Executor) Execute(ctx context.Context, name, args string) Outcome {
	switch ParseKind(name) {
	case KindScreenshot:
		return e.screenshot(ctx)
	case KindRestart:
		return e.powerAction(power.ActionRestart)
	case KindShutdown:
		return e.powerAction(power.ActionShutdown)
	default:
		return Outcome{
			Status: statusDone,
			Result: fmt.Sprintf("unknown command: %s args=%s", name, args),
		}
	}
}

func (e *Executor) screenshot(ctx context.Context) Outcome {
	png, err := e.Screen.Capture()
	if err != nil {
		return Outcome{Status: statusFailed, Result: fmt.Sprintf("screenshot capture failed: %v", err)}
	}
	if err := e.Uploader.UploadScreenshot(ctx, png); err != nil {
		return Outcome{Status: statusFailed, Result: fmt.Sprintf("screenshot %v", err)}
	}
	return Outcome{Status: statusDone, Result: "screenshot uploaded"}
}

func (e *Executor) powerAction(action power.Action) Outcome {
	if !e.AllowDestructive {
		logger.Warnf("Blocked %s: destructive actions disabled in agent config", action)
		return Outcome{
			Status: statusDone,
			Result: fmt.Sprintf("%s blocked by agent config (allow_destructive=false)", action),
		}
	}
	if err := e.Power.Trigger(action); err != nil {
		return Outcome{Status: statusFailed, Result: fmt.Sprintf("%s failed: %v", action, err)}
	}
	return Outcome{Status: statusDone, Result: fmt.Sprintf("%s triggered", action)}
}
