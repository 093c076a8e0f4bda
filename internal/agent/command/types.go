package command

import "context"

// Known command names. Anything else falls through to KindUnknown; an
// unrecognized name is a normal terminal outcome, not an error.
const (
	NameScreenshot = "screenshot"
	NameRestart    = "restart"
	NameShutdown   = "shutdown"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindScreenshot
	KindRestart
	KindShutdown
)

// ParseKind maps a command name onto the closed set of known kinds.
func ParseKind(name string) Kind {
	switch name {
	case NameScreenshot:
		return KindScreenshot
	case NameRestart:
		return KindRestart
	case NameShutdown:
		return KindShutdown
	default:
		return KindUnknown
	}
}

// Outcome is the terminal result of executing one command. Status is "done"
// or "failed"; Result carries the human-readable detail either way.
type Outcome struct {
	Status string
	Result string
}

// Uploader ships a captured screenshot to the backend.
type Uploader interface {
	UploadScreenshot(ctx context.Context, png []byte) error
}
