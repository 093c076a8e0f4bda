package screen

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Capturer produces a PNG of the current display. The polling loop only sees
// this interface; tests and the fleet simulator plug in stubs.
type Capturer interface {
	Capture() ([]byte, error)
}

// OSCapturer shells out to the platform screenshot tool. Capture is
// best-effort: on a headless box or a missing tool it returns an error that
// the executor folds into the command result.
type OSCapturer struct{}

func NewOSCapturer() *OSCapturer { return &OSCapturer{} }

func (c *OSCapturer) Capture() ([]byte, error) {
	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("labfleet-shot-%d.png", os.Getpid()))
	defer os.Remove(tmp)

	cmd, err := buildCaptureCommand(tmp)
	if err != nil {
		return nil, err
	}
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("capture command failed: %w", err)
	}
	data, err := os.ReadFile(tmp)
	if err != nil {
		return nil, fmt.Errorf("read capture output: %w", err)
	}
	return data, nil
}

func buildCaptureCommand(outPath string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("screencapture", "-x", "-t", "png", outPath), nil
	case "linux":
		for _, tool := range []struct {
			name string
			args []string
		}{
			{"gnome-screenshot", []string{"-f", outPath}},
			{"scrot", []string{"-o", outPath}},
			{"import", []string{"-window", "root", outPath}},
		} {
			if path, err := exec.LookPath(tool.name); err == nil {
				return exec.Command(path, tool.args...), nil
			}
		}
		return nil, fmt.Errorf("no screenshot tool found (tried gnome-screenshot, scrot, import)")
	case "windows":
		script := fmt.Sprintf(`Add-Type -AssemblyName System.Windows.Forms,System.Drawing;`+
			`$b=[System.Windows.Forms.SystemInformation]::VirtualScreen;`+
			`$bmp=New-Object System.Drawing.Bitmap $b.Width,$b.Height;`+
			`$g=[System.Drawing.Graphics]::FromImage($bmp);`+
			`$g.CopyFromScreen($b.Left,$b.Top,0,0,$bmp.Size);`+
			`$bmp.Save('%s',[System.Drawing.Imaging.ImageFormat]::Png)`, outPath)
		return exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script), nil
	default:
		return nil, fmt.Errorf("screenshot unsupported on %s", runtime.GOOS)
	}
}
