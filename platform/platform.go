package platform

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Friendly OS names used in messages and flags
var friendlyNames = map[string]string{
	"windows": "windows",
	"linux":   "linux",
	"darwin":  "macos",
	"freebsd": "freebsd",
}

// DetectCurrent returns the current platform as a friendly OS name.
func DetectCurrent() (string, error) {
	if name, ok := friendlyNames[runtime.GOOS]; ok {
		return name, nil
	}
	return "", fmt.Errorf("unsupported platform: %s/%s", runtime.GOOS, runtime.GOARCH)
}

// OpenCommand returns the program and arguments that hand target (a URL or a file path)
// to the default application on goos.
func OpenCommand(goos, target string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{target}, nil
	case "windows":
		// The empty argument is the window title expected by start.
		return "cmd", []string{"/c", "start", "", target}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{target}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// Open hands target to the default application without waiting for it to exit.
func Open(target string) error {
	name, args, err := OpenCommand(runtime.GOOS, target)
	if err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	// Reap the child in the background.
	go func() { _ = cmd.Wait() }()
	return nil
}
