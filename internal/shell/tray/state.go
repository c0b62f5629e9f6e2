// Package tray implements the system tray icon and menu for the shell.
package tray

// ShellState provides read-only access to shell state for the tray.
type ShellState interface {
	Port() int
	BackendRunning() bool
	ShowWindow()
	HideWindow()
}
