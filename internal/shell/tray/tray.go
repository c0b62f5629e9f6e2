package tray

import (
	"fmt"
	"os"

	"github.com/getlantern/systray"
)

var (
	state   ShellState
	onStart func()
	onExit  func()

	portItem *systray.MenuItem
	showItem *systray.MenuItem
	hideItem *systray.MenuItem
	quitItem *systray.MenuItem
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called when the tray is ready (launch the server and backend here).
// onExitFn is called when the tray exits via Quit() (cleanup here).
func Run(s ShellState, onStartFn, onExitFn func()) {
	state = s
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit, running the onExit cleanup. Used for
// signal-driven shutdown; the menu's Quit item is a hard exit instead.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetTemplateIcon(iconData, iconData)
	systray.SetTooltip(formatTooltip(false))

	header := systray.AddMenuItem("PhantomHand", "")
	header.Disable()

	portItem = systray.AddMenuItem("Starting...", "")
	portItem.Disable()

	systray.AddSeparator()

	// systray exposes menu items only, so the show item also carries the
	// primary-activation gesture.
	showItem = systray.AddMenuItem("Show Window", "Show and focus the main window")
	hideItem = systray.AddMenuItem("Hide Window", "Hide the main window; the backend keeps running")

	systray.AddSeparator()

	quitItem = systray.AddMenuItem("Quit", "Exit PhantomHand immediately")

	if onStart != nil {
		onStart()
	}

	if state != nil {
		portItem.SetTitle(fmt.Sprintf("Running on port: %d", state.Port()))
		UpdateBackend(state.BackendRunning())
	}

	go handleClicks()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-showItem.ClickedCh:
			state.ShowWindow()

		case <-hideItem.ClickedCh:
			state.HideWindow()

		case <-quitItem.ClickedCh:
			// Hard exit, no graceful backend shutdown. The stale shell.yaml
			// is reclaimed by the PID check on next start.
			os.Exit(0)
		}
	}
}

// UpdateBackend refreshes the tooltip with the backend running state.
func UpdateBackend(running bool) {
	systray.SetTooltip(formatTooltip(running))
}

func formatTooltip(running bool) string {
	if running {
		return "PhantomHand — backend running"
	}
	return "PhantomHand — backend stopped"
}
