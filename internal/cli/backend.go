package cli

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oh-yeah-zzy/PhantomHand/internal/config"
)

var backendCmd = &cobra.Command{
	Use:   "backend",
	Short: "Inspect and control the backend worker",
	Long:  `Inspect and control the gesture-recognition backend worker supervised by the shell.`,
}

var backendStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backend worker status",
	RunE:  runBackendStatus,
}

var backendRestartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the backend worker",
	Long: `Ask the shell to start a fresh backend worker. The previous worker, if
still alive, is not stopped; it keeps running until it exits on its own.`,
	RunE: runBackendRestart,
}

var backendLogsCmd = &cobra.Command{
	Use:   "logs [log-id]",
	Short: "List or show worker session logs",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBackendLogs,
}

func init() {
	backendCmd.AddCommand(backendLogsCmd)
	backendCmd.AddCommand(backendRestartCmd)
	backendCmd.AddCommand(backendStatusCmd)
}

func runBackendStatus(cmd *cobra.Command, args []string) error {
	shellRunning, _, err := config.IsShellRunning()
	if err != nil {
		return err
	}
	if !shellRunning {
		fmt.Println("Shell is not running; no backend is supervised.")
		fmt.Println(styleHint.Render("Start it with: phantomhand shell start"))
		return nil
	}

	state, err := config.LoadBackendState()
	if err != nil {
		return fmt.Errorf("failed to load backend state: %w", err)
	}
	if state == nil {
		fmt.Println("Backend has not been started.")
		return nil
	}

	if state.Running {
		fmt.Println(styleSuccess.Render("Backend is running."))
	} else {
		fmt.Println(styleError.Render("Backend is not running."))
	}
	fmt.Printf("  %s %s\n", styleLabel.Render("PID:"), styleValue.Render(fmt.Sprintf("%d", state.PID)))
	fmt.Printf("  %s %s\n", styleLabel.Render("Port:"), styleValue.Render(fmt.Sprintf("%d", state.Port)))
	fmt.Printf("  %s %s\n", styleLabel.Render("Started:"), styleValue.Render(state.StartedAt.Local().Format(time.RFC1123)))

	return nil
}

func runBackendRestart(cmd *cobra.Command, args []string) error {
	if err := EnsureShell(); err != nil {
		return err
	}

	info, err := config.LoadShellInfo()
	if err != nil {
		return fmt.Errorf("failed to load shell info: %w", err)
	}
	if info == nil {
		return fmt.Errorf("shell not running")
	}

	// SIGHUP asks the shell to start a fresh backend worker.
	process, err := os.FindProcess(info.PID)
	if err != nil {
		return fmt.Errorf("failed to find shell process: %w", err)
	}
	if err := process.Signal(syscall.SIGHUP); err != nil {
		return fmt.Errorf("failed to send restart signal: %w", err)
	}

	fmt.Println(styleSuccess.Render("Restart requested."))
	fmt.Println(styleHint.Render("Check the outcome with: phantomhand backend status"))
	return nil
}

func runBackendLogs(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		entry, body, err := config.ReadLog(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", styleLabel.Render("Session:"), styleValue.Render(entry.LogID))
		fmt.Printf("%s %s — %s (%s)\n\n",
			styleLabel.Render("Ran:"),
			styleValue.Render(entry.StartedAt),
			styleValue.Render(entry.EndedAt),
			entry.Status)
		fmt.Println(body)
		return nil
	}

	logs, err := config.ListLogs()
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Println("No worker session logs.")
		return nil
	}

	fmt.Printf("%s\n", styleBrand.Render("Worker session logs (newest first):"))
	for _, entry := range logs {
		fmt.Printf("  %s  %s\n", styleValue.Render(entry.LogID), styleLabel.Render(entry.Status))
	}
	fmt.Println(styleHint.Render("\nShow one with: phantomhand backend logs <log-id>"))
	return nil
}
