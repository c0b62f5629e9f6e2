package cli

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oh-yeah-zzy/PhantomHand/internal/config"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Manage the PhantomHand shell",
	Long:  `Manage the PhantomHand shell process.`,
}

var shellStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show shell status",
	RunE:  runShellStatus,
}

var shellStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the shell",
	RunE:  runShellStart,
}

var shellStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the shell",
	RunE:  runShellStop,
}

func init() {
	shellCmd.AddCommand(shellStartCmd)
	shellCmd.AddCommand(shellStatusCmd)
	shellCmd.AddCommand(shellStopCmd)
}

func runShellStart(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsShellRunning()
	if err != nil {
		return fmt.Errorf("failed to check shell status: %w", err)
	}

	if running && info != nil {
		fmt.Printf("Shell is already running (PID %d, port %d).\n", info.PID, info.Port)
		return nil
	}

	// Clean up stale shell info if it exists
	if info != nil {
		_ = config.RemoveShellInfo()
	}

	fmt.Print("Starting shell...")
	if startErr := startShell(); startErr != nil {
		fmt.Println()
		return startErr
	}

	// Fetch fresh status to display
	_, freshInfo, err := config.IsShellRunning()
	if err != nil || freshInfo == nil {
		fmt.Println(" started.")
		return nil
	}

	fmt.Printf(" started (PID %d, port %d).\n", freshInfo.PID, freshInfo.Port)
	return nil
}

func runShellStatus(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsShellRunning()
	if err != nil {
		return err
	}

	if !running || info == nil {
		fmt.Println("Shell is not running.")
		fmt.Println(styleHint.Render("Start it with: phantomhand shell start"))
		return nil
	}

	uptime := time.Since(info.StartedAt).Truncate(time.Second)

	fmt.Println(styleSuccess.Render("Shell is running."))
	fmt.Printf("  %s %s\n", styleLabel.Render("Host:"), styleValue.Render(info.Host))
	fmt.Printf("  %s %s\n", styleLabel.Render("Port:"), styleValue.Render(fmt.Sprintf("%d", info.Port)))
	fmt.Printf("  %s %s\n", styleLabel.Render("PID:"), styleValue.Render(fmt.Sprintf("%d", info.PID)))
	fmt.Printf("  %s %s\n", styleLabel.Render("Uptime:"), styleValue.Render(uptime.String()))

	return nil
}

func runShellStop(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsShellRunning()
	if err != nil {
		return fmt.Errorf("failed to check shell status: %w", err)
	}

	if !running || info == nil {
		fmt.Println("Shell is not running.")
		return nil
	}

	// Send SIGTERM to the shell process
	process, err := os.FindProcess(info.PID)
	if err != nil {
		return fmt.Errorf("failed to find shell process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send stop signal: %w", err)
	}

	// Poll for shutdown (max 5 seconds)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		stillRunning, _, err := config.IsShellRunning()
		if err == nil && !stillRunning {
			fmt.Println("Shell stopped.")
			return nil
		}
	}

	return fmt.Errorf("shell did not stop within timeout")
}
