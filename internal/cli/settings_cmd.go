package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oh-yeah-zzy/PhantomHand/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show shell settings",
	RunE:  runSettings,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write default settings to ~/.phantomhand/settings.yaml",
	RunE:  runSettingsInit,
}

func init() {
	settingsCmd.AddCommand(settingsInitCmd)
}

func runSettings(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	workerPath := settings.Worker.Path
	if workerPath == "" {
		workerPath = "(next to shell executable)"
	}

	fmt.Println(styleBrand.Render("PhantomHand settings"))
	fmt.Printf("  %s %s\n", styleLabel.Render("Worker path:"), styleValue.Render(workerPath))
	fmt.Printf("  %s %s\n", styleLabel.Render("Worker port:"), styleValue.Render(fmt.Sprintf("%d", settings.Worker.Port)))
	fmt.Printf("  %s %s\n", styleLabel.Render("Capture logs:"), styleValue.Render(fmt.Sprintf("%t", settings.Logs.Capture)))
	fmt.Printf("  %s %s\n", styleLabel.Render("Max sessions:"), styleValue.Render(fmt.Sprintf("%d", settings.Logs.MaxSessions)))
	fmt.Printf("  %s %s\n", styleLabel.Render("Start visible:"), styleValue.Render(fmt.Sprintf("%t", settings.Window.StartVisible)))

	return nil
}

func runSettingsInit(cmd *cobra.Command, args []string) error {
	path, err := config.GlobalSettingsFile()
	if err != nil {
		return err
	}

	if config.FileExists(path) {
		fmt.Printf("Settings file already exists at %s\n", path)
		return nil
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if err := config.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Wrote default settings to %s\n", path)
	return nil
}
