package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trajview-io/trajview/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the active settings",
	Long: `Show the active settings and where they come from.

Settings live in ~/.trajview/settings.yaml; fields missing from the file
fall back to built-in defaults.`,
	RunE: runSettings,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the default values",
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

	path, err := config.GlobalSettingsFile()
	if err != nil {
		return err
	}
	source := path
	if !config.FileExists(path) {
		source = "defaults (no settings file)"
	}

	fmt.Println(styleBrand.Render("Trajview settings"))
	fmt.Printf("%s %s\n", styleLabel.Render("Source:"), styleValue.Render(source))
	fmt.Printf("%s %s\n", styleLabel.Render("Site dir:"), styleValue.Render(settings.Site.Dir))
	fmt.Printf("%s %s\n", styleLabel.Render("Output dir:"), styleValue.Render(settings.Site.OutputDir))
	fmt.Printf("%s %s\n", styleLabel.Render("Bundler:"), styleValue.Render(settings.Site.Bundler))
	fmt.Printf("%s %s\n", styleLabel.Render("Serve port:"), styleValue.Render(fmt.Sprintf("%d", settings.Serve.Port)))
	return nil
}

func runSettingsInit(cmd *cobra.Command, args []string) error {
	path, err := config.GlobalSettingsFile()
	if err != nil {
		return err
	}
	if config.FileExists(path) {
		fmt.Println(styleWarning.Render(fmt.Sprintf("Settings file already exists: %s", path)))
		return nil
	}

	if err := config.SaveSettings(config.NewSettings()); err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render(fmt.Sprintf("Wrote default settings to %s", path)))
	return nil
}
