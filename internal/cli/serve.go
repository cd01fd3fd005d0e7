package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/trajview-io/trajview/internal/config"
	"github.com/trajview-io/trajview/internal/site"
)

var (
	serveOutputDir string
	servePort      int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the built site over HTTP",
	Long: `Serve the built site directory over HTTP. The viewer cannot run from
a file:// URL, so this is how a built site is opened locally.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveOutputDir, "output-dir", "o", "", "built site directory to serve")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	dir := serveOutputDir
	if dir == "" {
		dir = settings.Site.OutputDir
	}
	port := servePort
	if port == 0 {
		port = settings.Serve.Port
	}

	if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
		fmt.Println(styleWarning.Render(fmt.Sprintf("No index.html under %s. Run: trajview build", dir)))
	}

	fmt.Println(styleSuccess.Render(fmt.Sprintf("Serving %s", dir)))
	fmt.Printf("%s %s\n", styleLabel.Render("Address:"), styleValue.Render(fmt.Sprintf("http://localhost:%d", port)))
	fmt.Println(styleHint.Render("Press Ctrl+C to stop."))

	return site.Serve(dir, port)
}
