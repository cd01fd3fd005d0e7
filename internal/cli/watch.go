package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/trajview-io/trajview/internal/site"
)

var (
	watchOutputDir string
	watchSiteDir   string
	watchDataOnly  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [conversations-dir]",
	Short: "Rebuild the site data as conversations change",
	Long: `Build the site, then keep watching the conversations directory and
rebuild the data records whenever a trajectory changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutputDir, "output-dir", "o", "", "output directory for the built site")
	watchCmd.Flags().StringVar(&watchSiteDir, "site-dir", "", "frontend project directory the bundler runs in")
	watchCmd.Flags().BoolVar(&watchDataOnly, "data-only", false, "write the JSON records and skip the bundler")
}

func runWatch(cmd *cobra.Command, args []string) error {
	builder, err := newBuilder(args, watchOutputDir, watchSiteDir)
	if err != nil {
		return err
	}

	result, err := builder.BuildData()
	if err != nil {
		return err
	}
	fmt.Printf("  Rebuilt: %d, Skipped (unchanged): %d, Removed: %d\n",
		result.Rebuilt, result.Skipped, result.Removed)

	if !watchDataOnly {
		if err := builder.Assemble(); err != nil {
			return err
		}
	}

	watcher, err := site.NewWatcher(builder)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	fmt.Println(styleSuccess.Render(fmt.Sprintf("Watching %s", builder.ConversationsDir)))
	fmt.Println(styleHint.Render("Press Ctrl+C to stop."))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	fmt.Println()
	return nil
}
