package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trajview-io/trajview/internal/config"
	"github.com/trajview-io/trajview/internal/site"
)

var (
	buildOutputDir string
	buildSiteDir   string
	buildDataOnly  bool
)

var buildCmd = &cobra.Command{
	Use:   "build [conversations-dir]",
	Short: "Build the static trajectory site",
	Long: `Build the static trajectory site from a conversations directory.

Without arguments, reads ~/.openhands/conversations. Summary metrics are
recomputed on every run; per-trajectory records are rebuilt only when their
source changed since the last run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutputDir, "output-dir", "o", "", "output directory for the built site")
	buildCmd.Flags().StringVar(&buildSiteDir, "site-dir", "", "frontend project directory the bundler runs in")
	buildCmd.Flags().BoolVar(&buildDataOnly, "data-only", false, "write the JSON records and skip the bundler")
}

// newBuilder resolves the conversations directory and the settings-backed
// defaults shared by build and watch. Flags win over settings.
func newBuilder(args []string, outputDir, siteDir string) (*site.Builder, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}

	input := ""
	if len(args) > 0 {
		input = args[0]
	}
	conversationsDir, custom, err := config.ResolveConversationsDir(input)
	if err != nil {
		return nil, err
	}

	if outputDir == "" {
		outputDir = settings.Site.OutputDir
	}
	if siteDir == "" {
		siteDir = settings.Site.Dir
	}

	return &site.Builder{
		ConversationsDir: conversationsDir,
		OutputDir:        outputDir,
		CustomDir:        custom,
		SiteDir:          siteDir,
		BundlerCommand:   settings.Site.Bundler,
	}, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	builder, err := newBuilder(args, buildOutputDir, buildSiteDir)
	if err != nil {
		return err
	}

	fmt.Println(styleBrand.Render("Building static trajectory site"))
	fmt.Printf("%s %s\n", styleLabel.Render("Source:"), styleValue.Render(builder.ConversationsDir))
	fmt.Printf("%s %s\n", styleLabel.Render("Output:"), styleValue.Render(builder.OutputDir))

	result, err := builder.BuildData()
	if err != nil {
		return err
	}
	fmt.Printf("\n  Rebuilt: %d, Skipped (unchanged): %d, Removed: %d\n",
		result.Rebuilt, result.Skipped, result.Removed)

	if !buildDataOnly {
		if err := builder.Assemble(); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Println(styleSuccess.Render("Build complete."))
	fmt.Printf("%s %s\n", styleLabel.Render("Trajectories:"), styleValue.Render(fmt.Sprintf("%d", len(result.Summaries))))
	fmt.Println(styleHint.Render(fmt.Sprintf("View with: trajview serve --output-dir %s", builder.OutputDir)))
	return nil
}
