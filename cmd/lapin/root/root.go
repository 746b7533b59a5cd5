package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "lapin",
	Short:         "Le Lapin Blanc — turn your days into an investigation",
	Long:          "Le Lapin Blanc is a local-first progression engine: real-world missions earn XP, level up skills, and unlock the story of Dr. Chen and Compound-X.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newTodayCmd(),
		newDoneCmd(),
		newFocusCmd(),
		newStatusCmd(),
		newStoryCmd(),
		newCodexCmd(),
		newCategoryCmd(),
		newBoardCmd(),
		newExportCmd(),
		newImportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
