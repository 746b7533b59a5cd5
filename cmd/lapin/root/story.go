package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/engine"
	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/ui"
)

func newStoryCmd() *cobra.Command {
	var atLevel int
	var all bool

	cmd := &cobra.Command{
		Use:   "story",
		Short: "Read the unlocked story fragments",
		RunE: func(cmd *cobra.Command, args []string) error {
			if atLevel > 0 {
				printFragment(cmd, engine.UnlockForLevel(atLevel))
				return nil
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()

			p, err := svc.PlayerRepo().GetOrCreateMain(ctx)
			if err != nil {
				return err
			}
			level := engine.PlayerLevel(p.TotalXP)

			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "The Investigation So Far"))
			fmt.Fprintln(out, ui.Muted.Render("Level "+strconv.Itoa(level)))
			fmt.Fprintln(out, "")

			shown := 0
			for _, l := range engine.CuratedLevels() {
				if l > level {
					break
				}
				printFragment(cmd, engine.UnlockForLevel(l))
				shown++
			}
			if all {
				for l := 2; l <= level; l++ {
					f := engine.UnlockForLevel(l)
					if len(f.Discoveries) == 0 && len(f.Artifacts) == 0 {
						continue
					}
					curated := false
					for _, cl := range engine.CuratedLevels() {
						if cl == l {
							curated = true
							break
						}
					}
					if curated {
						continue
					}
					printFragment(cmd, f)
					shown++
				}
			}
			if shown == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No fragments yet. Complete missions to follow the white rabbit."))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&atLevel, "level", "l", 0, "Preview the fragment for a specific level")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include derived fragments, not just the main arc")

	return cmd
}

func printFragment(cmd *cobra.Command, f engine.StoryFragment) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Gold.Render(fmt.Sprintf("Level %d — %s", f.Level, f.Title)))
	fmt.Fprintln(out, "  "+f.Content)
	for _, d := range f.Discoveries {
		fmt.Fprintf(out, "  %s %s (%s)\n", ui.IconDiscovery, d.Title, ui.RarityText(string(d.Rarity)))
	}
	for _, a := range f.Artifacts {
		fmt.Fprintf(out, "  %s %s (%s)\n", ui.IconArtifact, a.Name, ui.RarityText(string(a.Rarity)))
	}
	fmt.Fprintln(out, "")
}
