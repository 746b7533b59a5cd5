package root

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/engine"
	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/ui"
)

func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a mission",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("mission id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CompleteMission(ctx, args[0])
			if err != nil {
				return err
			}
			printCompletion(cmd.OutOrStdout(), res)
			return nil
		},
	}

	return cmd
}

func printCompletion(out io.Writer, res *engine.CompleteResult) {
	if res.AlreadyDone {
		fmt.Fprintln(out, ui.Muted.Render("Already completed. Nothing changed."))
		return
	}

	fmt.Fprintln(out, ui.Heading(ui.IconDone, "Mission complete"))
	fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("+%d", res.XPAwarded)))
	if res.Skill != nil {
		fmt.Fprintf(out, "%s lvl %d (%d/%d)\n",
			ui.Key.Render(res.Skill.CategoryID+":"), res.Skill.Level, res.Skill.XP, res.Skill.MaxXP)
	}
	for range res.SkillLevelUps {
		fmt.Fprintln(out, ui.Good.Render(ui.IconSparkle+" Skill level up!"))
	}
	if res.PlayerLevelAfter > res.PlayerLevelBefore {
		fmt.Fprintf(out, "%s %s → level %d\n", ui.BadgeLevelUp, ui.IconBolt, res.PlayerLevelAfter)
	}
	for _, f := range res.Unlocks {
		fmt.Fprintln(out, ui.Gold.Render(ui.IconScroll+" "+f.Title))
		fmt.Fprintln(out, ui.Muted.Render("  "+f.Content))
	}
	if res.Artifact != nil {
		fmt.Fprintf(out, "%s %s %s (%s)\n",
			ui.IconArtifact, ui.Key.Render("Artifact found:"), res.Artifact.Name, ui.RarityText(res.Artifact.Rarity))
	}
}
