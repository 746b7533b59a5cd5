package root

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/engine"
	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show player stats, skills and codex totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.PlayerRepo().GetOrCreateMain(ctx)
			if err != nil {
				return err
			}
			level := engine.PlayerLevel(p.TotalXP)
			toNext := engine.XPToNextLevel(p.TotalXP)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconRabbit, p.Name))
			fmt.Fprintln(out, ui.LabelValue("Level", level))
			fmt.Fprintln(out, ui.LabelValue("Total XP", fmt.Sprintf("%d (%d to next level)", p.TotalXP, toNext)))
			fmt.Fprintf(out, "%s %d/100  %s %d/100\n",
				ui.Key.Render(ui.IconHeart+" Health:"), p.Health,
				ui.Key.Render(ui.IconBolt+" Energy:"), p.Energy)
			fmt.Fprintln(out, "")

			categories, err := svc.CategoryRepo().ListAll(ctx)
			if err != nil {
				return err
			}
			icons := make(map[string]string, len(categories))
			for _, c := range categories {
				icons[c.ID] = c.Icon
			}

			skills, err := svc.SkillRepo().ListAll(ctx)
			if err != nil {
				return err
			}
			sort.Slice(skills, func(i, j int) bool { return skills[i].CategoryID < skills[j].CategoryID })

			fmt.Fprintln(out, ui.H2.Render("📊 Skills"))
			for i := range skills {
				sk := &skills[i]
				icon := icons[sk.CategoryID]
				if icon == "" {
					icon = ui.IconMission
				}
				fmt.Fprintf(out, "- %s %s lvl %d (%d/%d)\n",
					icon, ui.Key.Render(sk.CategoryID+":"), sk.Level, sk.XP, sk.MaxXP)
			}
			fmt.Fprintln(out, "")

			discoveries, err := svc.CodexRepo().ListDiscoveries(ctx)
			if err != nil {
				return err
			}
			artifacts, err := svc.CodexRepo().ListArtifacts(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.H2.Render(ui.IconScroll+" Codex"))
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Discoveries:"), len(discoveries))
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Artifacts:"), len(artifacts))

			return nil
		},
	}

	return cmd
}
