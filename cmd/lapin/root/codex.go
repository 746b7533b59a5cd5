package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/ui"
)

func newCodexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codex",
		Short: "List collected discoveries and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()

			discoveries, err := svc.CodexRepo().ListDiscoveries(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Heading(ui.IconDiscovery, "Discoveries"))
			if len(discoveries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("None yet."))
			}
			for i := range discoveries {
				d := &discoveries[i]
				fmt.Fprintf(out, "- %s (%s) %s\n",
					ui.Key.Render(d.Title), ui.RarityText(d.Rarity),
					ui.Muted.Render(d.UnlockedAt.Format("2006-01-02")))
				if d.Description != "" {
					fmt.Fprintln(out, "  "+ui.Muted.Render(d.Description))
				}
			}
			fmt.Fprintln(out, "")

			artifacts, err := svc.CodexRepo().ListArtifacts(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Heading(ui.IconArtifact, "Artifacts"))
			if len(artifacts) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("None yet."))
			}
			for i := range artifacts {
				a := &artifacts[i]
				fmt.Fprintf(out, "- %s (%s) %s\n",
					ui.Key.Render(a.Name), ui.RarityText(a.Rarity),
					ui.Muted.Render(a.FoundAt.Format("2006-01-02")))
				if a.Description != "" {
					fmt.Fprintln(out, "  "+ui.Muted.Render(a.Description))
				}
			}

			return nil
		},
	}

	return cmd
}
