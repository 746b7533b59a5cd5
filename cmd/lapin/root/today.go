package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/ui"
)

func newTodayCmd() *cobra.Command {
	var onDate string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "List the missions due today",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			date := time.Now()
			if onDate != "" {
				d, err := time.ParseInLocation("2006-01-02", onDate, time.Local)
				if err != nil {
					return fmt.Errorf("parse date: %w", err)
				}
				date = d
			}

			missions, err := svc.DueMissions(ctx, date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconRabbit, date.Format("Monday, January 2")))
			if len(missions) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing due. The white rabbit waits."))
				return nil
			}
			for i := range missions {
				m := &missions[i]
				line := fmt.Sprintf("%s %s  %s", ui.TypeIcon(m.Type), ui.Key.Render(m.Title), ui.StatusText(m.Status))
				fmt.Fprintln(out, "- "+line)
				detail := fmt.Sprintf("  %s · %s · +%d XP", ui.Muted.Render(m.ID), m.CategoryID, m.XPReward)
				if m.HasTimer {
					detail += fmt.Sprintf(" · %s %d min", ui.IconTimer, m.EstimatedTime)
				}
				fmt.Fprintln(out, detail)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&onDate, "on", "", "Evaluate a different day (YYYY-MM-DD)")

	return cmd
}
