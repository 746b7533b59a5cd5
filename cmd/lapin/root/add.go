package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/engine"
	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/ui"
)

func newAddCmd() *cobra.Command {
	var description string
	var category string
	var xp int
	var withTimer bool
	var estimated int
	var missionType string
	var weekDay string
	var date string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a mission",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			m, err := svc.CreateMission(ctx, engine.CreateMissionInput{
				Title:         args[0],
				Description:   description,
				Category:      category,
				XPReward:      xp,
				HasTimer:      withTimer,
				EstimatedTime: estimated,
				Type:          engine.ParseMissionType(missionType),
				WeekDay:       weekDay,
				SpecificDate:  date,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconPlus, "Mission created"))
			fmt.Fprintln(out, ui.LabelValue("ID", m.ID))
			fmt.Fprintln(out, ui.LabelValue("Title", m.Title))
			fmt.Fprintln(out, ui.LabelValue("Category", m.CategoryID))
			fmt.Fprintln(out, ui.LabelValue("XP", m.XPReward))
			fmt.Fprintf(out, "%s %s %s\n", ui.Key.Render("Type:"), ui.TypeIcon(m.Type), m.Type)
			if m.WeekDay != nil {
				fmt.Fprintln(out, ui.LabelValue("Day", *m.WeekDay))
			}
			if m.SpecificDate != nil {
				fmt.Fprintln(out, ui.LabelValue("Date", m.SpecificDate.Format("2006-01-02")))
			}
			if m.HasTimer {
				fmt.Fprintf(out, "%s %s %d min\n", ui.Key.Render("Focus:"), ui.IconTimer, m.EstimatedTime)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "D", "", "Mission description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category id (see 'lapin category list')")
	cmd.Flags().IntVarP(&xp, "xp", "x", 25, "XP reward (1-500)")
	cmd.Flags().BoolVar(&withTimer, "timer", false, "Attach a focus timer")
	cmd.Flags().IntVarP(&estimated, "minutes", "m", 25, "Estimated focus time in minutes (5-480)")
	cmd.Flags().StringVarP(&missionType, "type", "t", "daily", "Recurrence (daily|weekly|once)")
	cmd.Flags().StringVarP(&weekDay, "day", "w", "", "Week day for weekly missions (monday..sunday)")
	cmd.Flags().StringVar(&date, "date", "", "Date for one-shot missions (YYYY-MM-DD)")

	return cmd
}
