package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/ui"
)

func newCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage mission categories",
	}
	cmd.AddCommand(newCategoryListCmd(), newCategoryAddCmd(), newCategoryEditCmd())
	return cmd
}

func newCategoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories and their skill tracks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			categories, err := svc.CategoryRepo().ListAll(ctx)
			if err != nil {
				return err
			}
			skills, err := svc.SkillRepo().ListAll(ctx)
			if err != nil {
				return err
			}
			byCat := make(map[string]int, len(skills))
			for i := range skills {
				byCat[skills[i].CategoryID] = i
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconMission, "Categories"))
			for _, c := range categories {
				line := fmt.Sprintf("- %s %s %s", c.Icon, ui.Key.Render(c.ID), ui.Muted.Render(c.Name))
				if i, ok := byCat[c.ID]; ok {
					sk := &skills[i]
					line += fmt.Sprintf("  lvl %d (%d/%d)", sk.Level, sk.XP, sk.MaxXP)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newCategoryAddCmd() *cobra.Command {
	var icon string
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a category with a fresh skill track",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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

			c, err := svc.CreateCategory(ctx, args[0], icon, color)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconPlus, "Category created"))
			fmt.Fprintln(out, ui.LabelValue("ID", c.ID))
			fmt.Fprintln(out, ui.LabelValue("Name", c.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&icon, "icon", "🎯", "Display emoji")
	cmd.Flags().StringVar(&color, "color", "#00ff88", "Display color (hex)")

	return cmd
}

func newCategoryEditCmd() *cobra.Command {
	var name string
	var icon string
	var color string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a category's display fields",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("category id is required")
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

			c, err := svc.CategoryRepo().Get(ctx, args[0])
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("unknown category: %s", args[0])
			}
			if name == "" {
				name = c.Name
			}
			if icon == "" {
				icon = c.Icon
			}
			if color == "" {
				color = c.Color
			}
			if err := svc.CategoryRepo().UpdateCosmetics(ctx, c.ID, name, icon, color); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Category updated: "+c.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&icon, "icon", "", "New emoji")
	cmd.Flags().StringVar(&color, "color", "", "New color (hex)")

	return cmd
}
