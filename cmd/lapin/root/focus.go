package root

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/tui"
)

func newFocusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus <id>",
		Short: "Run a focus session for a timed mission",
		Long:  "Starts the mission's countdown and takes over the terminal. The mission completes itself when the countdown reaches zero; press a or esc to abandon.",
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

			return tui.RunFocus(ctx, svc, args[0], cmd.OutOrStdout())
		},
	}

	return cmd
}
