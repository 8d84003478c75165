package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/updatekit/updatekit-go/internal/update"
)

// These commands are stand-ins for the presentation layer's callbacks: they
// apply one user interaction to the persisted state, so the next `check`
// reflects it.

func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <post-url>",
		Short: "Mark a post as opened (clears its badge)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			app.Engine.MarkPostAsOpened(args[0])
			return nil
		},
	}
}

func shownCmd() *cobra.Command {
	var policyName string

	cmd := &cobra.Command{
		Use:   "shown <version-code>",
		Short: "Record that the update popup was shown for a version",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			policy, err := parsePolicy(policyName)
			if err != nil {
				return err
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			app.Engine.MarkPopupAsShown(args[0], policy)
			return nil
		},
	}
	cmd.Flags().StringVar(&policyName, "policy", "popup", "Popup policy (popup, popup_force)")
	return cmd
}

func skipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skip <version-code>",
		Short: "Consume one skip attempt for a forced update and print the remainder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			remaining := app.Engine.SkipUpdate(args[0])
			fmt.Fprintln(cmd.OutOrStdout(), remaining)
			return nil
		},
	}
}

func parsePolicy(name string) (update.UpdatePolicy, error) {
	switch name {
	case "latest":
		return update.PolicyLatest, nil
	case "silent":
		return update.PolicySilent, nil
	case "popup":
		return update.PolicyPopup, nil
	case "popup_force":
		return update.PolicyPopupForce, nil
	default:
		return 0, fmt.Errorf("unknown policy %q", name)
	}
}
