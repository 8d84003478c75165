package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/updatekit/updatekit-go/internal/secret"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage API keys in the OS keyring",
	}

	setCmd := &cobra.Command{
		Use:   "set-key <name> <value>",
		Short: "Store an API key in the OS keyring",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := secret.Store(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored. Reference it in config as %q.\n", "keyring:"+args[0])
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete-key <name>",
		Short: "Remove an API key from the OS keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return secret.Delete(args[0])
		},
	}

	cmd.AddCommand(setCmd, deleteCmd)
	return cmd
}
