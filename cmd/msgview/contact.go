package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/welldanyogia/webrana-msgview/internal/validator"
)

// maxContactName matches the contacts.name column size.
const maxContactName = 255

func newContactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage the names shown for addresses",
	}
	cmd.AddCommand(newContactRenameCmd())
	cmd.AddCommand(newContactListCmd())
	return cmd
}

func newContactRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <address> <name>",
		Short: "Set the display name of an address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			address := strings.TrimSpace(args[0])
			if err := validator.ValidateAddress(address); err != nil {
				return fmt.Errorf("invalid address %q: %w", address, err)
			}
			name := validator.SanitizeString(args[1], maxContactName)

			a, err := newApp(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.resolver.Rename(cmd.Context(), address, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", address, a.resolver.Resolve(cmd.Context(), address, false))
			return nil
		},
	}
}

func newContactListCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print known contacts ordered by address",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 || offset < 0 {
				return fmt.Errorf("--limit must be positive and --offset not negative")
			}

			a, err := newApp(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.close()

			contacts, total, err := a.contacts.List(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, c := range contacts {
				if err := enc.Encode(c); err != nil {
					return err
				}
			}
			a.logger.Debug("contacts listed", "shown", len(contacts), "total", total)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum contacts to print")
	cmd.Flags().IntVar(&offset, "offset", 0, "Contacts to skip")
	return cmd
}
