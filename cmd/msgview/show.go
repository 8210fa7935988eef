package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/welldanyogia/webrana-msgview/internal/api/handlers"
	"github.com/welldanyogia/webrana-msgview/internal/message"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <sms|mms> <id>",
		Short: "Print the view of one message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid message id %q: %w", args[1], err)
			}

			a, err := newApp(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.close()

			v, err := a.views.Get(cmd.Context(), args[0], id, highlight)
			if err != nil {
				return err
			}
			return printViews(cmd.OutOrStdout(), v)
		},
	}
}

func newThreadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "thread <thread-id>",
		Short: "Print the views of every message in a thread, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threadID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid thread id %q: %w", args[0], err)
			}

			a, err := newApp(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.close()

			views, err := a.views.ListThread(cmd.Context(), threadID, highlight)
			if err != nil {
				return err
			}
			return printViews(cmd.OutOrStdout(), views...)
		},
	}
}

// printViews writes one indented JSON document per view.
func printViews(w io.Writer, views ...*message.View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	for _, v := range views {
		if err := enc.Encode(handlers.NewViewResponse(v)); err != nil {
			return err
		}
	}
	return nil
}
