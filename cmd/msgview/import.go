package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/welldanyogia/webrana-msgview/internal/message"
	"github.com/welldanyogia/webrana-msgview/internal/models"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load messages into the store",
	}
	cmd.AddCommand(newImportMIMECmd())
	cmd.AddCommand(newImportSmsCmd())
	return cmd
}

func newImportMIMECmd() *cobra.Command {
	var threadID int64

	cmd := &cobra.Command{
		Use:   "mime <file>",
		Short: "Store a MIME message as a received MMS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			a, err := newApp(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.close()

			uri, err := a.imports.ImportMIME(cmd.Context(), f, threadID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), uri)
			return nil
		},
	}

	cmd.Flags().Int64Var(&threadID, "thread", 1, "Thread the message belongs to")
	return cmd
}

func newImportSmsCmd() *cobra.Command {
	sms := &models.Sms{}
	var date string

	cmd := &cobra.Command{
		Use:   "sms",
		Short: "Store one SMS row",
		RunE: func(cmd *cobra.Command, args []string) error {
			sms.Date = time.Now().UnixMilli()
			if date != "" {
				t, err := time.Parse(time.RFC3339, date)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
				sms.Date = t.UnixMilli()
			}

			a, err := newApp(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.imports.ImportSms(cmd.Context(), sms); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s/%d\n", message.SmsContentURI, sms.ID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&sms.ThreadID, "thread", 1, "Thread the message belongs to")
	cmd.Flags().StringVar(&sms.Address, "address", "", "Other party's address")
	cmd.Flags().StringVar(&sms.Body, "body", "", "Message text")
	cmd.Flags().IntVar(&sms.Type, "box", 1, "Folder: 1 inbox, 2 sent, 3 draft, 4 outbox, 5 failed, 6 queued")
	cmd.Flags().IntVar(&sms.Status, "status", message.SmsStatusNone, "Delivery status, -1 when no report was requested")
	cmd.Flags().BoolVar(&sms.Locked, "locked", false, "Protect the message from deletion")
	cmd.Flags().StringVar(&date, "date", "", "RFC 3339 receive time, default now")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}
