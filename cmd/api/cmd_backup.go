package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var backupOutput string

// shopflow backup exports every collection as a JSON document.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a JSON backup of products, customers, invoices and settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, a, err := bootstrap(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.Close()

		backup, err := a.Services.Backup.CreateBackup(cmd.Context())
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(backup, "", "  ")
		if err != nil {
			return fmt.Errorf("encode backup: %w", err)
		}

		if backupOutput == "-" {
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		}

		path := backupOutput
		if path == "" {
			path = backup.Filename()
		}
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
		log.WithField("file", path).Info("Backup written")
		return nil
	},
}

// shopflow restore <file> overwrites collections from a backup document.
var restoreCmd = &cobra.Command{
	Use:   "restore <file|->",
	Short: "Restore the collections present in a JSON backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read backup: %w", err)
		}

		_, log, a, err := bootstrap(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Services.Backup.Restore(cmd.Context(), data)
		if err != nil {
			return err
		}
		log.WithField("restored", result.Restored).
			WithField("skipped", result.Skipped).
			Info("Data restored successfully")
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "output file (default shopflow_backup_<date>.json, - for stdout)")
}
