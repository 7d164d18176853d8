package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smazurov/openlogger/internal/logs"
	"github.com/smazurov/openlogger/internal/severity"
)

// CreateWriteCmd creates the write command.
func CreateWriteCmd() *cobra.Command {
	var flags localFlags
	var level, contextJSON string

	cmd := &cobra.Command{
		Use:   "write [message]",
		Short: "Append one entry to the current log file",
		Long: `Formats the message with the configured template and appends it to the log file ` +
			`for today. Entries less severe than logger.level are dropped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := flags.service()
			if err != nil {
				return err
			}
			result, err := svc.Write(cmd.Context(), logs.WriteParams{
				Severity: level,
				Message:  strings.Join(args, " "),
				Context:  contextJSON,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !result.Written {
				fmt.Fprintf(out, "filtered: %s is below the threshold\n", result.Severity)
				return nil
			}
			fmt.Fprintf(out, "%s: %s\n", result.File, result.Line)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&level, "level", "l", "info", "Severity ("+strings.Join(severity.Names(), ", ")+")")
	cmd.Flags().StringVar(&contextJSON, "context", "", "JSON object appended below the entry")
	return cmd
}
