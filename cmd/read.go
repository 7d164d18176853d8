package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CreateReadCmd creates the read command.
func CreateReadCmd() *cobra.Command {
	var flags localFlags

	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "Print a log file",
		Long:  `Prints the lines of a file from the log directory. Only bare file names are accepted.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := flags.service()
			if err != nil {
				return err
			}
			lines, err := svc.Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
