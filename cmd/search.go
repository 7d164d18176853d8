package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smazurov/openlogger/internal/logfile"
	"github.com/smazurov/openlogger/internal/logs"
)

// CreateSearchCmd creates the search command.
func CreateSearchCmd() *cobra.Command {
	var flags localFlags
	var params logs.SearchParams

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find log files by date",
		Long:  `Lists the dated log files matching the given year, month and day. Omitted parts match anything.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := flags.service()
			if err != nil {
				return err
			}
			files, err := svc.Search(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printFiles(cmd.OutOrStdout(), files)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&params.Year, "year", "", "Four digit year, e.g. 2024")
	cmd.Flags().StringVar(&params.Month, "month", "", "Two digit month, e.g. 03")
	cmd.Flags().StringVar(&params.Day, "day", "", "Two digit day, e.g. 05")
	return cmd
}

// CreateListCmd creates the ls command.
func CreateListCmd() *cobra.Command {
	var flags localFlags

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List files in the log directory",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := flags.service()
			if err != nil {
				return err
			}
			files, err := svc.ListFiles(cmd.Context())
			if err != nil {
				return err
			}
			return printFiles(cmd.OutOrStdout(), files)
		},
	}

	flags.register(cmd)
	return cmd
}

func printFiles(w io.Writer, files []logfile.FileInfo) error {
	if len(files) == 0 {
		_, err := fmt.Fprintln(w, "no log files")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEXT\tPATH")
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, f.Extension, f.Path)
	}
	return tw.Flush()
}
