package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/MeKo-Tech/noisetex/internal/params"
	"github.com/spf13/cobra"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "List the texture parameters with their bounds and defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printParams(cmd.OutOrStdout(), params.NewModel())
	},
}

func init() {
	rootCmd.AddCommand(paramsCmd)
}

func printParams(out io.Writer, m *params.Model) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVALUE\tMIN\tMAX\tSTEP\tDERIVED")
	for _, name := range m.Names() {
		p, err := m.Param(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%g\n", name, p.Value(), p.Min(), p.Max(), p.Step(), p.Derived())
	}
	return w.Flush()
}
