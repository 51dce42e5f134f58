package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/fabviz/catalog"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in processes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows [][]string
			for _, name := range catalog.Names() {
				c, err := catalog.Builtin(name)
				if err != nil {
					return err
				}
				rows = append(rows, []string{name, c.Title(), strconv.Itoa(c.Len()), seconds(c.Total())})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Process", "Title", "Steps", "Duration"}, rows))
			return nil
		},
	}
}

func newStepsCmd(a *app) *cobra.Command {
	var showParams bool
	cmd := &cobra.Command{
		Use:               "steps [process]",
		Short:             "Show the step sequence of a process",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: processArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.resolveCatalog(args, "cmp")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", bold(c.Title()), muted("("+c.Name()+")"))

			var rows [][]string
			for _, s := range c.Steps() {
				row := []string{strconv.Itoa(s.Index + 1), s.Title, seconds(s.Dwell), particleKind(s.Particles)}
				if showParams {
					params := make([]string, len(s.Parameters))
					for i, p := range s.Parameters {
						params[i] = p.String()
					}
					row = append(row, strings.Join(params, "\n"))
				}
				rows = append(rows, row)
			}
			headers := []string{"#", "Step", "Dwell", "Effect"}
			if showParams {
				headers = append(headers, "Parameters")
			}
			fmt.Fprintln(out, renderTable(headers, rows))
			fmt.Fprintf(out, "%s %s\n", muted("total"), accent(seconds(c.Total())))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showParams, "params", "p", false, "include technical parameters")
	return cmd
}

func particleKind(p *catalog.ParticleConfig) string {
	if p == nil {
		return "-"
	}
	return p.Kind
}
