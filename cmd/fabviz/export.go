package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/fabviz/catalog"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		output string
		format string
	)
	cmd := &cobra.Command{
		Use:               "export [process]",
		Short:             "Write a process catalog as YAML or TOML for editing",
		Long:              "Write a process catalog as YAML or TOML. The file can be edited and played back with --catalog.",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: processArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.resolveCatalog(args, "cmp")
			if err != nil {
				return err
			}

			f := catalog.Format(format)
			if output != "" && !cmd.Flags().Changed("format") {
				if f, err = catalog.FormatFromPath(output); err != nil {
					return err
				}
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("export: %w", err)
				}
				defer file.Close()
				w = file
			}

			if err := catalog.Encode(w, c, f); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), successMsg("wrote %s (%d steps)", output, c.Len()))
			}
			a.logger.Info("catalog exported", "process", c.Name(), "format", string(f), "output", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout; format from extension)")
	cmd.Flags().StringVarP(&format, "format", "f", string(catalog.FormatYAML), "yaml or toml")
	return cmd
}
