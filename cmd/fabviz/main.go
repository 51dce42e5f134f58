// Command fabviz plays step-sequenced fabrication process animations
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lixenwraith/fabviz/catalog"
	"github.com/lixenwraith/fabviz/config"
	"github.com/lixenwraith/fabviz/logging"
)

// app carries state resolved by the root command for all subcommands
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer

	cfgFile     string
	catalogPath string
	debug       bool
}

func main() {
	a := &app{v: viper.New()}
	root := newRootCmd(a)
	err := root.Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorMsg("%v", err))
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "fabviz",
		Short:         "Step-sequenced 3D fabrication process visualizer",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default $XDG_CONFIG_HOME/fabviz/config.yaml)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging to the log directory")
	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "load the process catalog from a TOML or YAML file")

	root.AddCommand(
		newPlayCmd(a),
		newListCmd(a),
		newStepsCmd(a),
		newSimulateCmd(a),
		newExportCmd(a),
	)
	return root
}

// init loads configuration and logging; flags override file and environment
func (a *app) init(cmd *cobra.Command) error {
	if err := config.Init(a.v, a.cfgFile); err != nil {
		return err
	}
	if a.debug {
		a.v.Set("logging.enabled", true)
		a.v.Set("logging.level", "debug")
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, closer, err := logging.Setup(logging.Options{
		Enabled: cfg.Logging.Enabled,
		Level:   cfg.Logging.Level,
		Dir:     cfg.Logging.Dir,
	})
	if err != nil {
		return err
	}
	a.logger = logger.With("command", cmd.Name())
	a.closer = closer
	return nil
}

func (a *app) close() {
	if a.closer != nil {
		a.closer.Close()
	}
}

// resolveCatalog prefers --catalog, then the named built-in, then fallback
func (a *app) resolveCatalog(args []string, fallback string) (*catalog.Catalog, error) {
	if a.catalogPath != "" {
		return catalog.Load(a.catalogPath)
	}
	name := fallback
	if len(args) > 0 {
		name = args[0]
	}
	return catalog.Builtin(name)
}

// processArgs completes built-in process names
func processArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return catalog.Names(), cobra.ShellCompDirectiveNoFileComp
}
