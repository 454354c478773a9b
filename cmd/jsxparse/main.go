package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/jsxparse/project"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("jsxparse.cli")

const version = "0.1.0"

// globals holds the flags shared by every command.
type globals struct {
	verbose    int
	logFile    string
	configPath string
	project    *project.Project
}

func main() {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:           "jsxparse",
		Short:         "A JavaScript and JSX parser",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup()
		},
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&g.logFile, "log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "project file (default ./"+project.ConfigFile+")")

	rootCmd.AddCommand(newParseCmd(g))
	rootCmd.AddCommand(newTokensCmd(g))
	rootCmd.AddCommand(newFmtCmd(g))
	rootCmd.AddCommand(newCheckCmd(g))
	rootCmd.AddCommand(newWatchCmd(g))
	rootCmd.AddCommand(newLSPCmd(g))
	rootCmd.AddCommand(newGrammarCmd(g))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "jsxparse: %s\n", err)
		os.Exit(1)
	}
}

// setup loads the project file and configures logging. Flags override the
// log settings of the project file.
func (g *globals) setup() error {
	var err error
	if g.configPath != "" {
		g.project, err = project.LoadFile(g.configPath)
	} else {
		g.project, err = project.Load()
	}
	if err != nil {
		return err
	}

	verbosity := max(g.verbose, g.project.Log.Verbosity)
	var path *string
	switch {
	case g.logFile != "":
		path = &g.logFile
	case g.project.Log.File != "":
		path = &g.project.Log.File
	}
	commonlog.Configure(verbosity, path)

	if g.project.ConfigPath != "" {
		log.Debugf("using project file %s", g.project.ConfigPath)
	}
	return nil
}
