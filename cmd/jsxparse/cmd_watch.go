package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dhamidi/jsxparse/javascript/codebase"
	"github.com/dhamidi/jsxparse/project"

	"github.com/spf13/cobra"
)

func newWatchCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Parse a directory and reparse files as they change",
		Long: `Parse every source file under a directory, print its problems, then
watch the directory and print the problems of each file that changes.
Runs until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj := g.project
			if len(args) == 1 {
				p, err := project.LoadFrom(args[0])
				if err != nil {
					return err
				}
				proj = p
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cb := codebase.New(proj)
			if err := cb.ScanAll(ctx); err != nil {
				return err
			}
			for _, path := range cb.Paths() {
				printDiagnostics(path, cb.GetFile(path))
			}

			w, err := codebase.NewFileWatcher(cb)
			if err != nil {
				return err
			}
			w.OnChange = printDiagnostics
			if err := w.Start(); err != nil {
				return fmt.Errorf("watch %s: %w", proj.RootDir, err)
			}
			fmt.Printf("watching %s (%d files)\n", proj.RootDir, len(cb.Paths()))

			<-ctx.Done()
			if err := w.Stop(); err != nil {
				return fmt.Errorf("stop watcher: %w", err)
			}
			return nil
		},
	}
}

func printDiagnostics(path string, info *codebase.FileInfo) {
	if info == nil {
		fmt.Printf("%s: removed\n", path)
		return
	}
	if !info.HasErrors() {
		fmt.Printf("%s: ok\n", path)
		return
	}
	for _, e := range info.Errors {
		fmt.Println(e.Error())
	}
}
