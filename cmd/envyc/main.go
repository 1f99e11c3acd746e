package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.envy.dev/pkg/envy"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "envyc",
		Short: "Front-end driver for the envy language: lex, parse, and type-check source files",
	}

	root.AddCommand(newBuildCommand())
	return root
}

func newBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build <files...>",
		Short: "Run the full pipeline over one or more source files and report diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runBuild,
	}
}

// runBuild is a thin wiring demo, not a fully-fledged CLI: file reading and
// exit-status handling are the only parts of the excluded external-CLI
// collaborator this command takes on.
func runBuild(cmd *cobra.Command, args []string) error {
	inputs := make(map[string][]byte, len(args))
	for _, path := range args {
		bytes, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("envyc: reading %s: %w", path, err)
		}

		inputs[path] = bytes
	}

	session := envy.NewCompileSession()

	results, err := session.CompileAll(inputs)
	if err != nil {
		return fmt.Errorf("envyc: %w", err)
	}

	for _, result := range results {
		if rendered := session.RenderAll(result); rendered != "" {
			fmt.Fprint(cmd.OutOrStdout(), rendered)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), envy.Summary(results))

	if code := envy.ExitCode(results); code != 0 {
		os.Exit(code)
	}

	return nil
}
