// Package commands implements the CLI commands for retarget.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/retarget/internal/adapters/config"
	"go.trai.ch/retarget/internal/app"
	"go.trai.ch/retarget/internal/build"
)

// CLI represents the command line interface for retarget.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Check(ctx context.Context, opts app.CheckOptions) error
	Watch(ctx context.Context, opts app.CheckOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "retarget",
		Short:         "Find the packages a project must reinstall after changing its target framework",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultFilename, "Path to the project file")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func checkOptions(cmd *cobra.Command) app.CheckOptions {
	configPath, _ := cmd.Flags().GetString("config")
	framework, _ := cmd.Flags().GetString("framework")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	noRecord, _ := cmd.Flags().GetBool("no-record")

	return app.CheckOptions{
		ConfigPath: configPath,
		Framework:  framework,
		JSON:       jsonOutput,
		NoRecord:   noRecord,
	}
}

func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("framework", "f", "", "Target framework to check against, overriding the project file")
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	cmd.Flags().Bool("no-record", false, "Do not record the report for later comparison")
}
