// Package cli implements the abi2ts command line.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"github.com/tliron/commonlog/simple"

	"abi2ts/internal/config"
)

// RootOptions holds the command line flags. Flags that were not set on the
// command line leave the config file value in place.
type RootOptions struct {
	ConfigPath string
	Out        string
	Legacy     bool
	Selectors  bool
	Verify     bool
	Verbose    int
}

var log = commonlog.GetLogger("abi2ts.cli")

// NewRootCommand creates the abi2ts command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "abi2ts [flags] <abi.json>...",
		Short: "Generate TypeScript contract wrappers from ABI files",
		Long: `Generate a typed TypeScript wrapper class for every contract ABI given.

Each input is a compiler artifact with "contractName" and "abi" members, or a
bare ABI array named after its file. Wrappers are written to the output
directory as <ContractName>.ts together with the AbstractContract interface
they delegate to. The first input that fails stops the run.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(opts.Verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", config.DefaultPath, "config file")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output directory (default \".\")")
	cmd.Flags().BoolVar(&opts.Legacy, "legacy", false, "use the legacy methods/call/send wrapper bodies")
	cmd.Flags().BoolVar(&opts.Selectors, "selectors", false, "document each method with its signature and selector")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "parse generated files before writing them")
	cmd.Flags().CountVarP(&opts.Verbose, "verbose", "v", "verbose logging (repeat for more)")

	return cmd
}

// configureLogging installs an unbuffered simple backend so log lines are
// not lost when the process exits with an error.
func configureLogging(verbosity int) {
	backend := simple.NewBackend()
	backend.Buffered = false
	backend.Configure(verbosity, nil)
	commonlog.SetBackend(backend)
}
