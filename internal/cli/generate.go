package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"abi2ts/grammar"
	"abi2ts/internal/abi"
	"abi2ts/internal/config"
	"abi2ts/internal/emitter"
	diag "abi2ts/internal/errors"
)

// run carries the settings of one invocation after flags and config have
// been merged.
type run struct {
	cfg     *config.Config
	emitter *emitter.Emitter
	warn    io.Writer
}

func runGenerate(cmd *cobra.Command, opts *RootOptions, inputs []string) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	r, err := prepare(cmd, opts)
	if err != nil {
		return fail(errOut, opts.ConfigPath, nil, err)
	}
	r.warn = errOut
	log.Infof("policy %s, writing to %s", r.emitter.Options().Policy, r.cfg.Out)

	if err := os.MkdirAll(r.cfg.Out, 0o755); err != nil {
		return fail(errOut, r.cfg.Out, nil, fmt.Errorf("failed to create output directory: %w", err))
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for _, path := range inputs {
		fmt.Fprintf(out, "Compiling %s... ", path)
		file, source, err := r.generate(path)
		if err != nil {
			fmt.Fprintln(out, red("FAILED"))
			return fail(errOut, path, source, err)
		}
		fmt.Fprintf(out, "%s see %s\n", green("OK!"), file)
	}

	capability := r.emitter.Options().Capability
	if capability.Local() {
		file := r.target(capability.FileStem())
		if err := r.write(file, r.emitter.EmitContractAbstraction()); err != nil {
			return fail(errOut, file, nil, err)
		}
		log.Infof("wrote %s", file)
	}

	fmt.Fprintf(out, "All done! (%s)\n", formatDuration(time.Since(startTime)))
	return nil
}

// prepare loads the config file and applies the flags set on the command
// line. An explicit --config must exist; the default one is optional.
func prepare(cmd *cobra.Command, opts *RootOptions) (*run, error) {
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadOptional(opts.ConfigPath)
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.Out = opts.Out
	}
	if flags.Changed("legacy") && opts.Legacy {
		cfg.Policy = emitter.PolicyLegacy.String()
	}
	if flags.Changed("selectors") {
		cfg.Selectors = opts.Selectors
	}
	if flags.Changed("verify") {
		cfg.Verify = opts.Verify
	}
	if cfg.Out == "" {
		cfg.Out = "."
	}

	emitOpts, err := cfg.EmitterOptions()
	if err != nil {
		return nil, &config.Error{Path: opts.ConfigPath, Key: "policy", Err: err}
	}
	return &run{cfg: cfg, emitter: emitter.New(emitOpts)}, nil
}

func (r *run) target(stem string) string {
	return filepath.Join(r.cfg.Out, stem+"."+r.cfg.Extension)
}

// generate decodes one input and writes its wrapper. The source is returned
// alongside errors so diagnostics can quote it.
func (r *run) generate(path string) (string, []byte, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	contract, err := abi.DecodeSource(path, source)
	if err != nil {
		return "", source, err
	}
	log.Debugf("%s: contract %s with %d entries", path, contract.Name, len(contract.ABI))

	text, err := r.emitter.Emit(contract)
	if err != nil {
		return "", source, err
	}
	if warnings := r.emitter.Warnings(source, contract); len(warnings) > 0 {
		reporter := diag.NewErrorReporter(path, string(source))
		for _, w := range warnings {
			fmt.Fprint(r.warn, reporter.FormatError(w))
		}
	}

	file := r.target(contract.Name)
	if err := r.write(file, text); err != nil {
		return "", source, err
	}
	return file, source, nil
}

// write stores text at file, checking it against the grammar first when
// verification is on.
func (r *run) write(file, text string) error {
	if r.cfg.Verify {
		if _, err := grammar.ParseString(filepath.Base(file), text); err != nil {
			return &VerifyError{File: file, Text: text, Err: err}
		}
		log.Debugf("verified %s", file)
	}
	if err := os.WriteFile(file, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
