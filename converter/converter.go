// Package converter assembles and runs the command lines of the external
// genome-browser converters: bedToBigBed, bedGraphToBigWig (UCSC tools) and
// bamCoverage (deepTools). Index construction itself lives entirely in
// those binaries; this package only prepares inputs, builds argument lists
// and enforces the skip/overwrite conventions of the original pipeline.
package converter

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/grailbio/base/errors"
	"v.io/x/lib/vlog"
)

// Opts are the knobs shared by every wrapper.
type Opts struct {
	// Overwrite re-runs the conversion even when the output already exists.
	Overwrite bool
	// Keep retains intermediate files (e.g. decompressed inputs).
	Keep bool
	// Run executes an assembled command. Nil means exec.Cmd.Run; tests
	// substitute a recorder.
	Run func(ctx context.Context, cmd *exec.Cmd) error
}

// CheckTools verifies that every named external binary is callable,
// reporting all missing ones at once.
func CheckTools(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.E("programs not found on PATH:", strings.Join(missing, " "))
	}
	return nil
}

// run executes one external command, logging the full command line.
func (o Opts) run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	vlog.Infof("running: %s %s", name, strings.Join(args, " "))
	runner := o.Run
	if runner == nil {
		runner = func(_ context.Context, cmd *exec.Cmd) error { return cmd.Run() }
	}
	if err := runner(ctx, cmd); err != nil {
		return errors.E(err, "command failed:", name)
	}
	return nil
}

// checkInputs fails when any input path is absent, naming all absent ones.
func checkInputs(paths ...string) error {
	var missing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return errors.E("input file(s) not found:", strings.Join(missing, " "))
	}
	return nil
}

// skipExisting reports whether outPath already exists and the conversion
// should therefore be skipped.
func (o Opts) skipExisting(outPath string) bool {
	if o.Overwrite {
		return false
	}
	if _, err := os.Stat(outPath); err != nil {
		return false
	}
	vlog.Infof("output %s already exists, skipping", outPath)
	return true
}
