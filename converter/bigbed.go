package converter

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"v.io/x/lib/vlog"
)

// BedToBigBedTool is the external indexer binary.
const BedToBigBedTool = "bedToBigBed"

// BigBedOpts configures a bedToBigBed invocation.
type BigBedOpts struct {
	Opts
	// AutoSqlPath is passed as -as=; it describes the BED fields. Empty
	// means the indexer's default BED interpretation.
	AutoSqlPath string
	// BedType is passed as -type= (e.g. "bed12" or "bed6+3"). Only
	// meaningful together with AutoSqlPath.
	BedType string
	// ExtraIndex is passed as -extraIndex= (comma-separated field names).
	ExtraIndex string
}

// BedToBigBed converts one BED file to bigBed. Gzipped inputs are
// decompressed to a temporary file first (the indexer reads plain text
// only); the temporary file is removed afterwards unless opts.Keep is set.
// An existing output is left alone unless opts.Overwrite is set.
func BedToBigBed(ctx context.Context, bedPath, chromSizes, outPath string, opts BigBedOpts) error {
	if opts.skipExisting(outPath) {
		return nil
	}
	inputs := []string{bedPath, chromSizes}
	if opts.AutoSqlPath != "" {
		inputs = append(inputs, opts.AutoSqlPath)
	}
	if err := checkInputs(inputs...); err != nil {
		return err
	}
	bedPath, cleanup, err := maybeDecompress(bedPath, opts.Opts)
	if err != nil {
		return err
	}
	defer cleanup()

	var args []string
	if opts.AutoSqlPath != "" {
		args = append(args, "-as="+opts.AutoSqlPath)
		if opts.BedType != "" {
			args = append(args, "-type="+opts.BedType)
		}
		if opts.ExtraIndex != "" {
			args = append(args, "-extraIndex="+opts.ExtraIndex)
		}
	}
	args = append(args, bedPath, chromSizes, outPath)
	return opts.run(ctx, BedToBigBedTool, args...)
}

// maybeDecompress stages a .gz input as a plain temporary file. The
// returned cleanup removes the staged file (honoring Keep) and is a no-op
// for inputs that needed no staging.
func maybeDecompress(path string, opts Opts) (string, func(), error) {
	if !strings.HasSuffix(path, ".gz") {
		return path, func() {}, nil
	}
	in, err := os.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer in.Close() // nolint: errcheck
	gz, err := gzip.NewReader(in)
	if err != nil {
		return "", nil, err
	}
	defer gz.Close() // nolint: errcheck

	base := strings.TrimSuffix(filepath.Base(path), ".gz")
	out, err := os.CreateTemp("", base+"-*")
	if err != nil {
		return "", nil, err
	}
	if _, err := io.Copy(out, gz); err != nil {
		out.Close()           // nolint: errcheck
		os.Remove(out.Name()) // nolint: errcheck
		return "", nil, err
	}
	if err := out.Close(); err != nil {
		return "", nil, err
	}
	staged := out.Name()
	vlog.Infof("decompressed %s to %s", path, staged)
	cleanup := func() {
		if opts.Keep {
			return
		}
		if err := os.Remove(staged); err != nil {
			vlog.Errorf("could not remove %s: %v", staged, err)
		}
	}
	return staged, cleanup, nil
}
