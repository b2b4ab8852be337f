package converter

import (
	"context"
	"strings"

	"github.com/grailbio/base/errors"
)

// External signal-track tools.
const (
	BedGraphToBigWigTool = "bedGraphToBigWig"
	BamCoverageTool      = "bamCoverage"
)

// BedGraphToBigWig converts a (sorted) bedGraph file to bigWig. Gzipped
// inputs are decompressed first, as for BedToBigBed.
func BedGraphToBigWig(ctx context.Context, bedGraphPath, chromSizes, outPath string, opts Opts) error {
	if opts.skipExisting(outPath) {
		return nil
	}
	if err := checkInputs(bedGraphPath, chromSizes); err != nil {
		return err
	}
	bedGraphPath, cleanup, err := maybeDecompress(bedGraphPath, opts)
	if err != nil {
		return err
	}
	defer cleanup()
	return opts.run(ctx, BedGraphToBigWigTool, bedGraphPath, chromSizes, outPath)
}

// BamCoverageOpts configures a bamCoverage invocation.
type BamCoverageOpts struct {
	Opts
	// ExtraArgs are appended verbatim to the command line, e.g.
	// "--binSize", "10". Argument validity is left to bamCoverage.
	ExtraArgs []string
}

// BamCoverage computes a bigWig coverage track from a coordinate-sorted,
// indexed BAM. The .bai companion must exist next to the BAM (bamCoverage
// refuses to run without it, so failing here gives the better message).
func BamCoverage(ctx context.Context, bamPath, outPath string, opts BamCoverageOpts) error {
	if opts.skipExisting(outPath) {
		return nil
	}
	if err := checkInputs(bamPath); err != nil {
		return err
	}
	if err := checkInputs(bamPath + ".bai"); err != nil {
		alt := strings.TrimSuffix(bamPath, ".bam") + ".bai"
		if alt == bamPath+".bai" || checkInputs(alt) != nil {
			return errors.E("BAM index not found for", bamPath, "(run samtools index first)")
		}
	}
	args := []string{"-b", bamPath, "-o", outPath, "-of", "bigwig", "--ignoreDuplicates"}
	args = append(args, opts.ExtraArgs...)
	return opts.run(ctx, BamCoverageTool, args...)
}
