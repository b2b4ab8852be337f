package converter

import (
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/hts/bam"
)

// ChromSize is one reference sequence and its length, as required by the
// UCSC chrom.sizes convention.
type ChromSize struct {
	Name string
	Size int
}

// ChromSizesFromBAM reads the reference dictionary of a BAM header and
// returns it in header order. This replaces fetchChromSizes when the hub's
// tracks are derived from aligned data: the BAM header is authoritative for
// the assembly the alignments used.
func ChromSizesFromBAM(ctx context.Context, path string) ([]ChromSize, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer in.Close(ctx) // nolint: errcheck
	r, err := bam.NewReader(in.Reader(ctx), 1)
	if err != nil {
		return nil, err
	}
	defer r.Close() // nolint: errcheck
	refs := r.Header().Refs()
	sizes := make([]ChromSize, 0, len(refs))
	for _, ref := range refs {
		sizes = append(sizes, ChromSize{Name: ref.Name(), Size: ref.Len()})
	}
	return sizes, nil
}

// WriteChromSizes writes sizes in the two-column tab-separated chrom.sizes
// format, preserving the given order.
func WriteChromSizes(w io.Writer, sizes []ChromSize) error {
	for _, s := range sizes {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", s.Name, s.Size); err != nil {
			return err
		}
	}
	return nil
}
