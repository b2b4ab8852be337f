package main

/*
hub-bam2bigwig computes bigWig coverage tracks from coordinate-sorted,
indexed BAM files by calling the external bamCoverage binary (deepTools).
Outputs land in the -out directory as <input basename>.bw. It can also
derive a chrom.sizes file from the first BAM's header, for use with the
other converters.
*/

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eboileau/trackhub-utils/converter"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
)

// dtOptions collects repeated -dt-option flags, passed through verbatim to
// bamCoverage (e.g. -dt-option=--binSize -dt-option=10).
type dtOptions []string

func (o *dtOptions) String() string { return strings.Join(*o, " ") }

func (o *dtOptions) Set(v string) error {
	*o = append(*o, v)
	return nil
}

var (
	outDir     = flag.String("out", ".", "Output directory")
	sizesOut   = flag.String("emit-chrom-sizes", "", "Also write a chrom.sizes file derived from the first BAM header to this path")
	overwrite  = flag.Bool("overwrite", false, "Overwrite existing output files")
	extraFlags dtOptions
)

func init() {
	flag.Var(&extraFlags, "dt-option", "Extra argument passed through to bamCoverage; repeatable")
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] file.bam...\n", os.Args[0])
	flag.PrintDefaults()
}

func outputName(bamPath string) string {
	base := filepath.Base(bamPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".bw"
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if err := converter.CheckTools(converter.BamCoverageTool); err != nil {
		log.Fatalf("%v", err)
	}
	ctx := vcontext.Background()

	if *sizesOut != "" {
		sizes, err := converter.ChromSizesFromBAM(ctx, flag.Arg(0))
		if err != nil {
			log.Fatalf("reading header of %s: %v", flag.Arg(0), err)
		}
		out, err := os.Create(*sizesOut)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if err := converter.WriteChromSizes(out, sizes); err != nil {
			log.Fatalf("writing %s: %v", *sizesOut, err)
		}
		if err := out.Close(); err != nil {
			log.Fatalf("writing %s: %v", *sizesOut, err)
		}
	}

	opts := converter.BamCoverageOpts{
		Opts:      converter.Opts{Overwrite: *overwrite},
		ExtraArgs: extraFlags,
	}
	for _, bam := range flag.Args() {
		out := filepath.Join(*outDir, outputName(bam))
		if err := converter.BamCoverage(ctx, bam, out, opts); err != nil {
			log.Fatalf("%s: %v", bam, err)
		}
	}
}
