package main

/*
hub-bedgraph2bigwig converts sorted bedGraph (optionally gzipped) files to
bigWig by calling the external bedGraphToBigWig binary. Outputs land in the
-out directory as <input basename>.bw.
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

var (
	chromSizes = flag.String("chrom-sizes", "", "The chrom.sizes file for the target assembly (required)")
	outDir     = flag.String("out", ".", "Output directory")
	overwrite  = flag.Bool("overwrite", false, "Overwrite existing output files")
	keep       = flag.Bool("keep", false, "Keep intermediate (decompressed) files")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s -chrom-sizes chrom.sizes [flags] file.bedGraph[.gz]...\n", os.Args[0])
	flag.PrintDefaults()
}

func outputName(bgPath string) string {
	base := filepath.Base(bgPath)
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + ".bw"
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if *chromSizes == "" || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if err := converter.CheckTools(converter.BedGraphToBigWigTool); err != nil {
		log.Fatalf("%v", err)
	}
	ctx := vcontext.Background()
	opts := converter.Opts{Overwrite: *overwrite, Keep: *keep}

	for _, bg := range flag.Args() {
		out := filepath.Join(*outDir, outputName(bg))
		if err := converter.BedGraphToBigWig(ctx, bg, *chromSizes, out, opts); err != nil {
			log.Fatalf("%s: %v", bg, err)
		}
	}
}
