package main

/*
hub-bed2bigbed converts BED (optionally gzipped) files to bigBed by calling
the external bedToBigBed binary, which must be on PATH. Outputs land in the
-out directory as <input basename>.bb.
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
	asFile     = flag.String("as", "", "AutoSql field description passed to bedToBigBed -as=")
	defaultAs  = flag.Bool("default-as", false, "Generate and use the default BED12 AutoSql description")
	bedType    = flag.String("bed-type", "", "Value for bedToBigBed -type=, e.g. bed6+3; requires -as or -default-as")
	extraIndex = flag.String("extra-index", "name", "Comma-separated fields for bedToBigBed -extraIndex=; requires -as or -default-as")
	overwrite  = flag.Bool("overwrite", false, "Overwrite existing output files")
	keep       = flag.Bool("keep", false, "Keep intermediate (decompressed) files")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s -chrom-sizes chrom.sizes [flags] file.bed[.gz]...\n", os.Args[0])
	flag.PrintDefaults()
}

// outputName maps track.bed or track.bed.gz to track.bb.
func outputName(bedPath string) string {
	base := filepath.Base(bedPath)
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + ".bb"
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if *chromSizes == "" || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if err := converter.CheckTools(converter.BedToBigBedTool); err != nil {
		log.Fatalf("%v", err)
	}
	ctx := vcontext.Background()

	opts := converter.BigBedOpts{
		Opts:        converter.Opts{Overwrite: *overwrite, Keep: *keep},
		AutoSqlPath: *asFile,
	}
	if *defaultAs {
		if opts.AutoSqlPath != "" {
			log.Fatalf("-as and -default-as are mutually exclusive")
		}
		opts.AutoSqlPath = filepath.Join(*outDir, "SelectedFields.as")
		if err := converter.WriteAutoSql(opts.AutoSqlPath); err != nil {
			log.Fatalf("writing %s: %v", opts.AutoSqlPath, err)
		}
		opts.BedType = converter.DefaultBedType
	}
	if opts.AutoSqlPath != "" {
		if *bedType != "" {
			opts.BedType = *bedType
		}
		opts.ExtraIndex = *extraIndex
	}

	for _, bed := range flag.Args() {
		out := filepath.Join(*outDir, outputName(bed))
		if err := converter.BedToBigBed(ctx, bed, *chromSizes, out, opts); err != nil {
			log.Fatalf("%s: %v", bed, err)
		}
	}
}
