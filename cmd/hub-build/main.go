package main

/*
hub-build reads a YAML track-hub configuration and stages the hub directory
(hub.txt, genomes.txt, <genome>/trackDb.txt and the track data files) for a
genome-browser viewer. The run is one shot: it either completes and renames
the finished directory into place, or fails with a single message and
leaves nothing behind.
*/

import (
	"flag"
	"fmt"
	"os"

	"github.com/eboileau/trackhub-utils/hub"
	"github.com/eboileau/trackhub-utils/hubconfig"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
)

var (
	overwrite = flag.Bool("overwrite", false, "Replace the staging directory if it already exists")
	link      = flag.Bool("link", false, "Hard-link local track files into the staging directory instead of copying")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] config.yaml stagingDir\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	configPath, stagingDir := flag.Arg(0), flag.Arg(1)
	ctx := vcontext.Background()

	cfg, err := hubconfig.Load(ctx, configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	reg, err := hub.Build(cfg.Formats)
	if err != nil {
		log.Fatalf("%s: %v", configPath, err)
	}
	forest, err := hub.Resolve(reg, cfg.Groups)
	if err != nil {
		log.Fatalf("%s: %v", configPath, err)
	}
	opts := hub.EmitOpts{Overwrite: *overwrite, Link: *link}
	if err := hub.Emit(ctx, cfg.Descriptor(), reg, forest, stagingDir, opts); err != nil {
		log.Fatalf("staging %s: %v", stagingDir, err)
	}
}
