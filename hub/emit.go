package hub

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
)

// Filenames of the hub descriptors, fixed by the genome-browser contract.
const (
	HubFile      = "hub.txt"
	GenomesFile  = "genomes.txt"
	TrackDbFile  = "trackDb.txt"
	ManifestFile = "manifest.txt"
)

// EmitOpts controls staging behavior.
type EmitOpts struct {
	// Overwrite replaces an existing staging directory.
	Overwrite bool
	// Link hard-links local backing files into the staging directory
	// instead of copying. Non-local sources are always copied.
	Link bool
}

// manifestEntry records one data file to be placed into the hub directory.
type manifestEntry struct {
	dest   string // staging-relative, e.g. "hg38/track1.bb"
	source string // as declared in the configuration
}

// Emit stages the hub into stagingDir: hub.txt, genomes.txt,
// <genome>/trackDb.txt, a manifest of staged data files, and the backing
// file of every track copied (or linked) next to the trackDb.
//
// All descriptor content is rendered and every backing file is verified
// before anything is written; the output is then assembled in a temporary
// directory and renamed into place, so a failing run leaves no partial
// staging directory. Emission is deterministic: identical input and an
// unchanged filesystem produce byte-identical output.
func Emit(ctx context.Context, desc Descriptor, reg *Registry, forest *Forest, stagingDir string, opts EmitOpts) error {
	hubTxt := renderHub(desc)
	genomesTxt := renderGenomes(desc)
	trackDbTxt := renderTrackDb(reg, forest)

	// Backing files must all exist before any output is produced. This is
	// the single point of filesystem validation.
	entries := make([]manifestEntry, 0, reg.Len())
	for _, t := range reg.Tracks() {
		if _, err := file.Stat(ctx, t.Path); err != nil {
			return &MissingFileError{Track: t.Name, Path: t.Path}
		}
		entries = append(entries, manifestEntry{
			dest:   desc.Genome + "/" + filepath.Base(t.Path),
			source: t.Path,
		})
	}

	if _, err := os.Stat(stagingDir); err == nil {
		if !opts.Overwrite {
			return fmt.Errorf("staging directory already exists: %s", stagingDir)
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	parent := filepath.Dir(stagingDir)
	tmpDir, err := os.MkdirTemp(parent, "."+filepath.Base(stagingDir)+"-staging")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir) // no-op after a successful rename

	var manifest strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&manifest, "%s\t%s\n", e.dest, e.source)
	}
	files := map[string]string{
		HubFile:      hubTxt,
		GenomesFile:  genomesTxt,
		ManifestFile: manifest.String(),
		desc.Genome + "/" + TrackDbFile: trackDbTxt,
	}
	if err := os.Mkdir(filepath.Join(tmpDir, desc.Genome), 0777); err != nil {
		return err
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, filepath.FromSlash(name)), []byte(content), 0666); err != nil {
			return err
		}
	}
	for _, e := range entries {
		if err := stageData(ctx, e.source, filepath.Join(tmpDir, filepath.FromSlash(e.dest)), opts.Link); err != nil {
			return err
		}
	}

	if opts.Overwrite {
		if err := os.RemoveAll(stagingDir); err != nil {
			return err
		}
	}
	if err := os.Rename(tmpDir, stagingDir); err != nil {
		return err
	}
	log.Printf("staged hub %q (%d tracks, %d superTracks) in %s",
		desc.Hub, reg.Len(), forest.Len(), stagingDir)
	return nil
}

// stageData places one backing file into the staging tree. Hard-linking is
// attempted only for scheme-less (local) sources and falls back to a copy.
func stageData(ctx context.Context, src, dst string, link bool) error {
	if link && !strings.Contains(src, "://") {
		if err := os.Link(src, dst); err == nil {
			return nil
		}
	}
	in, err := file.Open(ctx, src)
	if err != nil {
		return err
	}
	defer in.Close(ctx) // nolint: errcheck
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in.Reader(ctx)); err != nil {
		out.Close() // nolint: errcheck
		return err
	}
	return out.Close()
}

func renderHub(desc Descriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "hub %s\n", desc.Hub)
	fmt.Fprintf(&b, "shortLabel %s\n", desc.ShortLabel)
	fmt.Fprintf(&b, "longLabel %s\n", desc.LongLabel)
	fmt.Fprintf(&b, "genomesFile %s\n", GenomesFile)
	fmt.Fprintf(&b, "email %s\n", desc.Email)
	return b.String()
}

func renderGenomes(desc Descriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "genome %s\n", desc.Genome)
	fmt.Fprintf(&b, "trackDb %s/%s\n", desc.Genome, TrackDbFile)
	return b.String()
}

// renderTrackDb writes one stanza per container and track, blank-line
// separated. Containers come first, each followed by its children, then
// the remaining root tracks in registry order.
func renderTrackDb(reg *Registry, forest *Forest) string {
	var stanzas []string
	for _, c := range forest.Containers() {
		stanzas = append(stanzas, renderContainerStanza(c))
		for _, child := range c.Children {
			t, _ := reg.Lookup(child)
			stanzas = append(stanzas, renderTrackStanza(t))
		}
	}
	for _, t := range reg.Tracks() {
		if t.Parent() == "" {
			stanzas = append(stanzas, renderTrackStanza(t))
		}
	}
	return strings.Join(stanzas, "\n")
}

func renderContainerStanza(c *Container) string {
	var b strings.Builder
	fmt.Fprintf(&b, "track %s\n", c.Name)
	b.WriteString("superTrack on\n")
	c.Settings.Each(func(k, v string) {
		fmt.Fprintf(&b, "%s %s\n", k, v)
	})
	return b.String()
}

// renderTrackStanza emits the merged settings in insertion order; they are
// never re-sorted. The trackType setting becomes the stanza's "type" line,
// keeping its merged position.
func renderTrackStanza(t *Track) string {
	var b strings.Builder
	fmt.Fprintf(&b, "track %s\n", t.Name)
	if p := t.Parent(); p != "" {
		fmt.Fprintf(&b, "parent %s\n", p)
	}
	fmt.Fprintf(&b, "bigDataUrl %s\n", filepath.Base(t.Path))
	t.Settings.Each(func(k, v string) {
		if k == TrackType {
			k = "type"
		}
		fmt.Fprintf(&b, "%s %s\n", k, v)
	})
	return b.String()
}
