// Package hub builds a UCSC track hub from a declarative description of
// bigBed- and bigWig-backed tracks: it constructs a registry of tracks with
// merged settings, resolves superTrack groupings into a forest, and stages
// the hub directory (hub.txt, genomes.txt, <genome>/trackDb.txt plus data
// files) atomically.
package hub

// Format identifies the backing file format of a track.
type Format int

const (
	// BigBed is an indexed feature track (.bb).
	BigBed Format = iota
	// BigWig is an indexed signal track (.bw).
	BigWig
)

func (f Format) String() string {
	switch f {
	case BigBed:
		return "bigBed"
	case BigWig:
		return "bigWig"
	}
	return "unknown"
}

// FilesKey returns the configuration key declaring file paths for this
// format, e.g. "bigBedFiles".
func (f Format) FilesKey() string { return f.String() + "Files" }

// TrackType is the one setting every file-backed track must carry, either
// globally for its format or as a per-file override. It becomes the "type"
// line of the trackDb stanza.
const TrackType = "trackType"

// Descriptor is the hub identity, created once from the loaded
// configuration and immutable afterwards.
type Descriptor struct {
	Hub        string
	ShortLabel string
	LongLabel  string
	Genome     string
	Email      string
}

// Track is one file-backed visual track.
type Track struct {
	Name     string
	Format   Format
	Path     string
	Settings *Settings

	// parent is the owning container name, set during grouping resolution.
	// Empty for root tracks.
	parent string
}

// Parent returns the name of the owning container, or "" for a root track.
func (t *Track) Parent() string { return t.parent }

// Container is a named grouping node with no backing file. Children are
// track names in display order.
type Container struct {
	Name     string
	Children []string
	Settings *Settings
}
