package hub

// FileEntry is one name→path declaration from a <format>Files section.
type FileEntry struct {
	Name string
	Path string
}

// FormatFiles carries everything declared for one file format: the file
// list in declaration order, the format-wide default settings, and the
// per-file overrides.
type FormatFiles struct {
	Format  Format
	Files   []FileEntry
	Global  *Settings
	PerFile map[string]*Settings
}

// requiredSettings lists settings a format mandates; a track whose merged
// settings lack one of these fails registry construction.
var requiredSettings = map[Format][]string{
	BigBed: {TrackType},
	BigWig: {TrackType},
}

// Registry is an immutable, insertion-ordered name→Track view over every
// declared track.
type Registry struct {
	names  []string
	tracks map[string]*Track
}

// Build constructs the registry from the per-format file declarations. Each
// track's settings are the format's global defaults overlaid key-by-key with
// that track's own overrides. Build does not touch the filesystem; backing
// paths are verified at emission time.
func Build(formats []FormatFiles) (*Registry, error) {
	reg := &Registry{tracks: map[string]*Track{}}
	declaredIn := map[string]string{}
	for _, ff := range formats {
		for _, entry := range ff.Files {
			if first, ok := declaredIn[entry.Name]; ok {
				return nil, &DuplicateNameError{Name: entry.Name, First: first, Second: ff.Format.FilesKey()}
			}
			declaredIn[entry.Name] = ff.Format.FilesKey()
			merged := Overlay(ff.Global, ff.PerFile[entry.Name])
			for _, setting := range requiredSettings[ff.Format] {
				if !merged.Has(setting) {
					return nil, &MissingRequiredSettingError{Track: entry.Name, Setting: setting}
				}
			}
			track := &Track{
				Name:     entry.Name,
				Format:   ff.Format,
				Path:     entry.Path,
				Settings: merged,
			}
			reg.names = append(reg.names, entry.Name)
			reg.tracks[entry.Name] = track
		}
	}
	return reg, nil
}

// Lookup returns the track with the given name.
func (r *Registry) Lookup(name string) (*Track, bool) {
	t, ok := r.tracks[name]
	return t, ok
}

// Names returns all track names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Tracks returns all tracks in declaration order.
func (r *Registry) Tracks() []*Track {
	tracks := make([]*Track, 0, len(r.names))
	for _, name := range r.names {
		tracks = append(tracks, r.tracks[name])
	}
	return tracks
}

// Len returns the number of tracks.
func (r *Registry) Len() int { return len(r.names) }
