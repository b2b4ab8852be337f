package hub

import "fmt"

// DuplicateNameError reports a track or container name that is already
// taken. Track names are unique across all formats, and container names
// share the same namespace.
type DuplicateNameError struct {
	Name string
	// First and Second describe where the name was seen, e.g. "bigBedFiles"
	// and "bigWigFiles", or "superTracks".
	First  string
	Second string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate name %q: declared in both %s and %s", e.Name, e.First, e.Second)
}

// MissingRequiredSettingError reports a format-mandated setting that is
// present in neither the format's global settings nor the track's own
// settings.
type MissingRequiredSettingError struct {
	Track   string
	Setting string
}

func (e *MissingRequiredSettingError) Error() string {
	return fmt.Sprintf("track %q: required setting %q not found in global or per-file settings", e.Track, e.Setting)
}

// UnknownMemberError reports a grouping member that does not resolve to a
// declared track.
type UnknownMemberError struct {
	Container string
	Member    string
}

func (e *UnknownMemberError) Error() string {
	return fmt.Sprintf("superTrack %q: member %q is not a declared track", e.Container, e.Member)
}

// DoubleAssignmentError reports a track claimed by more than one grouping.
// A track has at most one parent container.
type DoubleAssignmentError struct {
	Track  string
	First  string
	Second string
}

func (e *DoubleAssignmentError) Error() string {
	return fmt.Sprintf("track %q: listed under both superTrack %q and %q", e.Track, e.First, e.Second)
}

// MissingFileError reports a backing file that is absent at emission time.
type MissingFileError struct {
	Track string
	Path  string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("track %q: backing file not found: %s", e.Track, e.Path)
}
