package hub

// Settings is an insertion-ordered collection of trackDb key/value pairs.
// The genome browser renders stanza lines in file order, so the order of
// keys is part of the output contract: two runs over the same configuration
// must serialize settings identically.
type Settings struct {
	keys   []string
	values map[string]string
}

// NewSettings returns an empty Settings.
func NewSettings() *Settings {
	return &Settings{values: map[string]string{}}
}

// Set inserts or updates a key. A key keeps the position it was first
// inserted at; updating the value does not move it.
func (s *Settings) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value for key, and whether the key is present.
func (s *Settings) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key is present.
func (s *Settings) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Len returns the number of keys.
func (s *Settings) Len() int { return len(s.keys) }

// Keys returns the keys in insertion order.
func (s *Settings) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Each calls fn for every key/value pair in insertion order.
func (s *Settings) Each(fn func(key, value string)) {
	for _, k := range s.keys {
		fn(k, s.values[k])
	}
}

// Clone returns an independent copy.
func (s *Settings) Clone() *Settings {
	c := &Settings{
		keys:   make([]string, len(s.keys)),
		values: make(map[string]string, len(s.values)),
	}
	copy(c.keys, s.keys)
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}

// Overlay returns the key-by-key union of base and over, with values from
// over winning on conflicting keys. Keys from base keep their original
// positions; keys that appear only in over are appended in over's order.
// Either argument may be nil.
func Overlay(base, over *Settings) *Settings {
	merged := NewSettings()
	if base != nil {
		base.Each(merged.Set)
	}
	if over != nil {
		over.Each(merged.Set)
	}
	return merged
}
