// Package hubconfig loads the YAML configuration describing a track hub:
// hub identity, per-format file lists and settings, and superTrack
// groupings. The loader is a pure parse; it validates document shape and
// required fields, normalizes every scalar to a string, and preserves
// document order throughout so downstream serialization is byte-stable.
package hubconfig

import (
	"context"
	"fmt"
	"io"

	"github.com/eboileau/trackhub-utils/hub"
	"github.com/grailbio/base/file"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"
)

// Config is the typed form of the configuration document.
type Config struct {
	Hub        string
	ShortLabel string
	LongLabel  string
	Genome     string
	Email      string

	// Formats holds one entry per declared <format>Files section, in
	// document order of those sections.
	Formats []hub.FormatFiles

	// Groups holds the superTrack declarations in document order.
	Groups []hub.Group
}

// Descriptor returns the hub identity.
func (c *Config) Descriptor() hub.Descriptor {
	return hub.Descriptor{
		Hub:        c.Hub,
		ShortLabel: c.ShortLabel,
		LongLabel:  c.LongLabel,
		Genome:     c.Genome,
		Email:      c.Email,
	}
}

// Load reads and parses the configuration at path. The path may name any
// scheme the file package understands (e.g. s3://).
func Load(ctx context.Context, path string) (*Config, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer in.Close(ctx) // nolint: errcheck
	data, err := io.ReadAll(in.Reader(ctx))
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Parse parses and validates a configuration document.
func Parse(data []byte) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, missingField("hub")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, badShape(root, "top level must be a mapping")
	}

	cfg := &Config{}
	p := &parser{cfg: cfg, formats: map[hub.Format]*hub.FormatFiles{}}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if err := p.topLevel(key.Value, val); err != nil {
			return nil, err
		}
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parser accumulates sections while walking the top-level mapping. Format
// sections may appear in any order relative to each other, so file lists
// and settings are joined only in finish.
type parser struct {
	cfg         *Config
	formats     map[hub.Format]*hub.FormatFiles
	formatOrder []hub.Format

	groupMembers  []hub.Group
	groupSettings map[string]*hub.Settings
}

func (p *parser) topLevel(key string, val *yaml.Node) error {
	switch key {
	case "hub":
		return scalarInto(val, &p.cfg.Hub)
	case "shortLabel":
		return scalarInto(val, &p.cfg.ShortLabel)
	case "longLabel":
		return scalarInto(val, &p.cfg.LongLabel)
	case "genomesFile":
		return scalarInto(val, &p.cfg.Genome)
	case "email":
		return scalarInto(val, &p.cfg.Email)
	case "bigBedFiles":
		return p.fileList(hub.BigBed, val)
	case "bigWigFiles":
		return p.fileList(hub.BigWig, val)
	case "bigBedGlobalSettings":
		return p.globalSettings(hub.BigBed, val)
	case "bigWigGlobalSettings":
		return p.globalSettings(hub.BigWig, val)
	case "bigBedFileSettings":
		return p.fileSettings(hub.BigBed, val)
	case "bigWigFileSettings":
		return p.fileSettings(hub.BigWig, val)
	case "superTracks":
		return p.superTracks(val)
	case "superTrackSettings":
		return p.superTrackSettings(val)
	}
	return &ConfigError{Msg: fmt.Sprintf("unrecognized key: %q (line %d)", key, val.Line)}
}

// format returns the accumulating section for f, creating it on first use.
// Creation order follows the first mention of the format in the document.
func (p *parser) format(f hub.Format) *hub.FormatFiles {
	ff, ok := p.formats[f]
	if !ok {
		ff = &hub.FormatFiles{Format: f, PerFile: map[string]*hub.Settings{}}
		p.formats[f] = ff
		p.formatOrder = append(p.formatOrder, f)
	}
	return ff
}

func (p *parser) fileList(f hub.Format, val *yaml.Node) error {
	ff := p.format(f)
	return eachPair(val, func(name string, v *yaml.Node) error {
		path, err := scalar(v)
		if err != nil {
			return err
		}
		ff.Files = append(ff.Files, hub.FileEntry{Name: name, Path: path})
		return nil
	})
}

func (p *parser) globalSettings(f hub.Format, val *yaml.Node) error {
	s, err := settingsMap(val)
	if err != nil {
		return err
	}
	p.format(f).Global = s
	return nil
}

func (p *parser) fileSettings(f hub.Format, val *yaml.Node) error {
	ff := p.format(f)
	return eachPair(val, func(name string, v *yaml.Node) error {
		s, err := settingsMap(v)
		if err != nil {
			return err
		}
		ff.PerFile[name] = s
		return nil
	})
}

func (p *parser) superTracks(val *yaml.Node) error {
	return eachPair(val, func(name string, v *yaml.Node) error {
		if v.Kind != yaml.SequenceNode {
			return badShape(v, fmt.Sprintf("superTrack %q must list its members as a sequence", name))
		}
		g := hub.Group{Name: name}
		for _, item := range v.Content {
			member, err := scalar(item)
			if err != nil {
				return err
			}
			g.Members = append(g.Members, member)
		}
		p.groupMembers = append(p.groupMembers, g)
		return nil
	})
}

func (p *parser) superTrackSettings(val *yaml.Node) error {
	if p.groupSettings == nil {
		p.groupSettings = map[string]*hub.Settings{}
	}
	return eachPair(val, func(name string, v *yaml.Node) error {
		s, err := settingsMap(v)
		if err != nil {
			return err
		}
		p.groupSettings[name] = s
		return nil
	})
}

// finish validates required fields, applies label defaults, and assembles
// the ordered format and group slices.
func (p *parser) finish() error {
	for _, f := range []struct{ name, value string }{
		{"hub", p.cfg.Hub},
		{"genomesFile", p.cfg.Genome},
		{"email", p.cfg.Email},
	} {
		if f.value == "" {
			return missingField(f.name)
		}
	}
	if p.cfg.ShortLabel == "" {
		p.cfg.ShortLabel = p.cfg.Hub
	}
	if p.cfg.LongLabel == "" {
		p.cfg.LongLabel = p.cfg.ShortLabel
	}

	declared := false
	for _, f := range p.formatOrder {
		ff := p.formats[f]
		if len(ff.Files) == 0 {
			// Settings without a file list are inert; drop the section.
			continue
		}
		declared = true
		if ff.Global == nil {
			return missingField(f.String() + "GlobalSettings")
		}
		p.cfg.Formats = append(p.cfg.Formats, *ff)
	}
	if !declared {
		return &ConfigError{Msg: "no track files declared: expected at least one bigBedFiles or bigWigFiles section"}
	}

	for _, g := range p.groupMembers {
		g.Settings = p.groupSettings[g.Name]
		p.cfg.Groups = append(p.cfg.Groups, g)
	}
	return nil
}

// eachPair walks a mapping node in document order.
func eachPair(n *yaml.Node, fn func(key string, val *yaml.Node) error) error {
	if n.Kind != yaml.MappingNode {
		return badShape(n, "expected a mapping")
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// settingsMap reads a mapping of scalars into an ordered Settings.
func settingsMap(n *yaml.Node) (*hub.Settings, error) {
	s := hub.NewSettings()
	err := eachPair(n, func(key string, v *yaml.Node) error {
		value, err := scalar(v)
		if err != nil {
			return err
		}
		s.Set(key, value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// scalar returns the literal text of a scalar node. Booleans, numbers and
// color triplets all pass through verbatim; trackDb is untyped text.
func scalar(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", badShape(n, "expected a scalar value")
	}
	return n.Value, nil
}

func scalarInto(n *yaml.Node, dst *string) error {
	v, err := scalar(n)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
