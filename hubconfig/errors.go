package hubconfig

import (
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// ParseError reports a syntactically malformed configuration document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed configuration: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigError reports a structurally invalid configuration: a missing
// required field, an unrecognized key, or a section of the wrong shape.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

func missingField(name string) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf("missing field: %s", name)}
}

// badShape reports a node whose kind does not match the expected section
// shape. Dynamic typing stops here; nothing downstream sees raw nodes.
func badShape(n *yaml.Node, msg string) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf("%s (line %d)", msg, n.Line)}
}
