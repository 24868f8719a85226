// Package parser turns free-form notification bodies into raw transaction
// fields. Each bank template is a Parser; the pipeline picks one by name so
// new templates can be added without touching the aggregation code.
package parser

import (
	"fmt"
	"sort"
)

// RawFields are the substrings captured from a notification body before
// normalization.
type RawFields struct {
	Amount   string
	Merchant string
}

// Parser extracts raw transaction fields from a message body. It is a pure
// function: a body that does not contain the expected phrase returns
// ok=false, which the pipeline treats as a skip, never as an error. When the
// phrase appears more than once only the first occurrence is used.
type Parser interface {
	// Name identifies the parser for configuration and logs.
	Name() string
	Parse(body string) (RawFields, bool)
}

var registry = map[string]Parser{}

// Register makes a parser selectable by name. Called from package init.
func Register(p Parser) {
	registry[p.Name()] = p
}

// Lookup returns the parser registered under name.
func Lookup(name string) (Parser, error) {
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown parser %q (available: %v)", name, Names())
	}
	return p, nil
}

// Names lists the registered parser names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
