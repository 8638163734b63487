// Package mimetypes registers the content types served for the web app's
// file extensions.
package mimetypes

import (
	_ "embed"
	"fmt"
	"mime"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed types.yaml
var typesYAML []byte

// Table maps a file extension (with leading dot) to a content type.
type Table map[string]string

type document struct {
	Types Table `yaml:"types"`
}

// Default returns the embedded extension table.
func Default() (Table, error) {
	return Parse(typesYAML)
}

// Parse decodes a YAML document with a top-level "types" mapping.
func Parse(data []byte) (Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode mime types: %w", err)
	}
	for ext, typ := range doc.Types {
		if !strings.HasPrefix(ext, ".") {
			return nil, fmt.Errorf("extension %q must start with a dot", ext)
		}
		if _, _, err := mime.ParseMediaType(typ); err != nil {
			return nil, fmt.Errorf("extension %s: %w", ext, err)
		}
	}
	return doc.Types, nil
}

// Register adds every entry of t to the process MIME table, overriding
// whatever the system table says for those extensions.
func (t Table) Register() error {
	for _, ext := range t.Extensions() {
		if err := mime.AddExtensionType(ext, t[ext]); err != nil {
			return fmt.Errorf("register %s: %w", ext, err)
		}
	}
	return nil
}

// Extensions returns the table's extensions in sorted order.
func (t Table) Extensions() []string {
	exts := make([]string, 0, len(t))
	for ext := range t {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// RegisterDefault decodes the embedded table and registers it.
func RegisterDefault() error {
	t, err := Default()
	if err != nil {
		return err
	}
	return t.Register()
}
