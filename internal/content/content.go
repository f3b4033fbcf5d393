// Package content loads the rule and content tables shared by client and
// server, and computes the per-domain checksums compared at join time.
package content

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/palemoky/stellar-empires/internal/logger"
)

// Domain names as announced in checksum messages.
const (
	DomainTechs         = "Techs"
	DomainSpecies       = "Species"
	DomainSpecials      = "Specials"
	DomainBuildingTypes = "BuildingTypes"
)

var domainFiles = map[string]string{
	"techs":     DomainTechs,
	"species":   DomainSpecies,
	"specials":  DomainSpecials,
	"buildings": DomainBuildingTypes,
}

// Entry is one named item of a content table. Everything besides the name is
// kept as decoded so that any field change alters the checksum.
type Entry struct {
	Name   string         `yaml:"name"`
	Fields map[string]any `yaml:",inline"`
}

// Table is a content domain keyed by entry name.
type Table map[string]Entry

// Library holds every loaded content domain.
type Library struct {
	tables map[string]Table
}

// NewLibrary builds a library from already decoded tables.
func NewLibrary(tables map[string]Table) *Library {
	if tables == nil {
		tables = make(map[string]Table)
	}
	return &Library{tables: tables}
}

// Load reads every *.yaml file at the root of fsys. Known file names map to
// the standard domain names; other files use their stem as domain name.
func Load(fsys fs.FS) (*Library, error) {
	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	lib := NewLibrary(nil)
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		var entries []Entry
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}

		stem := strings.TrimSuffix(path.Base(file), path.Ext(file))
		domain, ok := domainFiles[stem]
		if !ok {
			domain = stem
		}
		table := make(Table, len(entries))
		for _, e := range entries {
			if e.Name == "" {
				return nil, fmt.Errorf("%s: entry without name", file)
			}
			if _, dup := table[e.Name]; dup {
				return nil, fmt.Errorf("%s: duplicate entry %q", file, e.Name)
			}
			table[e.Name] = e
		}
		lib.tables[domain] = table
		logger.LogDebug("content: loaded %d %s entries from %s", len(table), domain, file)
	}
	return lib, nil
}

// Domains returns the loaded domain names in sorted order.
func (l *Library) Domains() []string {
	names := make([]string, 0, len(l.tables))
	for name := range l.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Table returns the named domain.
func (l *Library) Table(domain string) (Table, bool) {
	t, ok := l.tables[domain]
	return t, ok
}

// Lookup finds an entry by domain and name.
func (l *Library) Lookup(domain, name string) (Entry, bool) {
	e, ok := l.tables[domain][name]
	return e, ok
}

// ComputeContentChecksums returns one digest per loaded domain.
func (l *Library) ComputeContentChecksums() map[string]uint32 {
	sums := make(map[string]uint32, len(l.tables))
	for domain, table := range l.tables {
		sum, err := table.Checksum()
		if err != nil {
			// an unencodable entry leaves the domain at zero, which never
			// matches a healthy peer
			logger.LogError("content: checksum of %s failed: %v", domain, err)
		}
		sums[domain] = sum
	}
	return sums
}

func canonical(e Entry) ([]byte, error) {
	if len(e.Fields) == 0 {
		return nil, nil
	}
	return json.Marshal(e.Fields)
}
