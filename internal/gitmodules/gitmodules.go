// Package gitmodules parses the .gitmodules declaration file into an ordered
// list of module declarations. Only `[submodule "name"]` section headers and
// `url = <value>` lines are consumed; everything else (path, branch, unknown
// keys) is ignored so newer manifest keys do not break older binaries.
package gitmodules

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Declaration is a single named module and its remote source.
type Declaration struct {
	Name string
	URL  string
}

// Manifest is the parsed declaration file. Modules preserves the order in
// which section headers appear. Incomplete lists section names that were
// opened but never received a url line; they are excluded from Modules.
type Manifest struct {
	Modules    []Declaration
	Incomplete []string
}

// Empty reports whether the manifest declares no modules.
func (m *Manifest) Empty() bool {
	return len(m.Modules) == 0
}

var (
	sectionRe = regexp.MustCompile(`^\s*\[submodule\s+"([^"]+)"\]\s*$`)
	urlRe     = regexp.MustCompile(`^\s*url\s*=\s*(.+?)\s*$`)
)

// Parse reads manifest text into a Manifest.
//
// A url line that appears before any section header has no owning
// declaration and is dropped silently; the same applies to a second url line
// in a section that already has one (first wins). A section that ends without
// a url is recorded in Incomplete.
func Parse(data []byte) *Manifest {
	m := &Manifest{}

	var current string    // name of the open section, "" if none
	var currentURL string // url seen for the open section

	flush := func() {
		if current == "" {
			return
		}
		if currentURL == "" {
			m.Incomplete = append(m.Incomplete, current)
		} else {
			m.Modules = append(m.Modules, Declaration{Name: current, URL: currentURL})
		}
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()

		if match := sectionRe.FindStringSubmatch(line); match != nil {
			flush()
			current = match[1]
			currentURL = ""
			continue
		}

		if match := urlRe.FindStringSubmatch(line); match != nil {
			if current != "" && currentURL == "" {
				currentURL = strings.TrimSpace(match[1])
			}
			continue
		}
		// Anything else is ignored.
	}
	flush()

	return m
}

// Load reads and parses the manifest at path. A missing file is not an
// error: it means there is nothing to synchronize, and an empty manifest is
// returned. Any other read failure (permissions, I/O) is reported.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data), nil
}
