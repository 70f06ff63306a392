// Package facts holds the trivia catalog and the README line patcher used by the fact rotator.
package facts

import (
	"bufio"
	"bytes"
	_ "embed"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/pkg/errors"
)

//go:embed facts.txt
var builtin []byte

// ErrEmptyCatalog is returned when a catalog would have no entries.
var ErrEmptyCatalog = errors.New("fact catalog is empty")

// Catalog is an immutable list of facts.
type Catalog struct {
	entries []string
}

// NewCatalog copies entries into a new catalog.
func NewCatalog(entries []string) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{entries: make([]string, len(entries))}
	copy(c.entries, entries)
	return c, nil
}

// Default returns the built-in computer science catalog.
func Default() *Catalog {
	c, err := Parse(builtin)
	if err != nil {
		panic(errors.Wrap(err, "built-in fact catalog is invalid"))
	}
	return c
}

// Parse reads one fact per line. Blank lines and lines starting with # are skipped.
func Parse(data []byte) (*Catalog, error) {
	var entries []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan fact catalog")
	}
	return NewCatalog(entries)
}

// Load reads a catalog file from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read fact catalog: %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid fact catalog: %s", path)
	}
	return c, nil
}

// Len reports the number of facts.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the facts.
func (c *Catalog) Entries() []string {
	out := make([]string, len(c.entries))
	copy(out, c.entries)
	return out
}

// Pick selects one fact uniformly at random.
func (c *Catalog) Pick(r *rand.Rand) string {
	return c.entries[r.IntN(len(c.entries))]
}
