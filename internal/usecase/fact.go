package usecase

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/naka-gawa/profile-stats/internal/facts"
	"github.com/naka-gawa/profile-stats/internal/gateway"
)

// Rotation reports what FactRotator.Rotate did to a document.
type Rotation struct {
	Path     string
	Fact     string
	Previous string
	Outcome  facts.Outcome
	Line     int
}

// FactRotator puts a random fact from its catalog into a text document.
type FactRotator struct {
	catalog *facts.Catalog
	patcher facts.Patcher
	fsys    gateway.Filesystem
	rand    *rand.Rand
	logger  *zap.Logger
}

// NewFactRotator creates a new FactRotator instance.
func NewFactRotator(catalog *facts.Catalog, patcher facts.Patcher, fsys gateway.Filesystem, r *rand.Rand, logger *zap.Logger) *FactRotator {
	return &FactRotator{
		catalog: catalog,
		patcher: patcher,
		fsys:    fsys,
		rand:    r,
		logger:  logger,
	}
}

// Rotate picks a fact and patches it into the document at path.
// The document is written back only when it was patched.
func (f *FactRotator) Rotate(path string) (*Rotation, error) {
	data, err := f.fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fact := f.catalog.Pick(f.rand)
	res := f.patcher.Patch(string(data), fact)
	rotation := &Rotation{
		Path:     path,
		Fact:     fact,
		Previous: res.Previous,
		Outcome:  res.Outcome,
		Line:     res.Line,
	}
	f.logger.Debug("usecase: patched document",
		zap.String("path", path),
		zap.Stringer("outcome", res.Outcome),
		zap.Int("line", res.Line))

	if res.Outcome == facts.Unchanged {
		return rotation, nil
	}
	if err := f.fsys.WriteFile(path, []byte(res.Content)); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", path, err)
	}
	return rotation, nil
}
