// File: internal/service/naming.go
package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"
)

var namePattern = regexp.MustCompile(`^[a-z-]+$`)

// MatchMode selects how a candidate is compared against existing bucket names
type MatchMode string

const (
	// Rejects a candidate that shares a fragment with any existing name
	MatchSubstring MatchMode = "substring"
	MatchExact     MatchMode = "exact"
)

// NameGenerator builds bucket names with a six digit random suffix
type NameGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// A nil source seeds from the runtime's random state
func NewNameGenerator(src rand.Source) *NameGenerator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &NameGenerator{rng: rand.New(src)}
}

// The result is not checked against the registry
func (g *NameGenerator) Generate(first, last string) string {
	g.mu.Lock()
	suffix := g.rng.IntN(1_000_000)
	g.mu.Unlock()
	return fmt.Sprintf("%s%s-%06d", first, last, suffix)
}

// Checks the candidate's shape, then compares it against a fresh registry read.
// A failed registry read fails closed.
func (s *StorageService) ValidateName(ctx context.Context, candidate string) error {
	s.logger.Debug("Validating bucket name", "candidate", candidate, "match", s.match)

	if !namePattern.MatchString(candidate) {
		return &ValidationError{Name: candidate, Err: ErrInvalidName}
	}

	existing, err := s.ListBucketNames(ctx)
	if err != nil {
		return err
	}

	for _, name := range existing {
		if nameConflicts(s.match, candidate, name) {
			s.logger.Debug("Bucket name conflicts with existing bucket", "candidate", candidate, "existing", name)
			return &ValidationError{Name: candidate, Err: ErrNameTaken}
		}
	}
	return nil
}

func (s *StorageService) GenerateBucketName(first, last string) string {
	return s.names.Generate(first, last)
}

func nameConflicts(mode MatchMode, candidate, existing string) bool {
	if mode == MatchExact {
		return candidate == existing
	}
	return strings.Contains(existing, candidate) || strings.Contains(candidate, existing)
}
