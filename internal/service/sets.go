package service

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/turntable/internal/domain"
)

// maxSuggestions caps "did you mean" candidates
const maxSuggestions = 3

// SetService looks up configured frame sets
type SetService struct {
	sets   []domain.FrameSet
	logger *slog.Logger
}

// NewSetService creates a set service over the configured sets
func NewSetService(sets []domain.FrameSet, logger *slog.Logger) *SetService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "sets")
	return &SetService{sets: sets, logger: logger}
}

// Sets returns every configured set in config order
func (s *SetService) Sets() []domain.FrameSet {
	return s.sets
}

// Names returns the configured set names
func (s *SetService) Names() []string {
	names := make([]string, len(s.sets))
	for i, set := range s.sets {
		names[i] = set.Name
	}
	return names
}

// Find returns the set called name, ignoring case. The error wraps
// domain.ErrSetNotFound and lists close names when there are any.
func (s *SetService) Find(name string) (domain.FrameSet, error) {
	for _, set := range s.sets {
		if strings.EqualFold(set.Name, name) {
			return set, nil
		}
	}

	suggestions := s.Suggest(name)
	s.logger.Debug("frame set not found", "name", name, "suggestions", suggestions)
	if len(suggestions) > 0 {
		return domain.FrameSet{}, fmt.Errorf("%w: %q (did you mean %s?)",
			domain.ErrSetNotFound, name, strings.Join(suggestions, ", "))
	}
	return domain.FrameSet{}, fmt.Errorf("%w: %q", domain.ErrSetNotFound, name)
}

// Suggest returns configured names close to query, best first
func (s *SetService) Suggest(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	type ranked struct {
		name  string
		score int
	}
	var candidates []ranked

	// Subsequence matches rank ahead of typo matches
	for _, m := range fuzzy.RankFindFold(query, s.Names()) {
		candidates = append(candidates, ranked{name: m.Target, score: m.Distance})
	}

	for _, name := range s.Names() {
		if fuzzy.MatchFold(query, name) {
			continue
		}
		distance := fuzzy.LevenshteinDistance(query, strings.ToLower(name))
		if distance <= max(2, len(query)/3) {
			candidates = append(candidates, ranked{name: name, score: 100 + distance})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score < candidates[j].score
	})

	var names []string
	for _, c := range candidates {
		if len(names) == maxSuggestions {
			break
		}
		names = append(names, c.name)
	}
	return names
}
