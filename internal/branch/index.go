// Package branch resolves free-text insurer branch addresses to canonical branch codes.
package branch

import (
	"fmt"
	"strings"

	"policyparser/internal/domain"
)

// MatchThreshold is the highest score still treated as a non-match.
const MatchThreshold = 15

// Entry is one row of the branch master.
type Entry struct {
	Insurer string
	Address string
	Code    string
}

type candidate struct {
	address string
	sorted  string
	code    string
}

// Index maps lower-cased insurer names to their branch candidates in master-file order.
// It is immutable after construction and safe for concurrent access.
type Index struct {
	buckets map[string][]candidate
	size    int
}

// NewIndex builds an Index from master entries. A repeated address for the same insurer keeps
// its first position and takes the later code.
func NewIndex(entries []Entry) *Index {
	idx := &Index{buckets: make(map[string][]candidate)}
	positions := make(map[string]map[string]int)
	for _, e := range entries {
		key := insurerKey(e.Insurer)
		if positions[key] == nil {
			positions[key] = make(map[string]int)
		}
		if pos, ok := positions[key][e.Address]; ok {
			idx.buckets[key][pos].code = e.Code
			continue
		}
		positions[key][e.Address] = len(idx.buckets[key])
		idx.buckets[key] = append(idx.buckets[key], candidate{
			address: e.Address,
			sorted:  sortTokens(e.Address),
			code:    e.Code,
		})
		idx.size++
	}
	return idx
}

// Len returns the number of distinct (insurer, address) candidates.
func (i *Index) Len() int {
	return i.size
}

// HasInsurer reports whether the master holds any branch for the insurer.
func (i *Index) HasInsurer(insurer string) bool {
	_, ok := i.buckets[insurerKey(insurer)]
	return ok
}

// Lookup returns the code of the candidate address most similar to branch.
// An empty branch returns "" without consulting the master. A best score at or below
// MatchThreshold returns "". Equal scores keep the earlier candidate.
// An insurer absent from the master returns domain.ErrUnknownInsurer.
func (i *Index) Lookup(insurer, branch string) (string, error) {
	if branch == "" {
		return "", nil
	}
	candidates, ok := i.buckets[insurerKey(insurer)]
	if !ok {
		return "", fmt.Errorf("branch.Index.Lookup %q: %w", insurer, domain.ErrUnknownInsurer)
	}

	query := sortTokens(branch)
	if query == "" {
		return "", nil
	}
	best, bestScore := -1, -1
	for n := range candidates {
		if candidates[n].sorted == "" {
			continue
		}
		if score := ratio(query, candidates[n].sorted); score > bestScore {
			best, bestScore = n, score
		}
	}
	if best < 0 || bestScore <= MatchThreshold {
		return "", nil
	}
	return candidates[best].code, nil
}

// Require returns domain.ErrUnknownInsurer naming the first insurer without a bucket.
func (i *Index) Require(insurers ...string) error {
	for _, name := range insurers {
		if !i.HasInsurer(name) {
			return fmt.Errorf("%w: %s", domain.ErrUnknownInsurer, name)
		}
	}
	return nil
}

func insurerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
