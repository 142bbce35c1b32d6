// Package organize computes new orderings and removal sets for a tab
// list. All functions operate on snapshots and return pure results; the
// caller issues the corresponding host mutations afterwards.
package organize

import (
	"math/rand"
	"net/url"
	"sort"
	"strings"

	"github.com/mv/tabctl/internal/domain"
)

// domainKey partitions tabs for grouping: baseDomain is the last two
// dot-separated labels of the hostname, subdomain the remaining leading
// labels joined by dots.
type domainKey struct {
	base string
	sub  string
}

func keyFor(rawURL string) (domainKey, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return domainKey{}, domain.NewValidationError("url", err.Error())
	}
	labels := strings.Split(u.Hostname(), ".")
	if len(labels) <= 2 {
		return domainKey{base: u.Hostname()}, nil
	}
	cut := len(labels) - 2
	return domainKey{
		base: strings.Join(labels[cut:], "."),
		sub:  strings.Join(labels[:cut], "."),
	}, nil
}

// GroupByDomain returns the input tabs reordered into domain buckets:
// buckets ascend by baseDomain, then by subdomain, and tabs within a
// bucket keep their original relative order. The result is always a
// permutation of the input. A tab whose URL does not parse fails the
// whole pass; silently dropping a tab from a reorder would lose it.
func GroupByDomain(tabs []domain.TabSnapshot) ([]domain.TabSnapshot, error) {
	keys := make([]domainKey, len(tabs))
	for i, t := range tabs {
		k, err := keyFor(t.URL)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}

	out := make([]domain.TabSnapshot, len(tabs))
	order := make([]int, len(tabs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ka, kb := keys[order[a]], keys[order[b]]
		if ka.base != kb.base {
			return ka.base < kb.base
		}
		return ka.sub < kb.sub
	})
	for i, idx := range order {
		out[i] = tabs[idx]
	}
	return out, nil
}

// FindDuplicates returns the set of tab IDs to close so that each URL
// survives exactly once. URL equality is case-insensitive. The
// first-seen tab for a URL is kept, except when the active tab is a
// later duplicate: then the earlier twin is closed instead and the
// active tab becomes the kept representative. The active tab is never
// in the returned set.
func FindDuplicates(tabs []domain.TabSnapshot, activeID domain.TabID) map[domain.TabID]bool {
	remove := make(map[domain.TabID]bool)
	kept := make(map[string]domain.TabID)

	for _, t := range tabs {
		norm := strings.ToLower(t.URL)
		prev, seen := kept[norm]
		if !seen {
			kept[norm] = t.ID
			continue
		}
		if t.ID == activeID {
			remove[prev] = true
			kept[norm] = t.ID
			continue
		}
		remove[t.ID] = true
	}
	return remove
}

// Shuffle returns a uniform random permutation of tabs (Fisher-Yates).
// The input is not mutated.
func Shuffle(tabs []domain.TabSnapshot) []domain.TabSnapshot {
	out := make([]domain.TabSnapshot, len(tabs))
	copy(out, tabs)
	for i := len(out) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// SelectedOrActive is the uniform fallback rule for every "selected
// tabs" operation: the highlighted set when more than one tab is
// highlighted, otherwise just the active tab.
func SelectedOrActive(highlighted []domain.TabSnapshot, active domain.TabSnapshot) []domain.TabSnapshot {
	if len(highlighted) > 1 {
		return highlighted
	}
	return []domain.TabSnapshot{active}
}
