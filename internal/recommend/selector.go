package recommend

import (
	"strings"

	"github.com/listoria/listoria-server/internal/domain"
	"github.com/listoria/listoria-server/internal/similarity"
)

// selectBooks assembles the final book list from the scored pool: at most
// seven external and one curated item in score order, then backfill from
// the rest of the pool when the quota split leaves slots open. A last seed
// check runs here because the scored pool may still contain items that
// only conflict with a seed under containment.
func selectBooks(scored []domain.Candidate, seeds []string) []domain.Candidate {
	final := make([]domain.Candidate, 0, MaxResults)
	used := make(map[string]bool, MaxResults)
	external, curated := 0, 0

	for i := range scored {
		if len(final) >= MaxResults {
			break
		}
		c := scored[i]
		key := strings.TrimSpace(similarity.Fold(c.Title))
		if used[key] || conflictsWithSeed(&c, seeds) {
			continue
		}
		switch {
		case c.Origin == domain.OriginExternal && external < BookExternalQuota:
			final = append(final, c)
			used[key] = true
			external++
		case c.Origin == domain.OriginCurated && curated < BookCuratedQuota:
			final = append(final, c)
			used[key] = true
			curated++
		}
	}

	// Quota split can starve the list when one pool dominates. Fill the
	// remaining slots from the pool in score order regardless of origin.
	for i := range scored {
		if len(final) >= MaxResults {
			break
		}
		key := strings.TrimSpace(similarity.Fold(scored[i].Title))
		if used[key] || conflictsWithSeed(&scored[i], seeds) {
			continue
		}
		final = append(final, scored[i])
		used[key] = true
	}

	return final
}

// selectTop takes the head of an already sorted pool. Movies, series, and
// music cap the curated share before scoring, so no quota applies here.
func selectTop(scored []domain.Candidate) []domain.Candidate {
	if len(scored) > MaxResults {
		scored = scored[:MaxResults]
	}
	return scored
}
