package recommend

import (
	"github.com/listoria/listoria-server/internal/domain"
	"github.com/listoria/listoria-server/internal/similarity"
)

// conflictsWithSeed reports whether a candidate is one of the titles the
// user already entered. Beyond the fuzzy ratio, a seed contained in the
// title (or vice versa) counts, and so does a seed naming the creator, so
// a seed like "Suç ve Ceza Dostoyevski" knocks out everything by that
// author.
func conflictsWithSeed(c *domain.Candidate, seeds []string) bool {
	for _, seed := range seeds {
		if similarity.Ratio(c.Title, seed) > similarity.DuplicateThreshold {
			return true
		}
		if similarity.Contains(c.Title, seed) {
			return true
		}
		if c.Creator != "" && similarity.Contains(c.Creator, seed) {
			return true
		}
	}
	return false
}

// sameItem reports whether two candidates are the same work under the fuzzy
// threshold. Music also collapses on artist, since track searches return
// the same song across many compilations.
func sameItem(a, b *domain.Candidate, threshold float64) bool {
	if similarity.Ratio(a.Title, b.Title) > threshold {
		return true
	}
	if a.Domain == domain.DomainMusic && a.Creator != "" && b.Creator != "" &&
		similarity.Ratio(a.Creator, b.Creator) > similarity.DuplicateThreshold {
		return true
	}
	return false
}

// dedupeExternal keeps the first occurrence of each distinct external
// candidate, dropping anything that matches an earlier result or one of
// the seeds.
func dedupeExternal(items []domain.Candidate, seeds []string) []domain.Candidate {
	kept := make([]domain.Candidate, 0, len(items))
	for i := range items {
		c := items[i]
		if conflictsWithSeed(&c, seeds) {
			continue
		}
		dup := false
		for j := range kept {
			if sameItem(&c, &kept[j], similarity.DuplicateThreshold) {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, c)
		}
	}
	return kept
}

// filterCurated removes curated entries that duplicate an external result,
// a seed, or an earlier curated entry. External results win the cross-source
// check because they carry fresher metadata. Series search results come
// back with noisier titles, so that comparison runs at the looser adapter
// threshold.
func filterCurated(curated, external []domain.Candidate, seeds []string, d domain.ContentDomain) []domain.Candidate {
	threshold := similarity.DuplicateThreshold
	if d == domain.DomainSeries {
		threshold = similarity.SeriesAdapterThreshold
	}

	kept := make([]domain.Candidate, 0, len(curated))
	for i := range curated {
		c := curated[i]
		dup := false
		for j := range external {
			if sameItem(&c, &external[j], threshold) {
				dup = true
				break
			}
		}
		if !dup && conflictsWithSeed(&c, seeds) {
			dup = true
		}
		if !dup {
			for j := range kept {
				if sameItem(&c, &kept[j], similarity.DuplicateThreshold) {
					dup = true
					break
				}
			}
		}
		if !dup {
			kept = append(kept, c)
		}
	}
	return kept
}
