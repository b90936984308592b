package recommend

import (
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/listoria/listoria-server/internal/domain"
	"github.com/listoria/listoria-server/internal/similarity"
)

// Jitter supplies the small random term added to every score so repeated
// identical requests do not return a frozen list. Tests inject a zero
// implementation to make ranking deterministic.
type Jitter interface {
	// Roll returns a value in [1, max].
	Roll(max int) int
}

type randJitter struct{}

func (randJitter) Roll(max int) int { return rand.IntN(max) + 1 }

// NewJitter returns the production jitter source.
func NewJitter() Jitter { return randJitter{} }

// NoJitter always rolls zero. For deterministic ranking in tests.
type NoJitter struct{}

func (NoJitter) Roll(int) int { return 0 }

const (
	bookJitterMax  = 10
	otherJitterMax = 8
)

// Score ranks candidates for a request: additive weighted terms from the
// notes, the seeds, and the user's age, plus a small random jitter. The
// notes dominate. Candidates missing a title or genre are dropped, not
// scored at zero. The returned slice is sorted by descending score with
// equal scores keeping their input order.
func Score(items []domain.Candidate, req *Request, jit Jitter) []domain.Candidate {
	scored := make([]domain.Candidate, 0, len(items))
	for i := range items {
		c := items[i]
		if !c.Scoreable() {
			continue
		}
		if req.Domain == domain.DomainBook {
			c.Score = scoreBook(&c, req, jit)
		} else {
			c.Score = scoreOther(&c, req, jit)
		}
		scored = append(scored, c)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// scoreBook weighs notes matches, seed affinity, and an age nudge. Themes
// and genre are matched as substrings of the whole notes text; title words
// are matched word for word.
func scoreBook(c *domain.Candidate, req *Request, jit Jitter) float64 {
	score := 0.0

	if notes := similarity.Fold(strings.TrimSpace(req.Notes)); notes != "" {
		for _, theme := range c.Themes {
			if strings.Contains(notes, similarity.Fold(theme)) {
				score += 15
			}
		}
		if strings.Contains(notes, similarity.Fold(c.Genre)) {
			score += 20
		}
		if c.Style != "" && strings.Contains(notes, similarity.Fold(c.Style)) {
			score += 10
		}
		titleWords := strings.Fields(similarity.Fold(c.Title))
		for _, word := range strings.Fields(notes) {
			for _, tw := range titleWords {
				if word == tw {
					score += 5
					break
				}
			}
		}
	}

	for _, seed := range req.Seeds {
		seed = similarity.Fold(seed)
		if c.Creator != "" && strings.Contains(seed, similarity.Fold(c.Creator)) {
			score += 25
		}
		for _, theme := range c.Themes {
			if strings.Contains(seed, similarity.Fold(theme)) {
				score += 8
			}
		}
		if words := strings.Fields(seed); len(words) > 0 &&
			similarity.Fold(c.Genre) == words[len(words)-1] {
			score += 10
		}
	}

	if req.Age > 0 {
		if req.Age < 25 && strings.Contains(similarity.Fold(c.Reason), "genç") {
			score += 8
		} else if req.Age >= 25 && strings.Contains(similarity.Fold(c.Genre), "klasik") {
			score += 10
		}
	}

	return score + float64(jit.Roll(bookJitterMax))
}

// scoreOther weighs each notes word against the candidate's theme text,
// style, reason, and title, then adds a flat bonus per seed sharing any
// theme. The direction flips relative to books: here the word must appear
// inside the field.
func scoreOther(c *domain.Candidate, req *Request, jit Jitter) float64 {
	score := 0.0

	if notes := similarity.Fold(strings.TrimSpace(req.Notes)); notes != "" {
		themeText := similarity.Fold(c.ThemeText())
		style := similarity.Fold(c.Style)
		reason := similarity.Fold(c.Reason)
		title := similarity.Fold(c.Title)

		for _, word := range strings.Fields(notes) {
			if themeText != "" && strings.Contains(themeText, word) {
				score += 15
			}
			if style != "" && strings.Contains(style, word) {
				score += 10
			}
			if reason != "" && strings.Contains(reason, word) {
				score += 20
			}
			if strings.Contains(title, word) {
				score += 25
			}
		}
	}

	for _, seed := range req.Seeds {
		seed = similarity.Fold(seed)
		for _, theme := range c.Themes {
			if strings.Contains(seed, similarity.Fold(theme)) {
				score += 5
				break
			}
		}
	}

	return score + float64(jit.Roll(otherJitterMax))
}
