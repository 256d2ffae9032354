package usecase

import (
	"regexp"
	"strings"

	"github.com/user/event-aggregator/internal/domain"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)
var whitespace = regexp.MustCompile(`\s+`)

// normalizeTitle reduces a title to a comparable form: lowercase, "&"
// replaced with "and", punctuation stripped, whitespace collapsed.
func normalizeTitle(title string) string {
	t := strings.ToLower(title)
	t = strings.ReplaceAll(t, "&", "and")
	t = nonAlnum.ReplaceAllString(t, "")
	t = whitespace.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// dayKey groups candidate duplicates by calendar day. The explicit UTC
// instant wins when present; otherwise the raw date string is used as-is.
func dayKey(e domain.Event) string {
	if e.UTCDateTime != nil {
		return e.UTCDateTime.UTC().Format(domain.DateLayout)
	}
	return e.Date
}

// QualityScore rates how good a listing is as the representative of a
// duplicate group: a purchase link and availability count most, then the
// source's data quality, then having an image.
func QualityScore(e domain.Event) int {
	score := 0
	if e.TicketURL != "" {
		score += 4
	}
	if e.TicketStatus == domain.TicketAvailable {
		score += 2
	}
	switch e.Source {
	case domain.SourceTicketmaster:
		score += 3
	case domain.SourceSeatGeek:
		score += 2
	default:
		score += 1
	}
	if e.ImageURL != "" {
		score += 1
	}
	return score
}

// Deduplicate collapses listings that describe the same real-world event
// across providers, keeping the highest-scoring record of each group.
//
// Two events match when they fall on the same day key and either their
// venue strings or their normalized titles are equal or contain one
// another. Containment is how partial venue names from different providers
// ("Globe Life Field" vs "globe life field park") still resolve to the
// same group. The match relation is not transitive, so groups are the
// connected components of the pairwise match graph; within a component the
// winner is the max-score member, earliest input position on ties. Output
// order follows input order of the winners.
func Deduplicate(events []domain.Event) []domain.Event {
	n := len(events)
	if n < 2 {
		return events
	}

	type key struct {
		day   string
		title string
		venue string
	}
	keys := make([]key, n)
	for i, e := range events {
		keys[i] = key{
			day:   dayKey(e),
			title: normalizeTitle(e.Title),
			venue: strings.ToLower(e.Location),
		}
	}

	uf := newUnionFind(n)
	// Candidate pairs are bucketed by day key so the pairwise scan only
	// touches same-day events.
	byDay := make(map[string][]int, n)
	for i, k := range keys {
		byDay[k.day] = append(byDay[k.day], i)
	}
	for _, bucket := range byDay {
		for x := 0; x < len(bucket); x++ {
			for y := x + 1; y < len(bucket); y++ {
				i, j := bucket[x], bucket[y]
				if matches(keys[i].venue, keys[j].venue) || matches(keys[i].title, keys[j].title) {
					uf.union(i, j)
				}
			}
		}
	}

	// Pick the winner per component deterministically.
	winner := make(map[int]int, n)
	for i := range events {
		root := uf.find(i)
		best, ok := winner[root]
		if !ok || QualityScore(events[i]) > QualityScore(events[best]) {
			winner[root] = i
		}
	}

	result := make([]domain.Event, 0, len(winner))
	for i, e := range events {
		if winner[uf.find(i)] == i {
			result = append(result, e)
		}
	}
	return result
}

// matches reports equality or substring containment in either direction.
// Empty strings never match; a missing venue must not glue groups together.
func matches(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
}
