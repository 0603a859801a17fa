package services

import (
	"math"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
)

// Weights of the fuzzy file similarity score.
const (
	filenameWeight = 0.7
	pathWeight     = 0.3
)

// Similarity scores how alike two files are, from 0 to 1, as a weighted
// edit-distance ratio of their lower-cased filenames and relative paths.
// The score is rounded to four decimals so that thresholds compare
// predictably.
func Similarity(a, b domain.FileEntry) float64 {
	name := levenshtein.Similarity(strings.ToLower(a.Filename), strings.ToLower(b.Filename), nil)
	path := levenshtein.Similarity(strings.ToLower(a.RelativePath), strings.ToLower(b.RelativePath), nil)
	return math.Round((filenameWeight*name+pathWeight*path)*1e4) / 1e4
}

// MatchEntries pairs files of two trees. Files with the same relative
// path are matched first. Each remaining file of filesA is then paired
// with the most similar remaining file of filesB that has the same
// extension and scores at least threshold; ties go to the earlier
// candidate. Unpaired files are returned as deleted (from filesA) and
// added (from filesB), in input order.
func MatchEntries(filesA, filesB []domain.FileEntry, threshold float64) (matches []domain.FileMatch, deleted, added []domain.FileEntry) {
	usedB := make([]bool, len(filesB))
	byPath := make(map[string]int, len(filesB))
	for i, f := range filesB {
		byPath[f.RelativePath] = i
	}

	var remaining []domain.FileEntry
	for _, a := range filesA {
		if i, ok := byPath[a.RelativePath]; ok && !usedB[i] && filesB[i].Extension == a.Extension {
			usedB[i] = true
			matches = append(matches, domain.FileMatch{
				File1:      a,
				File2:      filesB[i],
				MatchType:  domain.MatchExact,
				Similarity: 1,
			})
			continue
		}
		remaining = append(remaining, a)
	}

	for _, a := range remaining {
		best, bestScore := -1, -1.0
		for i, b := range filesB {
			if usedB[i] || b.Extension != a.Extension {
				continue
			}
			if score := Similarity(a, b); score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 || bestScore < threshold {
			deleted = append(deleted, a)
			continue
		}
		usedB[best] = true
		matches = append(matches, domain.FileMatch{
			File1:      a,
			File2:      filesB[best],
			MatchType:  domain.MatchFuzzy,
			Similarity: bestScore,
		})
	}

	for i, b := range filesB {
		if !usedB[i] {
			added = append(added, b)
		}
	}
	return matches, deleted, added
}
