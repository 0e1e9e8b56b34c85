package services

import "fmt"

// MatchedPair associates one ground-truth pair with the generated pair
// the matcher selected for it. Both pointers reference entries in the
// slices handed to Match.
type MatchedPair struct {
	GroundTruth *QAPair
	Generated   *QAPair
	Similarity  float64
}

type MatchResult struct {
	Pairs                []MatchedPair
	TotalGroundTruth     int
	TotalGenerated       int
	UnmatchedGroundTruth int
	UnmatchedGenerated   int
}

type PairMatcher interface {
	Match(groundTruth, generated []QAPair) MatchResult
}

type pairMatcher struct {
	scorer    KeywordScorer
	threshold float64
}

// sectionBonus is added to the question similarity when both pairs carry
// the same non-empty section label. Same-section candidates are favoured
// but never required.
const sectionBonus = 0.1

func NewPairMatcher(scorer KeywordScorer, threshold float64) (PairMatcher, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("match threshold must be in [0, 1], got %g", threshold)
	}
	return &pairMatcher{
		scorer:    scorer,
		threshold: threshold,
	}, nil
}

// Match aligns generated pairs to ground-truth pairs by question
// similarity. The matching is greedy: each ground-truth pair, in document
// order, takes the best-scoring generated pair not consumed by an earlier
// one, provided the score exceeds the threshold. Ties go to the earliest
// generated position. This is not an optimal assignment; clearly separated
// similarities make the greedy choice exact.
func (m *pairMatcher) Match(groundTruth, generated []QAPair) MatchResult {
	result := MatchResult{
		TotalGroundTruth: len(groundTruth),
		TotalGenerated:   len(generated),
	}

	consumed := make([]bool, len(generated))

	for i := range groundTruth {
		gt := &groundTruth[i]

		bestIdx := -1
		bestSim := 0.0
		for j := range generated {
			if consumed[j] {
				continue
			}

			sim, _, _ := m.scorer.Score(gt.Question, generated[j].Question)
			if gt.Section != "" && gt.Section == generated[j].Section {
				sim += sectionBonus
				if sim > 1.0 {
					sim = 1.0
				}
			}

			if sim > bestSim {
				bestSim = sim
				bestIdx = j
			}
		}

		if bestIdx >= 0 && bestSim > m.threshold {
			consumed[bestIdx] = true
			result.Pairs = append(result.Pairs, MatchedPair{
				GroundTruth: gt,
				Generated:   &generated[bestIdx],
				Similarity:  bestSim,
			})
		}
	}

	result.UnmatchedGroundTruth = len(groundTruth) - len(result.Pairs)
	result.UnmatchedGenerated = len(generated) - len(result.Pairs)

	return result
}
