package services

import (
	"regexp"
	"sort"
	"strings"
)

// KeywordConfig controls tokenization for keyword scoring. The stopword
// list and minimum token length are configuration, not scoring logic.
type KeywordConfig struct {
	MinTokenLength int
	Stopwords      []string
}

func DefaultKeywordConfig() KeywordConfig {
	return KeywordConfig{
		MinTokenLength: 4,
		Stopwords:      defaultStopwords,
	}
}

var defaultStopwords = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "from", "as", "is", "was", "are", "were", "be",
	"been", "being", "have", "has", "had", "do", "does", "did", "will",
	"would", "should", "could", "may", "might", "must", "can", "this",
	"that", "these", "those", "it", "its", "they", "them", "their",
	"there", "then", "than", "when", "where", "what", "which", "who",
	"whom", "whose", "why", "how", "all", "each", "every", "some", "any",
	"no", "not", "only", "just", "also", "more", "most", "other", "such",
	"same", "very", "much", "many", "few", "little", "own", "shall",
}

type KeywordScorer interface {
	ExtractKeywords(text string) map[string]struct{}
	Score(reference, candidate string) (float64, []string, []string)
}

type keywordScorer struct {
	minTokenLength int
	stopwords      map[string]struct{}
}

func NewKeywordScorer(cfg KeywordConfig) KeywordScorer {
	if cfg.MinTokenLength <= 0 {
		cfg.MinTokenLength = 4
	}

	stopwords := make(map[string]struct{}, len(cfg.Stopwords))
	for _, w := range cfg.Stopwords {
		stopwords[w] = struct{}{}
	}

	return &keywordScorer{
		minTokenLength: cfg.MinTokenLength,
		stopwords:      stopwords,
	}
}

var tokenRegex = regexp.MustCompile(`[a-z0-9]+`)

// ExtractKeywords implements KeywordScorer.
func (s *keywordScorer) ExtractKeywords(text string) map[string]struct{} {
	keywords := make(map[string]struct{})
	for _, token := range tokenRegex.FindAllString(strings.ToLower(text), -1) {
		if len(token) < s.minTokenLength {
			continue
		}
		if _, stop := s.stopwords[token]; stop {
			continue
		}
		keywords[token] = struct{}{}
	}
	return keywords
}

// Score computes the Jaccard similarity of the two texts' keyword sets.
// Two empty sets count as a perfect match. The missing list is directional:
// keywords of the reference text absent from the candidate, never the
// reverse.
func (s *keywordScorer) Score(reference, candidate string) (float64, []string, []string) {
	refKeywords := s.ExtractKeywords(reference)
	candKeywords := s.ExtractKeywords(candidate)

	if len(refKeywords) == 0 && len(candKeywords) == 0 {
		return 1.0, nil, nil
	}

	var matched, missing []string
	intersection := 0
	for k := range refKeywords {
		if _, ok := candKeywords[k]; ok {
			intersection++
			matched = append(matched, k)
		} else {
			missing = append(missing, k)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	if len(refKeywords) == 0 || len(candKeywords) == 0 {
		return 0.0, matched, missing
	}

	union := len(refKeywords) + len(candKeywords) - intersection
	return float64(intersection) / float64(union), matched, missing
}
