package services

import (
	"regexp"
	"sort"
	"strings"
)

type TextChunker interface {
	ChunkContract(text string, maxChunkSize int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// Clause and article markers that make good chunk boundaries.
var sectionMarkerRegexes = []*regexp.Regexp{
	regexp.MustCompile(`\n\s*\d+\.\d+`),
	regexp.MustCompile(`\n\s*\d+\([a-z]\)`),
	regexp.MustCompile(`(?i)\n\s*SECTION\s+\d+`),
	regexp.MustCompile(`(?i)\n\s*Article\s+\d+`),
	regexp.MustCompile(`(?i)\n\s*Clause\s+\d+`),
}

// ChunkContract implements TextChunker. It splits contract text into
// chunks no larger than maxChunkSize, preferring clause boundaries, then
// paragraph boundaries, then line breaks.
func (tc *textChunker) ChunkContract(text string, maxChunkSize int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 8000
	}
	if len(text) <= maxChunkSize {
		return []string{text}
	}

	splitPoints := []int{0}
	for _, re := range sectionMarkerRegexes {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if loc[0] > splitPoints[len(splitPoints)-1]+maxChunkSize/3 {
				splitPoints = append(splitPoints, loc[0])
			}
		}
	}
	splitPoints = append(splitPoints, len(text))
	splitPoints = dedupeSorted(splitPoints)

	var chunks []string
	for i := 0; i < len(splitPoints)-1; i++ {
		chunk := text[splitPoints[i]:splitPoints[i+1]]

		for len(chunk) > maxChunkSize {
			splitAt := findSplitPoint(chunk, maxChunkSize)
			if piece := strings.TrimSpace(chunk[:splitAt]); piece != "" {
				chunks = append(chunks, piece)
			}
			chunk = strings.TrimSpace(chunk[splitAt:])
		}

		if chunk = strings.TrimSpace(chunk); chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	return chunks
}

// findSplitPoint looks for a paragraph boundary near the size limit,
// falls back to a line break, then to a hard cut.
func findSplitPoint(chunk string, maxChunkSize int) int {
	window := chunk[:maxChunkSize]

	if para := strings.LastIndex(window[maxChunkSize*6/10:], "\n\n"); para != -1 {
		return maxChunkSize*6/10 + para + 2
	}
	if line := strings.LastIndex(window[maxChunkSize*7/10:], "\n"); line != -1 {
		return maxChunkSize*7/10 + line + 1
	}
	return maxChunkSize
}

func dedupeSorted(points []int) []int {
	sort.Ints(points)
	out := points[:1]
	for _, p := range points[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
