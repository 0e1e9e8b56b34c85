package services

import (
	"fmt"
	"regexp"
	"strings"
)

// QAPair is one question/answer record extracted from a Q&A document,
// tagged with the section heading it appeared under.
type QAPair struct {
	Section  string `json:"section,omitempty"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type QAParserService interface {
	ParseQAPairs(content string) []QAPair
	FormatQAPairs(pairs []QAPair) string
}

type qaParserService struct{}

func NewQAParserService() QAParserService {
	return &qaParserService{}
}

var (
	headingRegex   = regexp.MustCompile(`^#{1,6}\s+(.+)$`)
	questionRegex  = regexp.MustCompile(`^Q\d+: (.*)$`)
	answerRegex    = regexp.MustCompile(`^A\d+: (.*)$`)
	separatorRegex = regexp.MustCompile(`^-{3,}$`)
)

// ParseQAPairs scans a Q&A document line by line. The numeric labels on
// Qn:/An: lines are ignored for pairing: an answer always closes the most
// recently opened question that has no answer yet. Questions left without
// an answer when a heading or the document end arrives are kept with an
// empty answer. Malformed input never fails; whatever was recognized is
// returned.
func (p *qaParserService) ParseQAPairs(content string) []QAPair {
	var pairs []QAPair
	var pending []int // indexes into pairs of questions awaiting an answer

	currentSection := ""
	accumIdx := -1 // index of the answer currently accumulating continuation lines

	for _, rawLine := range strings.Split(content, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		if m := headingRegex.FindStringSubmatch(line); m != nil {
			currentSection = strings.TrimSpace(m[1])
			pending = pending[:0]
			accumIdx = -1
			continue
		}

		if separatorRegex.MatchString(line) {
			accumIdx = -1
			continue
		}

		if m := questionRegex.FindStringSubmatch(line); m != nil {
			pairs = append(pairs, QAPair{
				Section:  currentSection,
				Question: strings.TrimSpace(m[1]),
			})
			pending = append(pending, len(pairs)-1)
			accumIdx = -1
			continue
		}

		if m := answerRegex.FindStringSubmatch(line); m != nil {
			if len(pending) == 0 {
				// Answer without an open question; nothing to attach it to.
				accumIdx = -1
				continue
			}
			idx := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			pairs[idx].Answer = strings.TrimSpace(m[1])
			accumIdx = idx
			continue
		}

		// Continuation of a multi-line answer.
		if accumIdx >= 0 {
			if pairs[accumIdx].Answer == "" {
				pairs[accumIdx].Answer = line
			} else {
				pairs[accumIdx].Answer += " " + line
			}
		}
	}

	return pairs
}

// FormatQAPairs serializes pairs back into the document exchange format.
// Question numbering restarts at 1 inside each section group.
func (p *qaParserService) FormatQAPairs(pairs []QAPair) string {
	var b strings.Builder

	currentSection := ""
	index := 0

	for i, pair := range pairs {
		if i == 0 || pair.Section != currentSection {
			if i > 0 {
				b.WriteString("---\n\n")
			}
			if pair.Section != "" {
				fmt.Fprintf(&b, "## %s\n\n", pair.Section)
			}
			currentSection = pair.Section
			index = 0
		}

		index++
		fmt.Fprintf(&b, "Q%d: %s\n", index, pair.Question)
		fmt.Fprintf(&b, "A%d: %s\n\n", index, pair.Answer)
	}

	return b.String()
}
