package services

import (
	"fmt"
	"strings"
)

// DocumentScoreScale labels document-to-document reports. Rubric
// assessments use RubricScoreScale; the two never share thresholds.
const DocumentScoreScale = "0-1"

// PairScore is the evaluation result for one matched pair. The combined
// score is a pure function of the two component scores and the weights.
type PairScore struct {
	Section           string   `json:"section,omitempty"`
	Question          string   `json:"question"`
	GroundTruthAnswer string   `json:"ground_truth_answer"`
	GeneratedAnswer   string   `json:"generated_answer"`
	LLMScore          float64  `json:"llm_score"`
	KeywordScore      float64  `json:"keyword_score"`
	CombinedScore     float64  `json:"combined_score"`
	LLMJudgment       string   `json:"llm_judgment"`
	MatchedKeywords   []string `json:"matched_keywords"`
	MissingKeywords   []string `json:"missing_keywords"`
}

type EvaluationReport struct {
	Scale                 string      `json:"scale"`
	TotalGroundTruthPairs int         `json:"total_ground_truth_pairs"`
	TotalGeneratedPairs   int         `json:"total_generated_pairs"`
	MatchedPairs          int         `json:"matched_pairs"`
	UnmatchedGroundTruth  int         `json:"unmatched_ground_truth"`
	UnmatchedGenerated    int         `json:"unmatched_generated"`
	MatchRate             float64     `json:"match_rate"`
	AverageLLMScore       float64     `json:"average_llm_score"`
	AverageKeywordScore   float64     `json:"average_keyword_score"`
	AverageCombinedScore  float64     `json:"average_combined_score"`
	Results               []PairScore `json:"results"`
}

// BuildEvaluationReport reduces per-pair scores into the aggregate report.
// Averages cover matched pairs only and are 0 when nothing matched.
func BuildEvaluationReport(totalGroundTruth, totalGenerated int, scores []PairScore) *EvaluationReport {
	report := &EvaluationReport{
		Scale:                 DocumentScoreScale,
		TotalGroundTruthPairs: totalGroundTruth,
		TotalGeneratedPairs:   totalGenerated,
		MatchedPairs:          len(scores),
		UnmatchedGroundTruth:  totalGroundTruth - len(scores),
		UnmatchedGenerated:    totalGenerated - len(scores),
		MatchRate:             matchRate(len(scores), totalGroundTruth, totalGenerated),
		Results:               scores,
	}

	if len(scores) > 0 {
		var llmSum, keywordSum, combinedSum float64
		for _, s := range scores {
			llmSum += s.LLMScore
			keywordSum += s.KeywordScore
			combinedSum += s.CombinedScore
		}
		n := float64(len(scores))
		report.AverageLLMScore = llmSum / n
		report.AverageKeywordScore = keywordSum / n
		report.AverageCombinedScore = combinedSum / n
	}

	return report
}

// matchRate is matched/total ground truth. With no ground-truth pairs the
// rate is 1.0 when the generated side is also empty (vacuously complete)
// and 0.0 otherwise. This convention is policy, applied consistently.
func matchRate(matched, totalGroundTruth, totalGenerated int) float64 {
	if totalGroundTruth > 0 {
		return float64(matched) / float64(totalGroundTruth)
	}
	if totalGenerated == 0 {
		return 1.0
	}
	return 0.0
}

// RenderText produces the human-readable form of the report.
func (r *EvaluationReport) RenderText() string {
	divider := strings.Repeat("=", 80)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nEVALUATION REPORT\n%s\n\n", divider, divider)
	fmt.Fprintf(&b, "Total Ground Truth Q&A Pairs: %d\n", r.TotalGroundTruthPairs)
	fmt.Fprintf(&b, "Total Generated Q&A Pairs: %d\n", r.TotalGeneratedPairs)
	fmt.Fprintf(&b, "Matched Pairs: %d\n", r.MatchedPairs)
	fmt.Fprintf(&b, "Match Rate: %.2f%%\n\n", r.MatchRate*100)
	b.WriteString("SCORES:\n")
	fmt.Fprintf(&b, "  Average LLM Score: %.3f\n", r.AverageLLMScore)
	fmt.Fprintf(&b, "  Average Keyword Score: %.3f\n", r.AverageKeywordScore)
	fmt.Fprintf(&b, "  Average Combined Score: %.3f\n\n", r.AverageCombinedScore)
	fmt.Fprintf(&b, "%s\nDETAILED RESULTS\n%s\n", divider, divider)

	for i, result := range r.Results {
		fmt.Fprintf(&b, "\n--- Pair %d ---\n", i+1)
		section := result.Section
		if section == "" {
			section = "N/A"
		}
		fmt.Fprintf(&b, "Section: %s\n", section)
		fmt.Fprintf(&b, "Question: %s\n\n", result.Question)
		fmt.Fprintf(&b, "Ground Truth Answer:\n%s\n\n", result.GroundTruthAnswer)
		fmt.Fprintf(&b, "Generated Answer:\n%s\n\n", result.GeneratedAnswer)
		fmt.Fprintf(&b, "LLM Score: %.3f\n", result.LLMScore)
		fmt.Fprintf(&b, "Keyword Score: %.3f\n", result.KeywordScore)
		fmt.Fprintf(&b, "Combined Score: %.3f\n\n", result.CombinedScore)
		fmt.Fprintf(&b, "LLM Judgment:\n%s\n\n", result.LLMJudgment)
		fmt.Fprintf(&b, "Matched Keywords (%d): %s\n", len(result.MatchedKeywords), joinLimited(result.MatchedKeywords, 10))
		fmt.Fprintf(&b, "Missing Keywords (%d): %s\n", len(result.MissingKeywords), joinLimited(result.MissingKeywords, 10))
	}

	return b.String()
}

func joinLimited(words []string, limit int) string {
	if len(words) > limit {
		words = words[:limit]
	}
	return strings.Join(words, ", ")
}
