package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildJudgePrompt creates the prompt comparing a candidate answer to the
// reference answer for the same question.
func (pb *PromptBuilder) BuildJudgePrompt(question, groundTruth, generated string) string {
	return fmt.Sprintf(`You are an expert evaluator comparing two answers to the same question.

Question: %s

Ground Truth Answer: %s

Generated Answer: %s

Evaluate how well the generated answer matches the ground truth answer. Consider:
1. Semantic similarity (do they convey the same meaning?)
2. Completeness (does the generated answer cover all key points?)
3. Accuracy (are the facts correct?)
4. Clarity and precision

Provide your evaluation in the following JSON format:
{
    "score": <float between 0.0 and 1.0>,
    "reasoning": "<brief explanation of your scoring>",
    "key_points_matched": <list of key points that match>,
    "key_points_missing": <list of important points from ground truth that are missing>,
    "key_points_incorrect": <list of points in generated answer that contradict ground truth>
}

Score Guidelines:
- 1.0: Perfect match, all information present and correct
- 0.8-0.9: Very good match, minor details missing or slightly different wording
- 0.6-0.7: Good match, some important details missing but core meaning preserved
- 0.4-0.5: Partial match, core meaning somewhat preserved but significant gaps
- 0.2-0.3: Poor match, only basic similarity
- 0.0-0.1: No meaningful match

Return ONLY valid JSON, no additional text.`, question, groundTruth, generated)
}

// BuildQAGenerationPrompt creates the prompt that converts one contract
// text chunk into Q&A pairs in the document exchange format.
func (pb *PromptBuilder) BuildQAGenerationPrompt(contractText string) string {
	return fmt.Sprintf(`You are an advanced Contract Parsing AI designed for legal-grade deterministic extraction. Your task is to convert the contract into multi-Q&A pairs for every clause.

For each clause (e.g., 1.1, 1.2, 3(a), 5(e)), generate multiple Q&A pairs that fully capture the legal meaning, operational implications, obligations, restrictions, rights, timelines, triggers, exceptions, and risks.

OUTPUT FORMAT (MANDATORY)
For each clause:
## SECTION X.X — [CLAUSE TITLE]
Q1: ...
A1: ...
Q2: ...
A2: ...

RULES
- Multiple Q&A pairs per clause (minimum 2, typical 4-6, more for long clauses).
- No hallucination: answers must come strictly from the contract text.
- Keep clause order and preserve numbering (1.1, 1.2... or 3(a), 3(b)...).
- Stay literal: interpret clauses accurately, without adding legal interpretation beyond the text.
- Respect definitions: when terms are defined, apply the definition consistently.
- Cover rights, obligations, deadlines, payment terms, IP ownership, indemnification, liability caps, confidentiality, compliance, breach consequences, exceptions, and survival where applicable.
- Do NOT summarize, paraphrase whole sections, merge clauses, give opinions, or omit content.

Document:
%s`, contractText)
}

// Keep rubric prompts within model context limits.
const maxRubricContractChars = 15000

// BuildRubricQuestionPrompt creates the prompt for scoring one rubric
// question against contract text on the 1-5 scale.
func (pb *PromptBuilder) BuildRubricQuestionPrompt(question RubricQuestion, contractText string) string {
	if len(contractText) > maxRubricContractChars {
		contractText = contractText[:maxRubricContractChars]
	}

	return fmt.Sprintf(`You are evaluating a contract against a specific rubric question. Analyze the contract text and answer the question.

RUBRIC QUESTION:
%s

GUIDANCE FOR EVALUATION:
%s

CONTRACT TEXT:
%s

Please provide:
1. A direct answer to the question based on what you find (or don't find) in the contract
2. A score from 1-5 where:
   - 5 = Excellent/Comprehensive: Fully addresses the concern, very favorable to client
   - 4 = Good: Addresses most concerns, generally favorable
   - 3 = Acceptable: Basic coverage, neutral or mixed
   - 2 = Poor: Missing important elements, unfavorable to client
   - 1 = Critical: Major gaps or very unfavorable terms
3. Brief reasoning for your score
4. Risk level: LOW, MEDIUM, HIGH, or CRITICAL

Format your response as JSON:
{
    "answer": "<your answer>",
    "score": <1-5>,
    "reasoning": "<brief explanation>",
    "risk_level": "<LOW|MEDIUM|HIGH|CRITICAL>"
}`, question.Question, question.Guidance, contractText)
}
