package models

type EvaluateRequest struct {
	GroundTruthContent string  `json:"ground_truth_content"`
	GeneratedContent   string  `json:"generated_content"`
	LLMWeight          float64 `json:"llm_weight"`
	KeywordWeight      float64 `json:"keyword_weight"`
}

type EvaluatePairRequest struct {
	Question          string  `json:"question"`
	GroundTruthAnswer string  `json:"ground_truth_answer"`
	GeneratedAnswer   string  `json:"generated_answer"`
	LLMWeight         float64 `json:"llm_weight"`
	KeywordWeight     float64 `json:"keyword_weight"`
}

type UploadResponse struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Text         string `json:"text"`
	TextLength   int    `json:"text_length"`
	PageCount    int    `json:"page_count"`
}

type GenerateQAResponse struct {
	Filename        string `json:"filename"`
	TextLength      int    `json:"text_length"`
	ChunksProcessed int    `json:"chunks_processed"`
	QAContent       string `json:"qa_content"`
}
