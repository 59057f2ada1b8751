package domain

// SourceRef is a single cited source attached to an answer.
type SourceRef struct {
	// Name is the document source name, web result title or URL.
	Name string `json:"name"`
}

// GovernanceScores are the 0-100 self-assessment scores.
type GovernanceScores struct {
	Confidence  int `json:"confidence"`
	Uncertainty int `json:"uncertainty"`
	Risk        int `json:"risk"`
}

// BiasAnalysis describes detected bias in the query and the answer.
type BiasAnalysis struct {
	PromptBias string `json:"prompt_bias"`
	OutputBias string `json:"output_bias"`
	Fairness   string `json:"fairness"`
}

// GovernanceReport is a structured self-assessment attached to exactly
// one produced answer. It is transient: scoped to a single query.
type GovernanceReport struct {
	// Hallucination is true when claims in the answer are not
	// supported by the evidence bundle.
	Hallucination bool `json:"hallucination"`

	// Contradiction is true when the answer contradicts the evidence.
	Contradiction bool `json:"contradiction"`

	Scores         GovernanceScores `json:"scores"`
	Bias           BiasAnalysis     `json:"bias_analysis"`
	ReasoningTrace string           `json:"reasoning_trace"`

	// Fallback is true when the report is the documented degraded-mode
	// default rather than an evaluator verdict.
	Fallback bool `json:"fallback,omitempty"`
}

// Answer is the complete result of one query: the natural-language
// response, its governance report and the cited sources.
type Answer struct {
	Response   string           `json:"response"`
	Governance GovernanceReport `json:"governance"`
	Sources    []SourceRef      `json:"sources"`

	// Model is the identity of the primary model that produced the answer.
	Model string `json:"model,omitempty"`
}
