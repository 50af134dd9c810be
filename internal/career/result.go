package career

// ResumeAnalysisResult is the ATS scan of a resume against a job description.
// Scores are percentages in 0..100.
type ResumeAnalysisResult struct {
	OverallScore     int      `json:"overallScore"`
	ATSCompatibility int      `json:"atsCompatibility"`
	KeywordMatch     int      `json:"keywordMatch"`
	FormattingScore  int      `json:"formattingScore"`
	ContentScore     int      `json:"contentScore"`
	Keywords         []string `json:"keywords"`
	MissingKeywords  []string `json:"missingKeywords"`
	Suggestions      []string `json:"suggestions"`
	Errors           []string `json:"errors"`
	ImprovedContent  string   `json:"improvedContent,omitempty"`
}

// CoverLetterResult wraps generated letter text.
type CoverLetterResult struct {
	Content string `json:"content"`
}

// Skill is one entry of a skill gap list. Level is the current proficiency
// and Gap the distance to the required proficiency, both in 0..100.
type Skill struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Gap      int    `json:"gap"`
	Required bool   `json:"required"`
}

// Course is a learning resource recommended to close a gap.
type Course struct {
	Title    string   `json:"title"`
	Provider string   `json:"provider"`
	URL      string   `json:"url"`
	Duration string   `json:"duration"`
	Level    string   `json:"level"`
	Skills   []string `json:"skills"`
}

// SkillGapResult compares a resume with a target role.
type SkillGapResult struct {
	MatchPercentage int      `json:"matchPercentage"`
	StrongSkills    []Skill  `json:"strongSkills"`
	PartialSkills   []Skill  `json:"partialSkills"`
	MissingSkills   []Skill  `json:"missingSkills"`
	Recommendations []Course `json:"recommendations"`
}

// InterviewFeedbackResult scores a single interview answer. Questions is set
// when the request asked for question ideas instead of feedback.
type InterviewFeedbackResult struct {
	OverallScore int      `json:"overallScore"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Alternatives []string `json:"alternatives"`
	Questions    []string `json:"questions,omitempty"`
}

// Question is one generated interview question. TimeAllocation is in seconds.
type Question struct {
	ID             int    `json:"id"`
	Text           string `json:"text" validate:"required"`
	Category       string `json:"category"`
	TimeAllocation int    `json:"timeAllocation"`
}

// InterviewQuestionsResult is the generated question set.
type InterviewQuestionsResult []Question

// Assessment is one scored dimension of an interview evaluation.
type Assessment struct {
	Score        int      `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// InterviewEvaluationResult scores a whole interview.
type InterviewEvaluationResult struct {
	Delivery   Assessment `json:"delivery"`
	Content    Assessment `json:"content"`
	Confidence Assessment `json:"confidence"`
}
