package types

// SkillMatchResult classifies the JD's skill demands against a user's
// verified skills. Percentages are rounded to one decimal.
type SkillMatchResult struct {
	MatchedSkills          []string `json:"matched_skills"`
	MissingSkills          []string `json:"missing_skills"`
	MatchScore             float64  `json:"match_score"`
	RequiredMatchPct       float64  `json:"required_match_pct"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
}

// ProjectRanking is one project's relevance to an analyzed job description.
type ProjectRanking struct {
	ProjectID            string   `json:"project_id"`
	Title                string   `json:"title"`
	RelevanceScore       float64  `json:"relevance_score"`
	MatchingTechnologies []string `json:"matching_technologies"`
}

// ScoreBreakdown decomposes the composite match score. Component values are
// percentages rounded to one decimal.
type ScoreBreakdown struct {
	RequiredSkillMatch float64 `json:"required_skill_match"`
	ProjectRelevance   float64 `json:"project_relevance"`
	KeywordAlignment   float64 `json:"keyword_alignment"`
	TotalScore         float64 `json:"total_score"`
}

// ResumeMetadata is the analysis snapshot stored alongside a generated
// resume, so score breakdowns can be served without re-running the pipeline.
type ResumeMetadata struct {
	JDAnalysis      *JDAnalysis      `json:"jd_analysis"`
	SkillMatch      *SkillMatchResult `json:"skill_match"`
	ProjectRankings []ProjectRanking `json:"project_rankings"`
	ScoreBreakdown  ScoreBreakdown   `json:"score_breakdown"`
}
