package dto

type CategoryBreakdown struct {
	Category string  `json:"category"`
	Count    int64   `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

type DashboardResponse struct {
	TotalInterviews     int64               `json:"total_interviews"`
	CompletedInterviews int64               `json:"completed_interviews"`
	CompletionRate      float64             `json:"completion_rate"`
	AverageScore        float64             `json:"average_score"`
	RecentInterviews    int64               `json:"recent_interviews"`
	CategoryBreakdown   []CategoryBreakdown `json:"category_breakdown"`
}

type TrendPoint struct {
	Date     string  `json:"date"`
	Count    int64   `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

type TrendsResponse struct {
	Trends []TrendPoint `json:"trends"`
}

type CategoryPerformance struct {
	Category       string   `json:"category"`
	Total          int64    `json:"total"`
	Completed      int64    `json:"completed"`
	CompletionRate float64  `json:"completion_rate"`
	AvgScore       float64  `json:"avg_score"`
	MinScore       *float64 `json:"min_score"`
	MaxScore       *float64 `json:"max_score"`
}

type CategoryPerformanceResponse struct {
	Categories []CategoryPerformance `json:"categories"`
}

type ImprovementArea struct {
	QuestionText string   `json:"question_text"`
	QuestionType string   `json:"question_type"`
	Score        float64  `json:"score"`
	Feedback     *string  `json:"feedback"`
	Category     string   `json:"category"`
}

type QuestionTypePerformance struct {
	Type     string  `json:"type"`
	Count    int64   `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

type ImprovementAreasResponse struct {
	ImprovementAreas        []ImprovementArea         `json:"improvement_areas"`
	QuestionTypePerformance []QuestionTypePerformance `json:"question_type_performance"`
}
