package entity

// Aggregates read straight out of SQL; column names match the scan targets.

type CategoryStat struct {
	Category     string
	Total        int64
	Completed    int64
	AverageScore *float64
	MinScore     *float64
	MaxScore     *float64
}

type DailyStat struct {
	Date         string
	Count        int64
	AverageScore *float64
}

type QuestionTypeStat struct {
	QuestionType string
	Total        int64
	AverageScore *float64
}

type WeakQuestion struct {
	QuestionText string
	QuestionType string
	Score        float64
	AiFeedback   *string
	Category     string
}
