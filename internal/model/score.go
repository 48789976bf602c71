package model

// ScoreRequest 无状态判分请求：questionId -> 选中的选项标签
type ScoreRequest struct {
	Answers map[string][]string `json:"answers"`
}

type ScoreResult struct {
	Score       int `json:"score"`
	TotalPoints int `json:"totalPoints"`
	Correct     int `json:"correct"`
	Total       int `json:"total"`
}

type ExportResult struct {
	URL string `json:"url"`
}
