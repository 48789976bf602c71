package model

// Tryout 测验（由若干判断题组成）
// swagger:model Tryout
type Tryout struct {
	UUIDBase
	Title       string     `gorm:"size:255;not null;index" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Category    string     `gorm:"size:100;not null" json:"category"`
	TimeLimit   int        `gorm:"not null" json:"timeLimit"` // Minutes
	IsPublic    bool       `gorm:"not null" json:"isPublic"`
	Questions   []Question `gorm:"foreignKey:TryoutID" json:"questions,omitempty"`

	Count       *TryoutCount `gorm:"-" json:"_count,omitempty"`
	TotalPoints int          `gorm:"-" json:"totalPoints,omitempty"`
}

func (Tryout) TableName() string {
	return "tryouts"
}

type TryoutCount struct {
	Questions int `json:"questions"`
}

// QuestionCount 返回 _count.questions，未填充时退回到已加载的题目数
func (t *Tryout) QuestionCount() int {
	if t.Count != nil {
		return t.Count.Questions
	}
	return len(t.Questions)
}

const DefaultTimeLimit = 30

type TryoutCreateInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	TimeLimit   *int   `json:"timeLimit,omitempty"`
	IsPublic    *bool  `json:"isPublic,omitempty"`
}

type TryoutUpdateInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	TimeLimit   *int    `json:"timeLimit,omitempty"`
	IsPublic    *bool   `json:"isPublic,omitempty"`
}

// TryoutFilter 列表查询条件，日期为 YYYY-MM-DD 或 RFC3339
type TryoutFilter struct {
	Title     string `form:"title"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	IsPublic  *bool  `form:"isPublic"`
}
