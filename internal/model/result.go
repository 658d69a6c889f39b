package model

// Result is the immutable grading record of one submission.
// swagger:model Result
type Result struct {
	BaseModel
	ExamID     uint     `gorm:"index;not null" json:"exam_id"`
	Exam       *Exam    `gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE" json:"exam,omitempty"`
	StudentID  uint     `gorm:"index;not null" json:"student_id"`
	Student    *User    `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	TotalScore int      `gorm:"default:0" json:"total_score"`
	Answers    []Answer `gorm:"foreignKey:ResultID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

func (Result) TableName() string {
	return "results"
}

// swagger:model Answer
type Answer struct {
	BaseModel
	ResultID   uint      `gorm:"index;not null" json:"result_id"`
	QuestionID uint      `gorm:"index;not null" json:"question_id"`
	Question   *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	OptionID   *uint     `gorm:"index" json:"option_id"`
	Option     *Option   `gorm:"foreignKey:OptionID;constraint:OnDelete:SET NULL" json:"-"`
	Text       string    `gorm:"type:text" json:"text"`
	Correct    bool      `gorm:"default:false" json:"correct"`
}

func (Answer) TableName() string {
	return "answers"
}
