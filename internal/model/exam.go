package model

type QuestionType string

const (
	QuestionTypeSingleChoice QuestionType = "alternativa_simple"
	QuestionTypeOpen         QuestionType = "desarrollo"
)

func (t QuestionType) Valid() bool {
	return t == QuestionTypeSingleChoice || t == QuestionTypeOpen
}

const DefaultDifficulty = "Sin definir"

// swagger:model Exam
type Exam struct {
	BaseModel
	Title     string     `gorm:"size:200;not null" json:"title"`
	Subject   string     `gorm:"size:100" json:"subject"`
	Course    string     `gorm:"size:50" json:"course"`
	CreatorID *uint      `gorm:"index" json:"creator_id,omitempty"`
	Creator   *User      `gorm:"foreignKey:CreatorID;constraint:OnDelete:SET NULL" json:"-"`
	Questions []Question `gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}

// swagger:model Question
type Question struct {
	BaseModel
	ExamID          uint         `gorm:"index;not null" json:"exam_id"`
	Statement       string       `gorm:"type:text;not null" json:"statement"`
	ImageURL        *string      `gorm:"size:500" json:"image_url,omitempty"`
	Difficulty      string       `gorm:"size:50;default:'Sin definir'" json:"difficulty"`
	Type            QuestionType `gorm:"size:50;not null" json:"type"`
	Position        int          `gorm:"default:0" json:"position"`
	ExplanationText string       `gorm:"type:text" json:"explanation_text"`
	ExplanationURL  string       `gorm:"size:500" json:"explanation_url"`
	Options         []Option     `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
	Tags            []Tag        `gorm:"many2many:question_tags;" json:"tags,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// CorrectOption returns the first option flagged correct, if any.
func (q *Question) CorrectOption() *Option {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

// swagger:model Option
type Option struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"question_id"`
	Text       string `gorm:"size:200;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"is_correct"`
}

func (Option) TableName() string {
	return "options"
}
