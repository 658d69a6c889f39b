package model

import "time"

// NoTagBucket names the by_tag bucket for answers to untagged questions.
const NoTagBucket = "sin etiqueta"

// CorrectnessStats carries the counters every summary group shares.
type CorrectnessStats struct {
	Answered   int64   `json:"respondidas"`
	Correct    int64   `json:"correctas"`
	PctCorrect float64 `json:"porcentaje_correctas"`
}

// TypeSummary groups answers by question type.
type TypeSummary struct {
	Type      QuestionType `json:"tipo"`
	Questions int          `json:"preguntas"`
	CorrectnessStats
}

// QuestionSummary groups answers by question.
type QuestionSummary struct {
	QuestionID      uint         `json:"pregunta_id"`
	Statement       string       `json:"enunciado"`
	Type            QuestionType `json:"tipo"`
	ExplanationText string       `json:"explicacion_texto"`
	ExplanationURL  string       `json:"explicacion_url"`
	CorrectnessStats
}

// TagSummary groups answers by tag; TagID is nil for the NoTagBucket.
type TagSummary struct {
	TagID *uint  `json:"etiqueta_id"`
	Tag   string `json:"etiqueta"`
	CorrectnessStats
}

// swagger:model ExamSummary
type ExamSummary struct {
	ExamID           uint              `json:"exam_id"`
	Title            string            `json:"title"`
	ParticipantCount int64             `json:"participant_count"`
	ByType           []TypeSummary     `json:"by_type"`
	ByQuestion       []QuestionSummary `json:"by_question"`
	ByTag            []TagSummary      `json:"by_tag"`
	GeneratedAt      time.Time         `json:"generated_at"`
}

// QuestionAnswerCount is one aggregated row of answers per question.
type QuestionAnswerCount struct {
	QuestionID uint  `json:"question_id"`
	Answered   int64 `json:"answered"`
	Correct    int64 `json:"correct"`
}

// OptionAnswerCount is one aggregated row of answers per chosen option.
type OptionAnswerCount struct {
	OptionID uint  `json:"option_id"`
	Total    int64 `json:"total"`
}

type OptionBreakdown struct {
	OptionID   uint    `json:"id"`
	Text       string  `json:"text"`
	IsCorrect  bool    `json:"is_correct"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// swagger:model QuestionBreakdown
type QuestionBreakdown struct {
	QuestionID    uint              `json:"question_id"`
	Text          string            `json:"text"`
	Type          QuestionType      `json:"type"`
	TotalAnswered int64             `json:"total_answered"`
	PctCorrect    float64           `json:"pct_correct"`
	Options       []OptionBreakdown `json:"options"`
}
