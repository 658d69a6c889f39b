package model

import "time"

// OptionRef identifies an option in review payloads.
type OptionRef struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type AnswerReview struct {
	AnswerID        uint         `json:"answer_id"`
	QuestionID      uint         `json:"question_id"`
	Statement       string       `json:"statement"`
	Type            QuestionType `json:"type"`
	ImageURL        *string      `json:"image_url,omitempty"`
	Selected        *OptionRef   `json:"selected_option"`
	Text            string       `json:"text,omitempty"`
	Correct         bool         `json:"correct"`
	CorrectOption   *OptionRef   `json:"correct_option"`
	ExplanationText string       `json:"explanation_text"`
	ExplanationURL  string       `json:"explanation_url"`
}

// swagger:model ResultReview
type ResultReview struct {
	ResultID    uint           `json:"result_id"`
	ExamID      uint           `json:"exam_id"`
	ExamTitle   string         `json:"exam_title"`
	Score       int            `json:"score"`
	Timestamp   time.Time      `json:"timestamp"`
	StudentID   uint           `json:"student_id"`
	StudentName string         `json:"student_name"`
	Answers     []AnswerReview `json:"answers"`
}

// swagger:model CompletedExam
type CompletedExam struct {
	ResultID  uint      `json:"result_id"`
	ExamID    uint      `json:"exam_id"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject"`
	Course    string    `json:"course"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// ResultEntry is one row of a student's history for a single exam.
type ResultEntry struct {
	ResultID  uint      `json:"result_id"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}
