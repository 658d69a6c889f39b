package dto

import (
	"time"

	"github.com/Mochytk/INF225-Informagicos/internal/model"
)

type ExamRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Subject string `json:"subject" binding:"max=100"`
	Course  string `json:"course" binding:"max=50"`
}

type OptionRequest struct {
	Text      string `json:"text" binding:"required,max=200"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionRequest creates or updates a question. On update a nil Options or TagIDs keeps the
// stored value; an empty list clears it.
type QuestionRequest struct {
	Statement       string             `json:"statement" binding:"required"`
	Type            model.QuestionType `json:"type" binding:"required"`
	Difficulty      string             `json:"difficulty" binding:"max=50"`
	Position        int                `json:"position"`
	ExplanationText string             `json:"explanation_text"`
	ExplanationURL  string             `json:"explanation_url" binding:"max=500"`
	Options         []OptionRequest    `json:"options" binding:"dive"`
	TagIDs          []uint             `json:"tag_ids"`
}

type TagRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type ExamListItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject"`
	Course    string    `json:"course"`
	CreatorID *uint     `json:"creator_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OptionResponse hides IsCorrect (nil) from students.
type OptionResponse struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	IsCorrect *bool  `json:"is_correct,omitempty"`
}

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type QuestionResponse struct {
	ID              uint               `json:"id"`
	ExamID          uint               `json:"exam_id"`
	Statement       string             `json:"statement"`
	ImageURL        *string            `json:"image_url,omitempty"`
	Difficulty      string             `json:"difficulty"`
	Type            model.QuestionType `json:"type"`
	Position        int                `json:"position"`
	ExplanationText string             `json:"explanation_text,omitempty"`
	ExplanationURL  string             `json:"explanation_url,omitempty"`
	Options         []OptionResponse   `json:"options"`
	Tags            []TagResponse      `json:"tags"`
}

type ExamResponse struct {
	ID        uint               `json:"id"`
	Title     string             `json:"title"`
	Subject   string             `json:"subject"`
	Course    string             `json:"course"`
	CreatorID *uint              `json:"creator_id,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	Questions []QuestionResponse `json:"questions"`
}
