package repository

import (
	"context"

	"github.com/Mochytk/INF225-Informagicos/internal/model"
	"gorm.io/gorm"
)

const correctSum = "COALESCE(SUM(CASE WHEN answers.correct THEN 1 ELSE 0 END), 0)"

// SummaryRepository runs the aggregate queries behind the exam analytics.
type SummaryRepository struct {
	DB *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{DB: db}
}

// QuestionAnswerCounts counts answers and correct answers per question of the exam.
// Questions nobody answered are absent from the result.
func (r *SummaryRepository) QuestionAnswerCounts(ctx context.Context, examID uint) ([]model.QuestionAnswerCount, error) {
	var rows []model.QuestionAnswerCount
	err := r.DB.WithContext(ctx).Model(&model.Answer{}).
		Select("answers.question_id AS question_id, COUNT(*) AS answered, "+correctSum+" AS correct").
		Joins("JOIN questions ON questions.id = answers.question_id AND questions.deleted_at IS NULL").
		Where("questions.exam_id = ?", examID).
		Group("answers.question_id").
		Scan(&rows).Error
	return rows, err
}

func (r *SummaryRepository) QuestionTotals(ctx context.Context, questionID uint) (model.QuestionAnswerCount, error) {
	row := model.QuestionAnswerCount{QuestionID: questionID}
	err := r.DB.WithContext(ctx).Model(&model.Answer{}).
		Select("COUNT(*) AS answered, "+correctSum+" AS correct").
		Where("answers.question_id = ?", questionID).
		Scan(&row).Error
	row.QuestionID = questionID
	return row, err
}

// OptionAnswerCounts counts how many answers chose each option of the question.
func (r *SummaryRepository) OptionAnswerCounts(ctx context.Context, questionID uint) ([]model.OptionAnswerCount, error) {
	var rows []model.OptionAnswerCount
	err := r.DB.WithContext(ctx).Model(&model.Answer{}).
		Select("answers.option_id AS option_id, COUNT(*) AS total").
		Where("answers.question_id = ? AND answers.option_id IS NOT NULL", questionID).
		Group("answers.option_id").
		Scan(&rows).Error
	return rows, err
}
