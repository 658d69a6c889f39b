package repository

import (
	"context"

	"github.com/Mochytk/INF225-Informagicos/internal/model"
	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// CreateWithAnswers stores the result and every answer in one transaction.
func (r *ResultRepository) CreateWithAnswers(ctx context.Context, result *model.Result) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		answers := result.Answers
		result.Answers = nil
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].ResultID = result.ID
		}
		if len(answers) > 0 {
			if err := tx.Omit("Question", "Option").Create(&answers).Error; err != nil {
				return err
			}
		}
		result.Answers = answers
		return nil
	})
}

// ListByStudent returns the student's results with their exam, newest first.
func (r *ResultRepository) ListByStudent(ctx context.Context, studentID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.DB.WithContext(ctx).
		Preload("Exam").
		Where("student_id = ?", studentID).
		Order("created_at desc, id desc").
		Find(&results).Error
	return results, err
}

func (r *ResultRepository) ListByStudentAndExam(ctx context.Context, studentID, examID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND exam_id = ?", studentID, examID).
		Order("created_at desc, id desc").
		Find(&results).Error
	return results, err
}

// FindForReview loads a result of examID with its answers, their questions and every option of
// those questions. Options replaced after submission are still resolved for the chosen option.
func (r *ResultRepository) FindForReview(ctx context.Context, examID, resultID uint) (*model.Result, error) {
	var result model.Result
	err := r.DB.WithContext(ctx).
		Preload("Exam").
		Preload("Student").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Preload("Answers.Question").
		Preload("Answers.Question.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Preload("Answers.Option", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Where("id = ? AND exam_id = ?", resultID, examID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultRepository) CountParticipants(ctx context.Context, examID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Result{}).
		Where("exam_id = ?", examID).
		Distinct("student_id").
		Count(&count).Error
	return count, err
}
