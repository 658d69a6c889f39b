package repository

import (
	"context"

	"github.com/Mochytk/INF225-Informagicos/internal/model"
	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(ctx context.Context, exam *model.Exam) error {
	return r.DB.WithContext(ctx).Create(exam).Error
}

func (r *ExamRepository) Update(ctx context.Context, exam *model.Exam) error {
	return r.DB.WithContext(ctx).Omit("Questions", "Creator").Save(exam).Error
}

func (r *ExamRepository) FindByID(ctx context.Context, id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := r.DB.WithContext(ctx).First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

// FindWithQuestions loads the exam with its questions in display order, their options and tags.
func (r *ExamRepository) FindWithQuestions(ctx context.Context, id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Preload("Questions.Tags").
		First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *ExamRepository) List(ctx context.Context) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.WithContext(ctx).Order("created_at desc, id desc").Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) CountQuestions(ctx context.Context, examID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Question{}).Where("exam_id = ?", examID).Count(&count).Error
	return count, err
}

// Delete removes the exam together with its questions, options, tag links, results and answers.
func (r *ExamRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		questionIDs := tx.Unscoped().Model(&model.Question{}).Select("id").Where("exam_id = ?", id)
		resultIDs := tx.Unscoped().Model(&model.Result{}).Select("id").Where("exam_id = ?", id)

		if err := tx.Unscoped().Where("result_id IN (?) OR question_id IN (?)", resultIDs, questionIDs).
			Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("exam_id = ?", id).Delete(&model.Result{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("question_id IN (?)", questionIDs).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM question_tags WHERE question_id IN (?)", questionIDs).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("exam_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Exam{}, id).Error
	})
}
