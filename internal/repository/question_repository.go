package repository

import (
	"context"

	"github.com/Mochytk/INF225-Informagicos/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// Create inserts the question with its options and links the given tags.
func (r *QuestionRepository) Create(ctx context.Context, question *model.Question) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags := question.Tags
		question.Tags = nil
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		question.Tags = tags
		if len(tags) == 0 {
			return nil
		}
		return tx.Model(question).Association("Tags").Replace(tags)
	})
}

func (r *QuestionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Preload("Tags").
		First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// FindInExam returns the question only when it belongs to examID.
func (r *QuestionRepository) FindInExam(ctx context.Context, examID, questionID uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Where("id = ? AND exam_id = ?", questionID, examID).
		First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListByExam loads every question of the exam with options and tags, in display order.
func (r *QuestionRepository) ListByExam(ctx context.Context, examID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Preload("Tags").
		Where("exam_id = ?", examID).
		Order("position asc, id asc").
		Find(&questions).Error
	return questions, err
}

// Update saves the scalar fields. When replaceOptions is set the current options are
// soft-deleted and question.Options inserted; when tags is non-nil the tag links are replaced.
func (r *QuestionRepository) Update(ctx context.Context, question *model.Question, replaceOptions bool, tags []model.Tag) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Question{}).Where("id = ?", question.ID).Updates(map[string]interface{}{
			"statement":        question.Statement,
			"difficulty":       question.Difficulty,
			"type":             question.Type,
			"position":         question.Position,
			"explanation_text": question.ExplanationText,
			"explanation_url":  question.ExplanationURL,
		}).Error; err != nil {
			return err
		}

		if replaceOptions {
			if err := tx.Where("question_id = ?", question.ID).Delete(&model.Option{}).Error; err != nil {
				return err
			}
			for i := range question.Options {
				question.Options[i].ID = 0
				question.Options[i].QuestionID = question.ID
			}
			if len(question.Options) > 0 {
				if err := tx.Create(&question.Options).Error; err != nil {
					return err
				}
			}
		}

		if tags != nil {
			if err := tx.Model(question).Association("Tags").Replace(tags); err != nil {
				return err
			}
			question.Tags = tags
		}
		return nil
	})
}

// UpdateExplanation writes only the supplied explanation columns.
func (r *QuestionRepository) UpdateExplanation(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.DB.WithContext(ctx).Model(&model.Question{}).Where("id = ?", id).Updates(fields).Error
}

func (r *QuestionRepository) UpdateImage(ctx context.Context, id uint, url string) error {
	return r.DB.WithContext(ctx).Model(&model.Question{}).Where("id = ?", id).Update("image_url", url).Error
}

// Delete removes the question, its options, tag links and the answers recorded against it.
func (r *QuestionRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("question_id = ?", id).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("question_id = ?", id).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM question_tags WHERE question_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Question{}, id).Error
	})
}
