package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Mochytk/INF225-Informagicos/internal/model"
	"github.com/Mochytk/INF225-Informagicos/internal/repository"
	"github.com/Mochytk/INF225-Informagicos/internal/util"
	"github.com/Mochytk/INF225-Informagicos/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExplanationInput holds the explanation fields present in an edit request.
type ExplanationInput struct {
	Text *string
	URL  *string
}

func (in ExplanationInput) empty() bool {
	return in.Text == nil && in.URL == nil
}

type ReviewService struct {
	ExamRepo     *repository.ExamRepository
	QuestionRepo *repository.QuestionRepository
	ResultRepo   *repository.ResultRepository
	Cache        SummaryCache
}

func NewReviewService(
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	resultRepo *repository.ResultRepository,
	cache SummaryCache,
) *ReviewService {
	return &ReviewService{
		ExamRepo:     examRepo,
		QuestionRepo: questionRepo,
		ResultRepo:   resultRepo,
		Cache:        cache,
	}
}

// Review returns a stored result with every answer next to the correct option and explanation.
// Only the owning student and teachers or staff may read it.
func (s *ReviewService) Review(ctx context.Context, caller *util.Claims, examID, resultID uint) (*model.ResultReview, error) {
	result, err := s.ResultRepo.FindForReview(ctx, examID, resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResultNotFound
		}
		return nil, err
	}

	if caller == nil || (caller.UserID != result.StudentID && !caller.IsTeacherOrStaff()) {
		return nil, util.ErrPermissionDenied
	}

	review := &model.ResultReview{
		ResultID:  result.ID,
		ExamID:    result.ExamID,
		Score:     result.TotalScore,
		Timestamp: result.CreatedAt,
		StudentID: result.StudentID,
		Answers:   make([]model.AnswerReview, 0, len(result.Answers)),
	}
	if result.Exam != nil {
		review.ExamTitle = result.Exam.Title
	}
	if result.Student != nil {
		review.StudentName = result.Student.Name
	}

	for _, a := range result.Answers {
		entry := model.AnswerReview{
			AnswerID:   a.ID,
			QuestionID: a.QuestionID,
			Text:       a.Text,
			Correct:    a.Correct,
		}
		if a.Option != nil {
			entry.Selected = &model.OptionRef{ID: a.Option.ID, Text: a.Option.Text}
		}
		if q := a.Question; q != nil {
			entry.Statement = q.Statement
			entry.Type = q.Type
			entry.ImageURL = q.ImageURL
			entry.ExplanationText = q.ExplanationText
			entry.ExplanationURL = q.ExplanationURL
			if correct := q.CorrectOption(); correct != nil {
				entry.CorrectOption = &model.OptionRef{ID: correct.ID, Text: correct.Text}
			}
		}
		review.Answers = append(review.Answers, entry)
	}

	return review, nil
}

// CompletedExams lists the student's results, newest first.
func (s *ReviewService) CompletedExams(ctx context.Context, studentID uint) ([]model.CompletedExam, error) {
	results, err := s.ResultRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	completed := make([]model.CompletedExam, 0, len(results))
	for _, r := range results {
		entry := model.CompletedExam{
			ResultID:  r.ID,
			ExamID:    r.ExamID,
			Score:     r.TotalScore,
			Timestamp: r.CreatedAt,
		}
		if r.Exam != nil {
			entry.Title = r.Exam.Title
			entry.Subject = r.Exam.Subject
			entry.Course = r.Exam.Course
		}
		completed = append(completed, entry)
	}
	return completed, nil
}

// MyResults lists the student's attempts at one exam.
func (s *ReviewService) MyResults(ctx context.Context, studentID, examID uint) ([]model.ResultEntry, error) {
	if _, err := s.ExamRepo.FindByID(ctx, examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	results, err := s.ResultRepo.ListByStudentAndExam(ctx, studentID, examID)
	if err != nil {
		return nil, err
	}
	entries := make([]model.ResultEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, model.ResultEntry{ResultID: r.ID, Score: r.TotalScore, Timestamp: r.CreatedAt})
	}
	return entries, nil
}

// UpdateExplanation overwrites the supplied explanation fields of a question.
func (s *ReviewService) UpdateExplanation(ctx context.Context, questionID uint, in ExplanationInput) (*model.Question, error) {
	if in.empty() {
		return nil, util.ErrEmptyExplanation
	}

	question, err := s.QuestionRepo.FindByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	fields := make(map[string]interface{}, 2)
	if in.Text != nil {
		question.ExplanationText = *in.Text
		fields["explanation_text"] = question.ExplanationText
	}
	if in.URL != nil {
		question.ExplanationURL = strings.TrimSpace(*in.URL)
		fields["explanation_url"] = question.ExplanationURL
	}
	if err := s.QuestionRepo.UpdateExplanation(ctx, questionID, fields); err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx, question.ExamID)
	logger.Log.Info("explanation updated", zap.Uint("question_id", questionID), zap.Uint("exam_id", question.ExamID))
	return question, nil
}
