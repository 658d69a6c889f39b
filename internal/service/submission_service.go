package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Mochytk/INF225-Informagicos/internal/model"
	"github.com/Mochytk/INF225-Informagicos/internal/repository"
	"github.com/Mochytk/INF225-Informagicos/internal/util"
	"github.com/Mochytk/INF225-Informagicos/pkg/logger"
	"github.com/Mochytk/INF225-Informagicos/pkg/monitoring"
	"github.com/Mochytk/INF225-Informagicos/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaxScore is the score of a fully correct submission.
const MaxScore = 1000

// SubmissionResult is returned to the student after grading.
type SubmissionResult struct {
	ResultID  uint        `json:"result_id"`
	Score     int         `json:"score"`
	Timestamp time.Time   `json:"timestamp"`
	Errors    []ItemError `json:"errors,omitempty"`
}

type SubmissionService struct {
	ExamRepo     *repository.ExamRepository
	QuestionRepo *repository.QuestionRepository
	ResultRepo   *repository.ResultRepository
	Cache        SummaryCache
}

func NewSubmissionService(
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	resultRepo *repository.ResultRepository,
	cache SummaryCache,
) *SubmissionService {
	return &SubmissionService{
		ExamRepo:     examRepo,
		QuestionRepo: questionRepo,
		ResultRepo:   resultRepo,
		Cache:        cache,
	}
}

// Submit grades body for the student and stores one Result with an Answer per accepted item.
// Item-level problems are reported in the returned errors and never abort the submission.
func (s *SubmissionService) Submit(ctx context.Context, studentID, examID uint, body []byte) (*SubmissionResult, error) {
	ctx, span := tracing.Tracer().Start(ctx, "SubmissionService.Submit")
	defer span.End()
	span.SetAttributes(attribute.Int64("exam.id", int64(examID)), attribute.Int64("student.id", int64(studentID)))

	if _, err := s.ExamRepo.FindByID(ctx, examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	items, err := DecodeSubmissionPayload(body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	questions, err := s.QuestionRepo.ListByExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	answers, itemErrors := gradeItems(items, questions)
	score := computeScore(answers, len(questions))

	result := &model.Result{
		ExamID:     examID,
		StudentID:  studentID,
		TotalScore: score,
		Answers:    answers,
	}
	if err := s.ResultRepo.CreateWithAnswers(ctx, result); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("store result: %w", err)
	}

	s.Cache.Invalidate(ctx, examID)
	monitoring.ObserveSubmission(examID, score, len(itemErrors))
	span.SetAttributes(attribute.Int("submission.score", score), attribute.Int("submission.errors", len(itemErrors)))

	logger.Log.Info("submission graded",
		zap.Uint("exam_id", examID),
		zap.Uint("student_id", studentID),
		zap.Uint("result_id", result.ID),
		zap.Int("score", score),
		zap.Int("answers", len(answers)),
		zap.Int("item_errors", len(itemErrors)),
	)

	return &SubmissionResult{
		ResultID:  result.ID,
		Score:     score,
		Timestamp: result.CreatedAt,
		Errors:    itemErrors,
	}, nil
}

// gradeItems folds the raw items into the answers to store and the per-item errors.
func gradeItems(items []json.RawMessage, questions []model.Question) ([]model.Answer, []ItemError) {
	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	var answers []model.Answer
	var itemErrors []ItemError
	fail := func(index int, err error) {
		itemErrors = append(itemErrors, ItemError{Index: index, Error: err.Error()})
	}

	for index, raw := range items {
		fields, err := decodeAnswerItem(raw)
		if err != nil {
			fail(index, err)
			continue
		}

		questionID, err := fields.questionID()
		if err != nil {
			fail(index, err)
			continue
		}

		question, ok := byID[questionID]
		if !ok {
			fail(index, fmt.Errorf("question %d does not belong to this exam", questionID))
			continue
		}

		optionID, err := fields.optionID()
		if err != nil {
			fail(index, err)
			continue
		}

		text, err := fields.text()
		if err != nil {
			fail(index, err)
			continue
		}

		answer := model.Answer{QuestionID: question.ID, Text: text}
		if optionID != nil {
			option := findOption(question, *optionID)
			if option == nil {
				fail(index, fmt.Errorf("option %d does not belong to question %d", *optionID, question.ID))
			} else {
				answer.OptionID = &option.ID
				answer.Correct = option.IsCorrect
			}
		}
		answers = append(answers, answer)
	}

	return answers, itemErrors
}

func findOption(q *model.Question, optionID uint) *model.Option {
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return &q.Options[i]
		}
	}
	return nil
}

// computeScore is floor(C/N*1000) over distinct correctly answered questions.
func computeScore(answers []model.Answer, questionCount int) int {
	if questionCount <= 0 {
		return 0
	}
	correct := make(map[uint]struct{})
	for _, a := range answers {
		if a.Correct {
			correct[a.QuestionID] = struct{}{}
		}
	}
	score := len(correct) * MaxScore / questionCount
	if score > MaxScore {
		score = MaxScore
	}
	return score
}
