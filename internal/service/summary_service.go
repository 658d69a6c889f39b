package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Mochytk/INF225-Informagicos/internal/model"
	"github.com/Mochytk/INF225-Informagicos/internal/repository"
	"github.com/Mochytk/INF225-Informagicos/internal/util"
	"github.com/Mochytk/INF225-Informagicos/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

type SummaryService struct {
	ExamRepo     *repository.ExamRepository
	QuestionRepo *repository.QuestionRepository
	ResultRepo   *repository.ResultRepository
	SummaryRepo  *repository.SummaryRepository
	Cache        SummaryCache
}

func NewSummaryService(
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	resultRepo *repository.ResultRepository,
	summaryRepo *repository.SummaryRepository,
	cache SummaryCache,
) *SummaryService {
	return &SummaryService{
		ExamRepo:     examRepo,
		QuestionRepo: questionRepo,
		ResultRepo:   resultRepo,
		SummaryRepo:  summaryRepo,
		Cache:        cache,
	}
}

// Summarize aggregates every answer recorded against the exam by type, question and tag.
func (s *SummaryService) Summarize(ctx context.Context, examID uint) (*model.ExamSummary, error) {
	ctx, span := tracing.Tracer().Start(ctx, "SummaryService.Summarize")
	defer span.End()
	span.SetAttributes(attribute.Int64("exam.id", int64(examID)))

	if cached, ok := s.Cache.Get(ctx, examID); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}

	// read before any aggregate so a concurrent invalidation makes the Set below a no-op
	version := s.Cache.Version(ctx, examID)

	exam, err := s.ExamRepo.FindByID(ctx, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	questions, err := s.QuestionRepo.ListByExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	counts, err := s.SummaryRepo.QuestionAnswerCounts(ctx, examID)
	if err != nil {
		return nil, err
	}
	participants, err := s.ResultRepo.CountParticipants(ctx, examID)
	if err != nil {
		return nil, err
	}

	summary := BuildSummary(exam, questions, counts, participants)
	s.Cache.Set(ctx, summary, version)
	return summary, nil
}

// BuildSummary groups the per-question counters of an exam. It performs no I/O.
func BuildSummary(exam *model.Exam, questions []model.Question, counts []model.QuestionAnswerCount, participants int64) *model.ExamSummary {
	countByQuestion := make(map[uint]model.QuestionAnswerCount, len(counts))
	for _, c := range counts {
		countByQuestion[c.QuestionID] = c
	}

	summary := &model.ExamSummary{
		ExamID:           exam.ID,
		Title:            exam.Title,
		ParticipantCount: participants,
		ByType:           []model.TypeSummary{},
		ByQuestion:       make([]model.QuestionSummary, 0, len(questions)),
		ByTag:            []model.TagSummary{},
		GeneratedAt:      time.Now(),
	}

	typeIndex := make(map[model.QuestionType]int)
	tagIndex := make(map[uint]int) // 0 is the untagged bucket

	for _, q := range questions {
		c := countByQuestion[q.ID]

		summary.ByQuestion = append(summary.ByQuestion, model.QuestionSummary{
			QuestionID:       q.ID,
			Statement:        q.Statement,
			Type:             q.Type,
			ExplanationText:  q.ExplanationText,
			ExplanationURL:   q.ExplanationURL,
			CorrectnessStats: stats(c.Answered, c.Correct),
		})

		i, ok := typeIndex[q.Type]
		if !ok {
			i = len(summary.ByType)
			typeIndex[q.Type] = i
			summary.ByType = append(summary.ByType, model.TypeSummary{Type: q.Type})
		}
		summary.ByType[i].Questions++
		summary.ByType[i].Answered += c.Answered
		summary.ByType[i].Correct += c.Correct

		if len(q.Tags) == 0 {
			addTag(summary, tagIndex, nil, model.NoTagBucket, c)
			continue
		}
		for _, tag := range q.Tags {
			id := tag.ID
			addTag(summary, tagIndex, &id, tag.Name, c)
		}
	}

	for i := range summary.ByType {
		t := &summary.ByType[i]
		t.PctCorrect = util.Percentage(t.Correct, t.Answered)
	}
	for i := range summary.ByTag {
		t := &summary.ByTag[i]
		t.PctCorrect = util.Percentage(t.Correct, t.Answered)
	}

	sort.SliceStable(summary.ByType, func(i, j int) bool {
		return summary.ByType[i].Type < summary.ByType[j].Type
	})
	sort.SliceStable(summary.ByTag, func(i, j int) bool {
		a, b := summary.ByTag[i], summary.ByTag[j]
		if a.Answered != b.Answered {
			return a.Answered > b.Answered
		}
		return a.Tag < b.Tag
	})

	return summary
}

func addTag(summary *model.ExamSummary, index map[uint]int, id *uint, name string, c model.QuestionAnswerCount) {
	var key uint
	if id != nil {
		key = *id
	}
	i, ok := index[key]
	if !ok {
		i = len(summary.ByTag)
		index[key] = i
		summary.ByTag = append(summary.ByTag, model.TagSummary{TagID: id, Tag: name})
	}
	summary.ByTag[i].Answered += c.Answered
	summary.ByTag[i].Correct += c.Correct
}

func stats(answered, correct int64) model.CorrectnessStats {
	return model.CorrectnessStats{
		Answered:   answered,
		Correct:    correct,
		PctCorrect: util.Percentage(correct, answered),
	}
}

// Breakdown reports how the answers to one question of the exam spread over its options.
func (s *SummaryService) Breakdown(ctx context.Context, examID, questionID uint) (*model.QuestionBreakdown, error) {
	ctx, span := tracing.Tracer().Start(ctx, "SummaryService.Breakdown")
	defer span.End()
	span.SetAttributes(attribute.Int64("exam.id", int64(examID)), attribute.Int64("question.id", int64(questionID)))

	question, err := s.QuestionRepo.FindInExam(ctx, examID, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	totals, err := s.SummaryRepo.QuestionTotals(ctx, questionID)
	if err != nil {
		return nil, err
	}
	optionCounts, err := s.SummaryRepo.OptionAnswerCounts(ctx, questionID)
	if err != nil {
		return nil, err
	}

	return BuildBreakdown(question, totals, optionCounts), nil
}

// BuildBreakdown computes option shares against every answer to the question, including
// answers that chose no option.
func BuildBreakdown(q *model.Question, totals model.QuestionAnswerCount, optionCounts []model.OptionAnswerCount) *model.QuestionBreakdown {
	perOption := make(map[uint]int64, len(optionCounts))
	for _, c := range optionCounts {
		perOption[c.OptionID] = c.Total
	}

	breakdown := &model.QuestionBreakdown{
		QuestionID:    q.ID,
		Text:          q.Statement,
		Type:          q.Type,
		TotalAnswered: totals.Answered,
		PctCorrect:    util.Percentage(totals.Correct, totals.Answered),
		Options:       make([]model.OptionBreakdown, 0, len(q.Options)),
	}
	for _, o := range q.Options {
		n := perOption[o.ID]
		breakdown.Options = append(breakdown.Options, model.OptionBreakdown{
			OptionID:   o.ID,
			Text:       o.Text,
			IsCorrect:  o.IsCorrect,
			Count:      n,
			Percentage: util.Percentage(n, totals.Answered),
		})
	}
	return breakdown
}
