package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/Mochytk/INF225-Informagicos/internal/dto"
	"github.com/Mochytk/INF225-Informagicos/internal/model"
	"github.com/Mochytk/INF225-Informagicos/internal/repository"
	"github.com/Mochytk/INF225-Informagicos/internal/util"
	"github.com/Mochytk/INF225-Informagicos/pkg/logger"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExamService manages the exam catalogue and question authoring.
type ExamService struct {
	ExamRepo     *repository.ExamRepository
	QuestionRepo *repository.QuestionRepository
	TagRepo      *repository.TagRepository
	Storage      *StorageService
	Cache        SummaryCache
}

func NewExamService(
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	tagRepo *repository.TagRepository,
	storage *StorageService,
	cache SummaryCache,
) *ExamService {
	return &ExamService{
		ExamRepo:     examRepo,
		QuestionRepo: questionRepo,
		TagRepo:      tagRepo,
		Storage:      storage,
		Cache:        cache,
	}
}

func (s *ExamService) List(ctx context.Context) ([]dto.ExamListItem, error) {
	exams, err := s.ExamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ExamListItem, 0, len(exams))
	if err := copier.Copy(&resp, &exams); err != nil {
		return nil, err
	}
	return resp, nil
}

// Get returns the exam with its questions. Correct flags and explanations are only
// included when revealAnswers is set.
func (s *ExamService) Get(ctx context.Context, id uint, revealAnswers bool) (*dto.ExamResponse, error) {
	exam, err := s.ExamRepo.FindWithQuestions(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	var resp dto.ExamResponse
	if err := copier.Copy(&resp, exam); err != nil {
		return nil, err
	}
	resp.Questions = make([]dto.QuestionResponse, 0, len(exam.Questions))
	for i := range exam.Questions {
		q, err := toQuestionResponse(&exam.Questions[i], revealAnswers)
		if err != nil {
			return nil, err
		}
		resp.Questions = append(resp.Questions, *q)
	}
	return &resp, nil
}

func toQuestionResponse(q *model.Question, revealAnswers bool) (*dto.QuestionResponse, error) {
	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, q); err != nil {
		return nil, err
	}
	if resp.Options == nil {
		resp.Options = []dto.OptionResponse{}
	}
	if resp.Tags == nil {
		resp.Tags = []dto.TagResponse{}
	}
	if !revealAnswers {
		for i := range resp.Options {
			resp.Options[i].IsCorrect = nil
		}
		resp.ExplanationText = ""
		resp.ExplanationURL = ""
	}
	return &resp, nil
}

func (s *ExamService) Create(ctx context.Context, creatorID uint, req dto.ExamRequest) (*dto.ExamListItem, error) {
	exam := &model.Exam{
		Title:   strings.TrimSpace(req.Title),
		Subject: req.Subject,
		Course:  req.Course,
	}
	if creatorID != 0 {
		exam.CreatorID = &creatorID
	}
	if err := s.ExamRepo.Create(ctx, exam); err != nil {
		return nil, err
	}

	var resp dto.ExamListItem
	if err := copier.Copy(&resp, exam); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *ExamService) Update(ctx context.Context, id uint, req dto.ExamRequest) (*dto.ExamListItem, error) {
	exam, err := s.findExam(ctx, id)
	if err != nil {
		return nil, err
	}
	exam.Title = strings.TrimSpace(req.Title)
	exam.Subject = req.Subject
	exam.Course = req.Course
	if err := s.ExamRepo.Update(ctx, exam); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx, id)

	var resp dto.ExamListItem
	if err := copier.Copy(&resp, exam); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes the exam and everything recorded against it.
func (s *ExamService) Delete(ctx context.Context, id uint) error {
	if _, err := s.findExam(ctx, id); err != nil {
		return err
	}
	if err := s.ExamRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx, id)
	logger.Log.Info("exam deleted", zap.Uint("exam_id", id))
	return nil
}

func (s *ExamService) findExam(ctx context.Context, id uint) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) findQuestion(ctx context.Context, id uint) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

func validateQuestion(req *dto.QuestionRequest) error {
	if !req.Type.Valid() {
		return util.ErrInvalidQuestionType
	}
	if req.Type == model.QuestionTypeSingleChoice && len(req.Options) == 0 {
		return util.ErrMissingOptions
	}
	return nil
}

func (s *ExamService) resolveTags(ctx context.Context, ids []uint) ([]model.Tag, error) {
	if len(ids) == 0 {
		return []model.Tag{}, nil
	}
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	tags, err := s.TagRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		return nil, util.ErrUnknownTag
	}
	return tags, nil
}

func buildOptions(reqs []dto.OptionRequest) []model.Option {
	options := make([]model.Option, 0, len(reqs))
	for _, o := range reqs {
		options = append(options, model.Option{Text: strings.TrimSpace(o.Text), IsCorrect: o.IsCorrect})
	}
	return options
}

func (s *ExamService) CreateQuestion(ctx context.Context, examID uint, req dto.QuestionRequest) (*dto.QuestionResponse, error) {
	if _, err := s.findExam(ctx, examID); err != nil {
		return nil, err
	}
	if err := validateQuestion(&req); err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}

	difficulty := strings.TrimSpace(req.Difficulty)
	if difficulty == "" {
		difficulty = model.DefaultDifficulty
	}
	question := &model.Question{
		ExamID:          examID,
		Statement:       req.Statement,
		Difficulty:      difficulty,
		Type:            req.Type,
		Position:        req.Position,
		ExplanationText: req.ExplanationText,
		ExplanationURL:  strings.TrimSpace(req.ExplanationURL),
		Options:         buildOptions(req.Options),
		Tags:            tags,
	}
	if err := s.QuestionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx, examID)
	return toQuestionResponse(question, true)
}

// UpdateQuestion rewrites the question; options are replaced only when the request lists them.
func (s *ExamService) UpdateQuestion(ctx context.Context, id uint, req dto.QuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.findQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateQuestion(&req); err != nil {
		if !errors.Is(err, util.ErrMissingOptions) || req.Options != nil || len(question.Options) == 0 {
			return nil, err
		}
	}

	var tags []model.Tag
	if req.TagIDs != nil {
		if tags, err = s.resolveTags(ctx, req.TagIDs); err != nil {
			return nil, err
		}
	}

	question.Statement = req.Statement
	question.Type = req.Type
	question.Position = req.Position
	question.ExplanationText = req.ExplanationText
	question.ExplanationURL = strings.TrimSpace(req.ExplanationURL)
	if d := strings.TrimSpace(req.Difficulty); d != "" {
		question.Difficulty = d
	}
	replaceOptions := req.Options != nil
	if replaceOptions {
		question.Options = buildOptions(req.Options)
	}

	if err := s.QuestionRepo.Update(ctx, question, replaceOptions, tags); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx, question.ExamID)
	return toQuestionResponse(question, true)
}

func (s *ExamService) DeleteQuestion(ctx context.Context, id uint) error {
	question, err := s.findQuestion(ctx, id)
	if err != nil {
		return err
	}
	if err := s.QuestionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx, question.ExamID)
	return nil
}

// UploadQuestionImage stores an image for the question statement and records its URL.
// The content type is sniffed from the data, not taken from the client.
func (s *ExamService) UploadQuestionImage(ctx context.Context, id uint, reader io.Reader, size int64) (string, error) {
	question, err := s.findQuestion(ctx, id)
	if err != nil {
		return "", err
	}

	contentType, body, err := util.SniffImage(reader)
	if err != nil {
		return "", err
	}

	key := path.Join("questions", time.Now().Format("200601"), uuid.New().String()+util.ExtensionFor(contentType))
	url, err := s.Storage.Upload(ctx, key, body, size, contentType)
	if err != nil {
		return "", fmt.Errorf("upload question image: %w", err)
	}
	if err := s.QuestionRepo.UpdateImage(ctx, id, url); err != nil {
		return "", err
	}

	logger.Log.Info("question image stored",
		zap.Uint("question_id", id),
		zap.Uint("exam_id", question.ExamID),
		zap.String("key", key),
	)
	return url, nil
}
