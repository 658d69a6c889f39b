package controller

import (
	"github.com/Mochytk/INF225-Informagicos/internal/service"
	"github.com/Mochytk/INF225-Informagicos/internal/util"
	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Service *service.ReviewService
}

func NewReviewController(s *service.ReviewService) *ReviewController {
	return &ReviewController{Service: s}
}

// Review godoc
// @Summary Review a submitted result
// @Description Available to the student who submitted it and to teachers or staff.
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Param examId path int true "exam id"
// @Param resultId path int true "result id"
// @Success 200 {object} util.Response{data=model.ResultReview}
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exams/{examId}/results/{resultId}/review [get]
func (c *ReviewController) Review(ctx *gin.Context) {
	examID, ok := pathID(ctx, "examId")
	if !ok {
		return
	}
	resultID, ok := pathID(ctx, "resultId")
	if !ok {
		return
	}

	review, err := c.Service.Review(ctx.Request.Context(), util.GetUserFromContext(ctx), examID, resultID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, review)
}

// CompletedExams godoc
// @Summary Exams completed by the caller
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.CompletedExam}
// @Failure 401 {object} util.Response
// @Router /api/completed-exams [get]
func (c *ReviewController) CompletedExams(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	completed, err := c.Service.CompletedExams(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, completed)
}

// MyResults godoc
// @Summary The caller's attempts at one exam
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Param examId path int true "exam id"
// @Success 200 {object} util.Response{data=[]model.ResultEntry}
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exams/{examId}/results/mine [get]
func (c *ReviewController) MyResults(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	examID, ok := pathID(ctx, "examId")
	if !ok {
		return
	}

	entries, err := c.Service.MyResults(ctx.Request.Context(), claims.UserID, examID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// ExplanationRequest accepts the English keys and the older Spanish ones.
// swagger:model ExplanationRequest
type ExplanationRequest struct {
	ExplanationText  *string `json:"explanation_text"`
	ExplanationURL   *string `json:"explanation_url"`
	Texto            *string `json:"texto"`
	URL              *string `json:"url"`
	ExplicacionTexto *string `json:"explicacion_texto"`
	ExplicacionURL   *string `json:"explicacion_url"`
}

func firstSet(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func (r ExplanationRequest) input() service.ExplanationInput {
	return service.ExplanationInput{
		Text: firstSet(r.ExplanationText, r.ExplicacionTexto, r.Texto),
		URL:  firstSet(r.ExplanationURL, r.ExplicacionURL, r.URL),
	}
}

// UpdateExplanation godoc
// @Summary Edit a question explanation
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path int true "question id"
// @Param body body ExplanationRequest true "explanation text and/or url"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/questions/{questionId}/explanation [patch]
func (c *ReviewController) UpdateExplanation(ctx *gin.Context) {
	questionID, ok := pathID(ctx, "questionId")
	if !ok {
		return
	}

	var req ExplanationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.UpdateExplanation(ctx.Request.Context(), questionID, req.input())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"question_id":      question.ID,
		"explanation_text": question.ExplanationText,
		"explanation_url":  question.ExplanationURL,
	})
}
