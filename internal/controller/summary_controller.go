package controller

import (
	"github.com/Mochytk/INF225-Informagicos/internal/service"
	"github.com/Mochytk/INF225-Informagicos/internal/util"
	"github.com/gin-gonic/gin"
)

type SummaryController struct {
	Service *service.SummaryService
}

func NewSummaryController(s *service.SummaryService) *SummaryController {
	return &SummaryController{Service: s}
}

// Summary godoc
// @Summary Exam results summary
// @Description Correctness grouped by question type, question and tag, plus participant count.
// @Tags analytics
// @Produce json
// @Security ApiKeyAuth
// @Param examId path int true "exam id"
// @Success 200 {object} util.Response{data=model.ExamSummary}
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exams/{examId}/results/summary [get]
func (c *SummaryController) Summary(ctx *gin.Context) {
	examID, ok := pathID(ctx, "examId")
	if !ok {
		return
	}

	summary, err := c.Service.Summarize(ctx.Request.Context(), examID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// Breakdown godoc
// @Summary Answer distribution of one question
// @Tags analytics
// @Produce json
// @Security ApiKeyAuth
// @Param examId path int true "exam id"
// @Param questionId path int true "question id"
// @Success 200 {object} util.Response{data=model.QuestionBreakdown}
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exams/{examId}/questions/{questionId}/breakdown [get]
func (c *SummaryController) Breakdown(ctx *gin.Context) {
	examID, ok := pathID(ctx, "examId")
	if !ok {
		return
	}
	questionID, ok := pathID(ctx, "questionId")
	if !ok {
		return
	}

	breakdown, err := c.Service.Breakdown(ctx.Request.Context(), examID, questionID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, breakdown)
}
