package controller

import (
	"net/http"

	"github.com/Mochytk/INF225-Informagicos/internal/service"
	"github.com/Mochytk/INF225-Informagicos/internal/util"
	"github.com/gin-gonic/gin"
)

// maxSubmissionBytes bounds the raw answer payload.
const maxSubmissionBytes = 1 << 20

type SubmissionController struct {
	Service *service.SubmissionService
}

func NewSubmissionController(s *service.SubmissionService) *SubmissionController {
	return &SubmissionController{Service: s}
}

// Submit godoc
// @Summary Submit answers for an exam
// @Description Body is a list of answers or an object with "answers"/"respuestas". Each answer carries
// @Description question_id (pregunta_id), optional option_id (opcion_id) and optional text (texto).
// @Tags submissions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param examId path int true "exam id"
// @Success 201 {object} util.Response{data=service.SubmissionResult}
// @Failure 400 {object} util.Response "invalid payload shape"
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exams/{examId}/submit [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	examID, ok := pathID(ctx, "examId")
	if !ok {
		return
	}

	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxSubmissionBytes)
	body, err := ctx.GetRawData()
	if err != nil {
		util.BadRequest(ctx, "could not read request body")
		return
	}

	result, err := c.Service.Submit(ctx.Request.Context(), claims.UserID, examID, body)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, result)
}
