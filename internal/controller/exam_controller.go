package controller

import (
	"net/http"

	"github.com/Mochytk/INF225-Informagicos/internal/config"
	"github.com/Mochytk/INF225-Informagicos/internal/dto"
	"github.com/Mochytk/INF225-Informagicos/internal/service"
	"github.com/Mochytk/INF225-Informagicos/internal/util"
	"github.com/gin-gonic/gin"
)

type ExamController struct {
	Service *service.ExamService
	Cfg     *config.Config
}

func NewExamController(s *service.ExamService, cfg *config.Config) *ExamController {
	return &ExamController{Service: s, Cfg: cfg}
}

// ListExams godoc
// @Summary List exams, newest first
// @Tags exams
// @Produce json
// @Success 200 {object} util.Response{data=[]dto.ExamListItem}
// @Router /api/exams [get]
func (c *ExamController) ListExams(ctx *gin.Context) {
	exams, err := c.Service.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

// GetExam godoc
// @Summary Exam with its questions
// @Description Correct options and explanations are only included for teachers and staff.
// @Tags exams
// @Produce json
// @Param examId path int true "exam id"
// @Success 200 {object} util.Response{data=dto.ExamResponse}
// @Failure 404 {object} util.Response
// @Router /api/exams/{examId} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	examID, ok := pathID(ctx, "examId")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	reveal := claims != nil && claims.IsTeacherOrStaff()
	exam, err := c.Service.Get(ctx.Request.Context(), examID, reveal)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// CreateExam godoc
// @Summary Create an exam
// @Tags exams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body dto.ExamRequest true "exam"
// @Success 201 {object} util.Response{data=dto.ExamListItem}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req dto.ExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var creatorID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		creatorID = claims.UserID
	}
	exam, err := c.Service.Create(ctx.Request.Context(), creatorID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, exam)
}

// UpdateExam godoc
// @Summary Update exam metadata
// @Tags exams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param examId path int true "exam id"
// @Param body body dto.ExamRequest true "exam"
// @Success 200 {object} util.Response{data=dto.ExamListItem}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exams/{examId} [put]
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	examID, ok := pathID(ctx, "examId")
	if !ok {
		return
	}
	var req dto.ExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.Service.Update(ctx.Request.Context(), examID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// DeleteExam godoc
// @Summary Delete an exam with its questions and results
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Param examId path int true "exam id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exams/{examId} [delete]
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	examID, ok := pathID(ctx, "examId")
	if !ok {
		return
	}
	if err := c.Service.Delete(ctx.Request.Context(), examID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateQuestion godoc
// @Summary Add a question to an exam
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param examId path int true "exam id"
// @Param body body dto.QuestionRequest true "question"
// @Success 201 {object} util.Response{data=dto.QuestionResponse}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exams/{examId}/questions [post]
func (c *ExamController) CreateQuestion(ctx *gin.Context) {
	examID, ok := pathID(ctx, "examId")
	if !ok {
		return
	}
	var req dto.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.CreateQuestion(ctx.Request.Context(), examID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Description Options are replaced when the request lists them.
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path int true "question id"
// @Param body body dto.QuestionRequest true "question"
// @Success 200 {object} util.Response{data=dto.QuestionResponse}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/questions/{questionId} [put]
func (c *ExamController) UpdateQuestion(ctx *gin.Context) {
	questionID, ok := pathID(ctx, "questionId")
	if !ok {
		return
	}
	var req dto.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.UpdateQuestion(ctx.Request.Context(), questionID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary Delete a question and the answers recorded against it
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path int true "question id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/questions/{questionId} [delete]
func (c *ExamController) DeleteQuestion(ctx *gin.Context) {
	questionID, ok := pathID(ctx, "questionId")
	if !ok {
		return
	}
	if err := c.Service.DeleteQuestion(ctx.Request.Context(), questionID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadQuestionImage godoc
// @Summary Upload the statement image of a question
// @Tags questions
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path int true "question id"
// @Param image formData file true "image file"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 413 {object} util.Response
// @Router /api/questions/{questionId}/image [post]
func (c *ExamController) UploadQuestionImage(ctx *gin.Context) {
	questionID, ok := pathID(ctx, "questionId")
	if !ok {
		return
	}
	file, err := ctx.FormFile("image")
	if err != nil {
		util.BadRequest(ctx, "image file is required")
		return
	}
	if limit := c.Cfg.Storage.MaxImageBytes; limit > 0 && file.Size > limit {
		util.Error(ctx, http.StatusRequestEntityTooLarge, "image is too large")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	url, err := c.Service.UploadQuestionImage(ctx.Request.Context(), questionID, src, file.Size)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"question_id": questionID, "image_url": url})
}
