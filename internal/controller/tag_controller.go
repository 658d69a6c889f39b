package controller

import (
	"github.com/Mochytk/INF225-Informagicos/internal/dto"
	"github.com/Mochytk/INF225-Informagicos/internal/service"
	"github.com/Mochytk/INF225-Informagicos/internal/util"
	"github.com/gin-gonic/gin"
)

type TagController struct {
	Service *service.TagService
}

func NewTagController(s *service.TagService) *TagController {
	return &TagController{Service: s}
}

// ListTags godoc
// @Summary List tags by name
// @Tags tags
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Tag}
// @Router /api/tags [get]
func (c *TagController) ListTags(ctx *gin.Context) {
	tags, err := c.Service.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, tags)
}

// CreateTag godoc
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body dto.TagRequest true "tag"
// @Success 201 {object} util.Response{data=model.Tag}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response "duplicate name"
// @Router /api/tags [post]
func (c *TagController) CreateTag(ctx *gin.Context) {
	var req dto.TagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tag, err := c.Service.Create(ctx.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, tag)
}
