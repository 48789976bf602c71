package controller

import (
	"tryout_backend/internal/model"
	"tryout_backend/internal/service"
	"tryout_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

// @Summary 获取测验的题目列表
// @Tags 题目
// @Produce json
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 404 {object} util.Response
// @Router /v1/tryouts/{id}/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	qs, err := c.Service.ListByTryout(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, qs)
}

// @Summary 创建题目
// @Tags 题目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Param body body model.QuestionCreateInput true "题目信息"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /v1/tryouts/{id}/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req model.QuestionCreateInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.Create(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Created(ctx, q)
}

// @Summary 获取题目详情
// @Tags 题目
// @Produce json
// @Param id path string true "题目ID"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /v1/questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	q, err := c.Service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary 更新题目（部分字段）
// @Tags 题目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "题目ID"
// @Param body body model.QuestionUpdateInput true "需要修改的字段"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /v1/questions/{id} [patch]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	var req model.QuestionUpdateInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary 删除题目
// @Tags 题目
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "题目ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /v1/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
