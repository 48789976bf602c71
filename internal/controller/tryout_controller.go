package controller

import (
	"tryout_backend/internal/model"
	"tryout_backend/internal/service"
	"tryout_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TryoutController struct {
	Service *service.TryoutService
}

func NewTryoutController(svc *service.TryoutService) *TryoutController {
	return &TryoutController{Service: svc}
}

// @Summary 获取测验列表
// @Tags 测验
// @Produce json
// @Param title query string false "标题（子串，不区分大小写）"
// @Param startDate query string false "创建日期下界 YYYY-MM-DD"
// @Param endDate query string false "创建日期上界 YYYY-MM-DD（含当天）"
// @Param isPublic query bool false "是否公开"
// @Success 200 {object} util.Response{data=[]model.Tryout}
// @Failure 400 {object} util.Response
// @Router /v1/tryouts [get]
func (c *TryoutController) ListTryouts(ctx *gin.Context) {
	var filter model.TryoutFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ts, err := c.Service.List(ctx.Request.Context(), filter)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, ts)
}

// @Summary 获取测验详情
// @Tags 测验
// @Produce json
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.Tryout}
// @Failure 404 {object} util.Response
// @Router /v1/tryouts/{id} [get]
func (c *TryoutController) GetTryout(ctx *gin.Context) {
	t, err := c.Service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, t)
}

// @Summary 创建测验
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.TryoutCreateInput true "测验信息"
// @Success 201 {object} util.Response{data=model.Tryout}
// @Failure 400 {object} util.Response
// @Router /v1/tryouts [post]
func (c *TryoutController) CreateTryout(ctx *gin.Context) {
	var req model.TryoutCreateInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	t, err := c.Service.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Created(ctx, t)
}

// @Summary 更新测验（部分字段）
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Param body body model.TryoutUpdateInput true "需要修改的字段"
// @Success 200 {object} util.Response{data=model.Tryout}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /v1/tryouts/{id} [patch]
func (c *TryoutController) UpdateTryout(ctx *gin.Context) {
	var req model.TryoutUpdateInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	t, err := c.Service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, t)
}

// @Summary 删除测验及其题目
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /v1/tryouts/{id} [delete]
func (c *TryoutController) DeleteTryout(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 导出测验快照
// @Description 将测验及题目以 JSON 写入对象存储，返回访问地址
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.ExportResult}
// @Failure 404 {object} util.Response
// @Router /v1/tryouts/{id}/export [post]
func (c *TryoutController) ExportTryout(ctx *gin.Context) {
	res, err := c.Service.Export(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, res)
}
