package controller

import (
	"tryout_backend/internal/model"
	"tryout_backend/internal/service"
	"tryout_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScoreController struct {
	Service *service.ScoringService
}

func NewScoreController(svc *service.ScoringService) *ScoreController {
	return &ScoreController{Service: svc}
}

// @Summary 判分
// @Description 按提交的选项计算得分，不保存作答
// @Tags 测验
// @Accept json
// @Produce json
// @Param id path string true "测验ID"
// @Param body body model.ScoreRequest true "questionId -> 选项标签"
// @Success 200 {object} util.Response{data=model.ScoreResult}
// @Failure 404 {object} util.Response
// @Router /v1/tryouts/{id}/score [post]
func (c *ScoreController) ScoreTryout(ctx *gin.Context) {
	var req model.ScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Service.Score(ctx.Request.Context(), ctx.Param("id"), req.Answers)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, res)
}
