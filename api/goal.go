package api

import (
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GoalHandler 理财目标处理器
type GoalHandler struct {
	notifier service.GoalNotifier
}

// NewGoalHandler 创建理财目标处理器，notifier 为 nil 时不发送达成通知
func NewGoalHandler(notifier service.GoalNotifier) *GoalHandler {
	return &GoalHandler{notifier: notifier}
}

func (h *GoalHandler) goals() *service.GoalService {
	return service.NewGoalService(database.DB, h.notifier)
}

// GoalRequest 创建/更新目标请求
type GoalRequest struct {
	Name          string              `json:"name" binding:"required,max=100" example:"应急基金"`
	Description   string              `json:"description" binding:"max=100"`
	TargetAmount  decimal.Decimal     `json:"target_amount" swaggertype:"number" example:"10000"`
	CurrentAmount decimal.Decimal     `json:"current_amount" swaggertype:"number" example:"0"`
	Deadline      string              `json:"deadline" example:"2024-12-31"`
	GoalType      models.GoalType     `json:"goal_type" example:"SAVINGS"`
	Priority      models.GoalPriority `json:"priority" example:"MEDIUM"`
}

func (r *GoalRequest) model() (*models.Goal, error) {
	deadline, err := parseDate("截止日期", r.Deadline)
	if err != nil {
		return nil, err
	}
	return &models.Goal{
		Name:          r.Name,
		Description:   r.Description,
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
		Deadline:      deadline,
		GoalType:      r.GoalType,
		Priority:      r.Priority,
	}, nil
}

// ContributeRequest 存入请求
type ContributeRequest struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"number" example:"100"`
}

// GoalView 目标及完成百分比
type GoalView struct {
	models.Goal
	Progress decimal.Decimal `json:"progress" swaggertype:"number"`
}

func goalView(g *models.Goal) GoalView {
	return GoalView{Goal: *g, Progress: g.Progress()}
}

// Create 创建目标
// @Summary 创建理财目标
// @Tags 理财目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GoalRequest true "目标信息"
// @Success 200 {object} Response{data=GoalView} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	g, err := req.model()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.goals().CreateGoal(middleware.GetCurrentUserID(c), g); err != nil {
		ServiceError(c, err, "创建目标失败")
		return
	}
	SuccessWithMessage(c, "创建成功", goalView(g))
}

// List 列出目标
// @Summary 获取理财目标列表
// @Description 按优先级、截止日期排序
// @Tags 理财目标
// @Produce json
// @Security BearerAuth
// @Param status query string false "状态 IN_PROGRESS/ACHIEVED/FAILED"
// @Success 200 {object} Response{data=[]GoalView} "获取成功"
// @Router /api/v1/goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	list, err := h.goals().ListGoals(middleware.GetCurrentUserID(c), models.GoalStatus(c.Query("status")))
	if err != nil {
		ServiceError(c, err, "获取目标失败")
		return
	}
	views := make([]GoalView, 0, len(list))
	for i := range list {
		views = append(views, goalView(&list[i]))
	}
	Success(c, views)
}

// Get 获取目标
// @Summary 获取理财目标详情
// @Tags 理财目标
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Success 200 {object} Response{data=GoalView} "获取成功"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/v1/goals/{id} [get]
func (h *GoalHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	g, err := h.goals().GetGoal(middleware.GetCurrentUserID(c), id)
	if err != nil {
		ServiceError(c, err, "获取目标失败")
		return
	}
	Success(c, goalView(g))
}

// Update 更新目标
// @Summary 更新理财目标
// @Tags 理财目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Param request body GoalRequest true "目标信息"
// @Success 200 {object} Response{data=GoalView} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/v1/goals/{id} [put]
func (h *GoalHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	in, err := req.model()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	g, err := h.goals().UpdateGoal(middleware.GetCurrentUserID(c), id, in)
	if err != nil {
		ServiceError(c, err, "更新目标失败")
		return
	}
	SuccessWithMessage(c, "更新成功", goalView(g))
}

// Delete 删除目标
// @Summary 删除理财目标
// @Tags 理财目标
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/v1/goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.goals().DeleteGoal(middleware.GetCurrentUserID(c), id); err != nil {
		ServiceError(c, err, "删除目标失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// Contribute 向目标存入金额
// @Summary 向目标存入金额
// @Description 达到目标金额时自动标记为 ACHIEVED 并发送通知邮件
// @Tags 理财目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Param request body ContributeRequest true "存入金额"
// @Success 200 {object} Response{data=GoalView} "存入成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/v1/goals/{id}/contribute [post]
func (h *GoalHandler) Contribute(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	g, err := h.goals().Contribute(middleware.GetCurrentUserID(c), id, req.Amount)
	if err != nil {
		ServiceError(c, err, "存入失败")
		return
	}
	SuccessWithMessage(c, "存入成功", goalView(g))
}
