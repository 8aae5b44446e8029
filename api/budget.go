package api

import (
	"strconv"

	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BudgetHandler 预算处理器
type BudgetHandler struct{}

// NewBudgetHandler 创建预算处理器
func NewBudgetHandler() *BudgetHandler {
	return &BudgetHandler{}
}

// BudgetRequest 创建/更新预算请求，category_id 为空表示全部支出
type BudgetRequest struct {
	Name       string              `json:"name" binding:"required,max=100" example:"餐饮预算"`
	CategoryID *uint               `json:"category_id"`
	Amount     decimal.Decimal     `json:"amount" swaggertype:"number" example:"500"`
	Period     models.BudgetPeriod `json:"period" example:"MONTHLY"`
	StartDate  string              `json:"start_date" example:"2024-01-01"`
	EndDate    string              `json:"end_date" example:"2024-12-31"`
	Rollover   bool                `json:"rollover"`
}

func (r *BudgetRequest) model() (*models.Budget, error) {
	start, err := parseDate("开始日期", r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("结束日期", r.EndDate)
	if err != nil {
		return nil, err
	}
	b := &models.Budget{
		Name:       r.Name,
		CategoryID: r.CategoryID,
		Amount:     r.Amount,
		Period:     r.Period,
		EndDate:    end,
		Rollover:   r.Rollover,
	}
	if start != nil {
		b.StartDate = *start
	}
	return b, nil
}

// Create 创建预算
// @Summary 创建预算
// @Description 开始日期缺省为本月 1 日，周期缺省为 MONTHLY
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BudgetRequest true "预算信息"
// @Success 200 {object} Response{data=models.Budget} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	b, err := req.model()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := ledger().CreateBudget(middleware.GetCurrentUserID(c), b); err != nil {
		ServiceError(c, err, "创建预算失败")
		return
	}
	SuccessWithMessage(c, "创建成功", b)
}

// List 列出预算
// @Summary 获取预算列表
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Param active query bool false "仅返回今天生效的预算"
// @Success 200 {object} Response{data=[]models.Budget} "获取成功"
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	active, _ := strconv.ParseBool(c.Query("active"))
	list, err := ledger().ListBudgets(middleware.GetCurrentUserID(c), active)
	if err != nil {
		ServiceError(c, err, "获取预算失败")
		return
	}
	Success(c, list)
}

// Get 获取预算
// @Summary 获取预算详情
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Success 200 {object} Response{data=models.Budget} "获取成功"
// @Failure 404 {object} Response "预算不存在"
// @Router /api/v1/budgets/{id} [get]
func (h *BudgetHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := ledger().GetBudget(middleware.GetCurrentUserID(c), id)
	if err != nil {
		ServiceError(c, err, "获取预算失败")
		return
	}
	Success(c, b)
}

// Update 更新预算
// @Summary 更新预算
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Param request body BudgetRequest true "预算信息"
// @Success 200 {object} Response{data=models.Budget} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "预算不存在"
// @Router /api/v1/budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	in, err := req.model()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	b, err := ledger().UpdateBudget(middleware.GetCurrentUserID(c), id, in)
	if err != nil {
		ServiceError(c, err, "更新预算失败")
		return
	}
	SuccessWithMessage(c, "更新成功", b)
}

// Delete 删除预算
// @Summary 删除预算
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "预算不存在"
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ledger().DeleteBudget(middleware.GetCurrentUserID(c), id); err != nil {
		ServiceError(c, err, "删除预算失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// Progress 预算执行进度
// @Summary 预算执行进度
// @Description 从开始日期到今天（或结束日期）的已用金额、剩余金额和百分比
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Success 200 {object} Response{data=service.BudgetProgress} "获取成功"
// @Failure 404 {object} Response "预算不存在"
// @Router /api/v1/budgets/{id}/progress [get]
func (h *BudgetHandler) Progress(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := ledger().GetBudget(userID, id)
	if err != nil {
		ServiceError(c, err, "获取预算失败")
		return
	}
	progress, err := aggregation().BudgetProgress(userID, b, today())
	if err != nil {
		ServiceError(c, err, "计算预算进度失败")
		return
	}
	Success(c, progress)
}
