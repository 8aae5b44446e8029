package api

import (
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 收支类别处理器
type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CategoryRequest 创建/更新类别请求，更新时整体替换
type CategoryRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100" example:"餐饮"`
	ParentID     *uint  `json:"parent_id"`
	Description  string `json:"description"`
	CategoryType string `json:"category_type" binding:"omitempty,max=50" example:"EXPENSE"`
	Color        string `json:"color" binding:"omitempty,max=7" example:"#ef4444"`
	Icon         string `json:"icon" binding:"omitempty,max=50"`
}

func (r *CategoryRequest) model() *models.Category {
	return &models.Category{
		Name:         r.Name,
		ParentID:     r.ParentID,
		Description:  r.Description,
		CategoryType: r.CategoryType,
		Color:        r.Color,
		Icon:         r.Icon,
	}
}

// List 列出类别
// @Summary 获取类别列表
// @Description 获取当前用户的类别，支持按名称模糊搜索
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Param name query string false "类别名称（模糊匹配）"
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := ledger().ListCategories(middleware.GetCurrentUserID(c), c.Query("name"))
	if err != nil {
		ServiceError(c, err, "查询失败")
		return
	}
	Success(c, list)
}

// Create 创建类别
// @Summary 创建类别
// @Description 名称在同一用户下唯一，颜色缺省为灰色
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "创建成功"
// @Failure 400 {object} Response "参数错误或类别名称已存在"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	category := req.model()
	if err := ledger().CreateCategory(middleware.GetCurrentUserID(c), category); err != nil {
		ServiceError(c, err, "创建失败")
		return
	}
	SuccessWithMessage(c, "创建成功", category)
}

// Get 获取类别
// @Summary 获取类别详情
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Success 200 {object} Response{data=models.Category} "获取成功"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	category, err := ledger().GetCategory(middleware.GetCurrentUserID(c), id)
	if err != nil {
		ServiceError(c, err, "查询失败")
		return
	}
	Success(c, category)
}

// Update 更新类别
// @Summary 更新类别
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Param request body CategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "更新成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	category, err := ledger().UpdateCategory(middleware.GetCurrentUserID(c), id, req.model())
	if err != nil {
		ServiceError(c, err, "更新失败")
		return
	}
	SuccessWithMessage(c, "更新成功", category)
}

// Delete 删除类别
// @Summary 删除类别
// @Description 引用该类别的交易和预算变为未分类
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ledger().DeleteCategory(middleware.GetCurrentUserID(c), id); err != nil {
		ServiceError(c, err, "删除失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// Analysis 类别分析
// @Summary 类别分析
// @Description 近 6 个月的收支及当前有效预算进度
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Success 200 {object} Response{data=service.CategoryAnalysis} "获取成功"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id}/analysis [get]
func (h *CategoryHandler) Analysis(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	analysis, err := aggregation().CategoryAnalysis(middleware.GetCurrentUserID(c), id, today())
	if err != nil {
		ServiceError(c, err, "获取类别分析失败")
		return
	}
	Success(c, analysis)
}
