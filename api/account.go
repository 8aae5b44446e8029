package api

import (
	"strconv"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AccountHandler 账户处理器
type AccountHandler struct{}

// NewAccountHandler 创建账户处理器
func NewAccountHandler() *AccountHandler {
	return &AccountHandler{}
}

func ledger() *service.LedgerService {
	return service.NewLedgerService(database.DB)
}

func aggregation() *service.AggregationService {
	return service.NewAggregationService(database.DB)
}

// CreateAccountRequest 创建账户请求
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required,max=100" example:"招商银行"`
	AccountType    models.AccountType `json:"account_type" binding:"required" example:"BANK"`
	OpeningBalance decimal.Decimal    `json:"opening_balance" swaggertype:"number" example:"1000.00"`
	Currency       string             `json:"currency" example:"USD"`
	IsDefault      bool               `json:"is_default"`
	Icon           string             `json:"icon" example:"bank"`
	Color          string             `json:"color" binding:"omitempty,max=7" example:"#2563eb"`
}

// UpdateAccountRequest 更新账户请求，未提供的字段保持不变
type UpdateAccountRequest struct {
	Name           *string             `json:"name" binding:"omitempty,max=100"`
	AccountType    *models.AccountType `json:"account_type"`
	OpeningBalance *decimal.Decimal    `json:"opening_balance" swaggertype:"number"`
	Currency       *string             `json:"currency"`
	IsDefault      *bool               `json:"is_default"`
	Icon           *string             `json:"icon"`
	Color          *string             `json:"color" binding:"omitempty,max=7"`
}

// Create 创建账户
// @Summary 创建账户
// @Description 创建资金账户，当前余额等于期初余额
// @Tags 账户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAccountRequest true "账户信息"
// @Success 200 {object} Response{data=models.Account} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	account := models.Account{
		Name:           req.Name,
		AccountType:    req.AccountType,
		OpeningBalance: req.OpeningBalance,
		Currency:       req.Currency,
		IsDefault:      req.IsDefault,
		Icon:           req.Icon,
		Color:          req.Color,
	}
	if err := ledger().CreateAccount(userID, &account); err != nil {
		ServiceError(c, err, "创建账户失败")
		return
	}

	SuccessWithMessage(c, "创建成功", account)
}

// List 获取账户列表
// @Summary 获取账户列表
// @Description 默认账户在前，其余按名称排序；默认不含已归档账户
// @Tags 账户
// @Produce json
// @Security BearerAuth
// @Param include_archived query bool false "是否包含已归档账户"
// @Success 200 {object} Response{data=[]models.Account} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	includeArchived, _ := strconv.ParseBool(c.Query("include_archived"))

	accounts, err := ledger().ListAccounts(userID, includeArchived)
	if err != nil {
		ServiceError(c, err, "获取账户列表失败")
		return
	}
	Success(c, accounts)
}

// Get 获取账户详情
// @Summary 获取账户详情
// @Tags 账户
// @Produce json
// @Security BearerAuth
// @Param id path int true "账户ID"
// @Success 200 {object} Response{data=models.Account} "获取成功"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	account, err := ledger().GetAccount(middleware.GetCurrentUserID(c), id)
	if err != nil {
		ServiceError(c, err, "获取账户失败")
		return
	}
	Success(c, account)
}

// Update 更新账户
// @Summary 更新账户
// @Description 修改期初余额时当前余额按差额同步调整
// @Tags 账户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "账户ID"
// @Param request body UpdateAccountRequest true "更新信息"
// @Success 200 {object} Response{data=models.Account} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id} [put]
func (h *AccountHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	svc := ledger()
	account, err := svc.GetAccount(userID, id)
	if err != nil {
		ServiceError(c, err, "获取账户失败")
		return
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.AccountType != nil {
		account.AccountType = *req.AccountType
	}
	if req.OpeningBalance != nil {
		account.OpeningBalance = *req.OpeningBalance
	}
	if req.Currency != nil {
		account.Currency = *req.Currency
	}
	if req.IsDefault != nil {
		account.IsDefault = *req.IsDefault
	}
	if req.Icon != nil {
		account.Icon = *req.Icon
	}
	if req.Color != nil {
		account.Color = *req.Color
	}

	updated, err := svc.UpdateAccount(userID, id, account)
	if err != nil {
		ServiceError(c, err, "更新账户失败")
		return
	}
	SuccessWithMessage(c, "更新成功", updated)
}

// Delete 删除账户
// @Summary 删除账户
// @Description 已有交易记录的账户改为归档，保留历史
// @Tags 账户
// @Produce json
// @Security BearerAuth
// @Param id path int true "账户ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	archived, err := ledger().DeleteAccount(middleware.GetCurrentUserID(c), id)
	if err != nil {
		ServiceError(c, err, "删除账户失败")
		return
	}
	if archived {
		SuccessWithMessage(c, "账户存在交易记录，已归档", gin.H{"archived": true})
		return
	}
	SuccessWithMessage(c, "删除成功", gin.H{"archived": false})
}

// SetDefault 设为默认账户
// @Summary 设为默认账户
// @Tags 账户
// @Produce json
// @Security BearerAuth
// @Param id path int true "账户ID"
// @Success 200 {object} Response{data=models.Account} "设置成功"
// @Failure 400 {object} Response "已归档账户不能设为默认"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id}/default [post]
func (h *AccountHandler) SetDefault(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	account, err := ledger().SetDefaultAccount(middleware.GetCurrentUserID(c), id)
	if err != nil {
		ServiceError(c, err, "设置默认账户失败")
		return
	}
	SuccessWithMessage(c, "设置成功", account)
}

// Archive 归档账户
// @Summary 归档账户
// @Tags 账户
// @Produce json
// @Security BearerAuth
// @Param id path int true "账户ID"
// @Success 200 {object} Response{data=models.Account} "归档成功"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id}/archive [post]
func (h *AccountHandler) Archive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	account, err := ledger().ArchiveAccount(middleware.GetCurrentUserID(c), id)
	if err != nil {
		ServiceError(c, err, "归档账户失败")
		return
	}
	SuccessWithMessage(c, "归档成功", account)
}

// Reconcile 对账
// @Summary 账户对账
// @Description 按交易记录重新计算余额，返回修正前后的差额
// @Tags 账户
// @Produce json
// @Security BearerAuth
// @Param id path int true "账户ID"
// @Success 200 {object} Response{data=service.AccountReconciliation} "对账完成"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id}/reconcile [post]
func (h *AccountHandler) Reconcile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := ledger().ReconcileAccount(middleware.GetCurrentUserID(c), id)
	if err != nil {
		ServiceError(c, err, "对账失败")
		return
	}
	SuccessWithMessage(c, "对账完成", result)
}

// Summary 账户概览
// @Summary 账户概览
// @Description 本月收支及最近 10 笔交易
// @Tags 账户
// @Produce json
// @Security BearerAuth
// @Param id path int true "账户ID"
// @Success 200 {object} Response{data=service.AccountSummary} "获取成功"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id}/summary [get]
func (h *AccountHandler) Summary(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	summary, err := aggregation().AccountSummary(middleware.GetCurrentUserID(c), id, today())
	if err != nil {
		ServiceError(c, err, "获取账户概览失败")
		return
	}
	Success(c, summary)
}
