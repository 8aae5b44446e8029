package api

import (
	"time"

	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionHandler 交易记录处理器
type TransactionHandler struct{}

// NewTransactionHandler 创建交易记录处理器
func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

// TransactionRequest 创建/更新交易请求，更新时整体替换
type TransactionRequest struct {
	AccountID         uint                     `json:"account_id" binding:"required" example:"1"`
	TransferAccountID *uint                    `json:"transfer_account_id" example:"2"`
	CategoryID        *uint                    `json:"category_id" example:"3"`
	Amount            decimal.Decimal          `json:"amount" swaggertype:"number" example:"99.99"`
	TransactionType   models.TransactionType   `json:"transaction_type" binding:"required" example:"EXPENSE"`
	Description       string                   `json:"description" binding:"max=200" example:"午餐"`
	Date              string                   `json:"date" example:"2024-01-15"`
	Status            models.TransactionStatus `json:"status" example:"COMPLETED"`
	Tags              []string                 `json:"tags"`
	Attachments       []string                 `json:"attachments"`
	Location          map[string]any           `json:"location"`
}

func (r *TransactionRequest) model() (*models.Transaction, error) {
	date, err := parseDate("日期", r.Date)
	if err != nil {
		return nil, err
	}
	t := &models.Transaction{
		AccountID:         r.AccountID,
		TransferAccountID: r.TransferAccountID,
		CategoryID:        r.CategoryID,
		Amount:            r.Amount,
		TransactionType:   r.TransactionType,
		Description:       r.Description,
		Status:            r.Status,
		Tags:              r.Tags,
		Attachments:       r.Attachments,
		Location:          r.Location,
	}
	if date != nil {
		t.Date = *date
	}
	return t, nil
}

// TransactionListRequest 交易列表请求
type TransactionListRequest struct {
	Page       int    `form:"page" example:"1"`
	PageSize   int    `form:"page_size" example:"20"`
	AccountID  string `form:"account_id"`
	CategoryID string `form:"category_id"`
	Type       string `form:"type" example:"EXPENSE"`
	Status     string `form:"status" example:"COMPLETED"`
	StartDate  string `form:"start_date" example:"2024-01-01"`
	EndDate    string `form:"end_date" example:"2024-12-31"`
	Keyword    string `form:"keyword"`
}

func (r *TransactionListRequest) filter() (service.TransactionFilter, error) {
	var f service.TransactionFilter
	var err error
	if f.AccountID, err = parseOptionalUint("账户ID", r.AccountID); err != nil {
		return f, err
	}
	if f.CategoryID, err = parseOptionalUint("类别ID", r.CategoryID); err != nil {
		return f, err
	}
	if f.StartDate, err = parseDate("开始日期", r.StartDate); err != nil {
		return f, err
	}
	if f.EndDate, err = parseDate("结束日期", r.EndDate); err != nil {
		return f, err
	}
	f.Type = models.TransactionType(r.Type)
	f.Status = models.TransactionStatus(r.Status)
	f.Keyword = r.Keyword
	return f, nil
}

// Create 创建交易
// @Summary 创建交易
// @Description 记录支出、收入或转账，同步更新相关账户余额；日期缺省为今天
// @Tags 交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	t, err := req.model()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	svc := ledger()
	if err := svc.CreateTransaction(userID, t); err != nil {
		ServiceError(c, err, "创建交易失败")
		return
	}
	created, err := svc.GetTransaction(userID, t.ID)
	if err != nil {
		ServiceError(c, err, "创建交易失败")
		return
	}
	SuccessWithMessage(c, "创建成功", created)
}

// List 获取交易列表
// @Summary 获取交易列表
// @Description 按日期倒序分页，账户筛选同时匹配转出和转入账户
// @Tags 交易
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param account_id query int false "账户ID"
// @Param category_id query int false "类别ID"
// @Param type query string false "交易类型 EXPENSE/INCOME/TRANSFER"
// @Param status query string false "状态 PENDING/COMPLETED/CANCELLED"
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Param keyword query string false "描述关键字"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Transaction}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	f, err := req.filter()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	page := service.Page{Page: req.Page, PageSize: req.PageSize}.Normalize()
	list, total, err := ledger().ListTransactions(userID, f, page)
	if err != nil {
		ServiceError(c, err, "获取交易列表失败")
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
		List:     list,
	})
}

// Get 获取交易详情
// @Summary 获取交易详情
// @Tags 交易
// @Produce json
// @Security BearerAuth
// @Param id path int true "交易ID"
// @Success 200 {object} Response{data=models.Transaction} "获取成功"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := ledger().GetTransaction(middleware.GetCurrentUserID(c), id)
	if err != nil {
		ServiceError(c, err, "获取交易失败")
		return
	}
	Success(c, t)
}

// Update 更新交易
// @Summary 更新交易
// @Description 先撤销原交易对余额的影响，再按新内容记账
// @Tags 交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "交易ID"
// @Param request body TransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	t, err := req.model()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	updated, err := ledger().UpdateTransaction(middleware.GetCurrentUserID(c), id, t)
	if err != nil {
		ServiceError(c, err, "更新交易失败")
		return
	}
	SuccessWithMessage(c, "更新成功", updated)
}

// Delete 删除交易
// @Summary 删除交易
// @Description 删除交易并撤销其对账户余额的影响
// @Tags 交易
// @Produce json
// @Security BearerAuth
// @Param id path int true "交易ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ledger().DeleteTransaction(middleware.GetCurrentUserID(c), id); err != nil {
		ServiceError(c, err, "删除交易失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// exportFilter 导出与列表共用的过滤条件
func exportFilter(c *gin.Context) (service.TransactionFilter, bool) {
	var req TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return service.TransactionFilter{}, false
	}
	f, err := req.filter()
	if err != nil {
		BadRequest(c, err.Error())
		return service.TransactionFilter{}, false
	}
	return f, true
}

func formatDate(t time.Time) string {
	return t.Format(models.DateLayout)
}
