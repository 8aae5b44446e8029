package api

import (
	"strconv"

	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ReportHandler 概览、报表与图表数据
type ReportHandler struct{}

// NewReportHandler 创建报表处理器
func NewReportHandler() *ReportHandler {
	return &ReportHandler{}
}

// CategorySummary 收入/支出按类别汇总
type CategorySummary struct {
	Range      models.DateRange        `json:"range"`
	Total      decimal.Decimal         `json:"total" swaggertype:"number"`
	ByCategory []service.CategoryTotal `json:"by_category"`
}

// CashFlowReport 现金流报表
type CashFlowReport struct {
	Range   models.DateRange   `json:"range"`
	Income  decimal.Decimal    `json:"income" swaggertype:"number"`
	Expense decimal.Decimal    `json:"expense" swaggertype:"number"`
	Net     decimal.Decimal    `json:"net" swaggertype:"number"`
	Series  []service.DayTotal `json:"series"`
}

// TransactionChart 每日收支折线图
type TransactionChart struct {
	Labels  []string  `json:"labels"`
	Income  []float64 `json:"income"`
	Expense []float64 `json:"expense"`
}

// CategoryChart 类别饼图
type CategoryChart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// BudgetChartItem 预算进度条
type BudgetChartItem struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Budget     float64 `json:"budget"`
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

// aggregateFilter 解析 account_id 过滤
func aggregateFilter(c *gin.Context) (service.AggregateFilter, bool) {
	accountID, err := parseOptionalUint("账户ID", c.Query("account_id"))
	if err != nil {
		BadRequest(c, err.Error())
		return service.AggregateFilter{}, false
	}
	return service.AggregateFilter{AccountID: accountID}, true
}

func (h *ReportHandler) categorySummary(userID uint, txType models.TransactionType, r models.DateRange, f service.AggregateFilter) (*CategorySummary, error) {
	svc := aggregation()
	total, err := svc.PeriodTotal(userID, txType, r, f)
	if err != nil {
		return nil, err
	}
	groups, err := svc.GroupByCategory(userID, txType, r, f)
	if err != nil {
		return nil, err
	}
	return &CategorySummary{Range: r, Total: total, ByCategory: groups}, nil
}

func (h *ReportHandler) cashFlow(userID uint, r models.DateRange, f service.AggregateFilter) (*CashFlowReport, error) {
	svc := aggregation()
	series, err := svc.CashFlowSeries(userID, r, f)
	if err != nil {
		return nil, err
	}
	report := &CashFlowReport{Range: r, Income: decimal.Zero, Expense: decimal.Zero, Series: series}
	for _, day := range series {
		report.Income = report.Income.Add(day.Income)
		report.Expense = report.Expense.Add(day.Expense)
	}
	report.Net = report.Income.Sub(report.Expense)
	return report, nil
}

// parseMonths 解析 months 参数，默认 6，范围 1~24
func parseMonths(c *gin.Context) (int, bool) {
	months := 6
	if v := c.Query("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 24 {
			BadRequest(c, "months 必须在 1~24 之间")
			return 0, false
		}
		months = n
	}
	return months, true
}

// Dashboard 首页概览
// @Summary 首页概览
// @Description 总余额、本月收支、本月支出分类、近 6 个月趋势、最近交易和预算进度
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.Dashboard} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	d, err := aggregation().Dashboard(middleware.GetCurrentUserID(c), today())
	if err != nil {
		ServiceError(c, err, "获取概览失败")
		return
	}
	Success(c, d)
}

func (h *ReportHandler) summary(c *gin.Context, txType models.TransactionType) {
	r, ok := bindRange(c, models.MonthStart(today()))
	if !ok {
		return
	}
	f, ok := aggregateFilter(c)
	if !ok {
		return
	}
	s, err := h.categorySummary(middleware.GetCurrentUserID(c), txType, r, f)
	if err != nil {
		ServiceError(c, err, "统计失败")
		return
	}
	Success(c, s)
}

// ExpenseSummary 支出汇总
// @Summary 支出汇总
// @Description 时间范围内的支出合计及按类别分布，缺省为本月
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-01-31)"
// @Param account_id query int false "账户ID"
// @Success 200 {object} Response{data=CategorySummary} "获取成功"
// @Failure 400 {object} Response "日期格式错误"
// @Router /api/v1/reports/expense-summary [get]
func (h *ReportHandler) ExpenseSummary(c *gin.Context) {
	h.summary(c, models.TypeExpense)
}

// IncomeSummary 收入汇总
// @Summary 收入汇总
// @Description 时间范围内的收入合计及按类别分布，缺省为本月
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-01-31)"
// @Param account_id query int false "账户ID"
// @Success 200 {object} Response{data=CategorySummary} "获取成功"
// @Failure 400 {object} Response "日期格式错误"
// @Router /api/v1/reports/income-summary [get]
func (h *ReportHandler) IncomeSummary(c *gin.Context) {
	h.summary(c, models.TypeIncome)
}

// CashFlow 现金流
// @Summary 现金流报表
// @Description 按日汇总收入与支出，缺省为本月
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-01-31)"
// @Param account_id query int false "账户ID"
// @Success 200 {object} Response{data=CashFlowReport} "获取成功"
// @Failure 400 {object} Response "日期格式错误"
// @Router /api/v1/reports/cash-flow [get]
func (h *ReportHandler) CashFlow(c *gin.Context) {
	r, ok := bindRange(c, models.MonthStart(today()))
	if !ok {
		return
	}
	f, ok := aggregateFilter(c)
	if !ok {
		return
	}
	report, err := h.cashFlow(middleware.GetCurrentUserID(c), r, f)
	if err != nil {
		ServiceError(c, err, "统计失败")
		return
	}
	Success(c, report)
}

// MonthlyTrend 月度趋势
// @Summary 月度收支趋势
// @Description 最近 N 个自然月（含本月）的收支，无交易的月份补零
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Param months query int false "月份数" default(6)
// @Param account_id query int false "账户ID"
// @Success 200 {object} Response{data=[]service.MonthTotal} "获取成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/v1/reports/monthly-trend [get]
func (h *ReportHandler) MonthlyTrend(c *gin.Context) {
	months, ok := parseMonths(c)
	if !ok {
		return
	}
	f, ok := aggregateFilter(c)
	if !ok {
		return
	}
	trend, err := aggregation().MonthlyTrend(middleware.GetCurrentUserID(c), months, today(), f)
	if err != nil {
		ServiceError(c, err, "统计失败")
		return
	}
	Success(c, trend)
}

// TransactionChart 每日收支图表数据
// @Summary 每日收支图表
// @Description 缺省为最近 30 天，仅包含有交易的日期
// @Tags 图表
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-01-31)"
// @Success 200 {object} Response{data=TransactionChart} "获取成功"
// @Router /api/v1/charts/transactions [get]
func (h *ReportHandler) TransactionChart(c *gin.Context) {
	r, ok := bindRange(c, today().AddDate(0, 0, -29))
	if !ok {
		return
	}
	series, err := aggregation().CashFlowSeries(middleware.GetCurrentUserID(c), r, service.AggregateFilter{})
	if err != nil {
		ServiceError(c, err, "获取图表数据失败")
		return
	}
	chart := TransactionChart{
		Labels:  make([]string, 0, len(series)),
		Income:  make([]float64, 0, len(series)),
		Expense: make([]float64, 0, len(series)),
	}
	for _, day := range series {
		chart.Labels = append(chart.Labels, formatDate(day.Date))
		chart.Income = append(chart.Income, day.Income.InexactFloat64())
		chart.Expense = append(chart.Expense, day.Expense.InexactFloat64())
	}
	Success(c, chart)
}

// CategoryChart 类别图表数据
// @Summary 类别分布图表
// @Description 缺省为本月支出
// @Tags 图表
// @Produce json
// @Security BearerAuth
// @Param type query string false "EXPENSE 或 INCOME" default(EXPENSE)
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-01-31)"
// @Success 200 {object} Response{data=CategoryChart} "获取成功"
// @Router /api/v1/charts/categories [get]
func (h *ReportHandler) CategoryChart(c *gin.Context) {
	txType := models.TransactionType(c.DefaultQuery("type", string(models.TypeExpense)))
	if txType != models.TypeExpense && txType != models.TypeIncome {
		BadRequest(c, "type 只能为 EXPENSE 或 INCOME")
		return
	}
	r, ok := bindRange(c, models.MonthStart(today()))
	if !ok {
		return
	}
	groups, err := aggregation().GroupByCategory(middleware.GetCurrentUserID(c), txType, r, service.AggregateFilter{})
	if err != nil {
		ServiceError(c, err, "获取图表数据失败")
		return
	}
	chart := CategoryChart{
		Labels: make([]string, 0, len(groups)),
		Values: make([]float64, 0, len(groups)),
	}
	for _, g := range groups {
		chart.Labels = append(chart.Labels, g.CategoryName)
		chart.Values = append(chart.Values, g.Total.InexactFloat64())
	}
	Success(c, chart)
}

// BudgetChart 预算进度图表数据
// @Summary 预算进度图表
// @Description 今天生效的全部预算
// @Tags 图表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]BudgetChartItem} "获取成功"
// @Router /api/v1/charts/budget-progress [get]
func (h *ReportHandler) BudgetChart(c *gin.Context) {
	list, err := aggregation().BudgetProgressList(middleware.GetCurrentUserID(c), today())
	if err != nil {
		ServiceError(c, err, "获取图表数据失败")
		return
	}
	items := make([]BudgetChartItem, 0, len(list))
	for _, p := range list {
		items = append(items, BudgetChartItem{
			Name:       p.Name,
			Category:   p.Category,
			Budget:     p.Amount.InexactFloat64(),
			Spent:      p.Spent.InexactFloat64(),
			Remaining:  p.Remaining.InexactFloat64(),
			Percentage: p.Percentage.InexactFloat64(),
		})
	}
	Success(c, items)
}
