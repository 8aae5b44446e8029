package service

import (
	"fmt"
	"sort"
	"time"

	"fintrack/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// AggregationService 只读的统计查询：按时间段求和、按类别分组、月度趋势、预算进度、现金流
// 已取消的交易不计入任何统计，与余额口径一致
type AggregationService struct {
	db *gorm.DB
}

// NewAggregationService 创建统计服务
func NewAggregationService(db *gorm.DB) *AggregationService {
	return &AggregationService{db: db}
}

// AggregateFilter 可选的账户/类别过滤
type AggregateFilter struct {
	AccountID  *uint
	CategoryID *uint
}

// CategoryTotal 类别汇总
type CategoryTotal struct {
	CategoryID   *uint           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
}

// MonthTotal 月度收支
type MonthTotal struct {
	Month   string          `json:"month"` // 2006-01
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// DayTotal 单日收支
type DayTotal struct {
	Date    time.Time       `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// BudgetProgress 预算执行进度
type BudgetProgress struct {
	BudgetID   uint            `json:"budget_id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
}

// dateTypeTotal 按日期和类型分组的原始结果
type dateTypeTotal struct {
	Date            time.Time
	TransactionType string
	Total           decimal.Decimal
}

func (s *AggregationService) scope(userID uint, r models.DateRange, f AggregateFilter) *gorm.DB {
	query := s.db.Model(&models.Transaction{}).
		Where("transactions.user_id = ? AND transactions.status <> ?", userID, models.StatusCancelled).
		Where("transactions.date >= ? AND transactions.date <= ?", r.Start, r.End)
	if f.AccountID != nil {
		query = query.Where("transactions.account_id = ?", *f.AccountID)
	}
	if f.CategoryID != nil {
		query = query.Where("transactions.category_id = ?", *f.CategoryID)
	}
	return query
}

func checkRange(r models.DateRange) error {
	if !r.Valid() {
		return invalid("无效的日期范围")
	}
	return nil
}

// PeriodTotal 时间段内（两端包含）某类交易的金额合计
func (s *AggregationService) PeriodTotal(userID uint, txType models.TransactionType, r models.DateRange, f AggregateFilter) (decimal.Decimal, error) {
	if err := checkRange(r); err != nil {
		return decimal.Zero, err
	}
	var row sumRow
	if err := s.scope(userID, r, f).
		Select("COALESCE(SUM(transactions.amount), 0) AS total").
		Where("transactions.transaction_type = ?", txType).
		Scan(&row).Error; err != nil {
		return decimal.Zero, fmt.Errorf("统计金额失败: %w", err)
	}
	return row.Total.Round(2), nil
}

// GroupByCategory 按类别汇总，金额降序；无类别的归入 Uncategorized
func (s *AggregationService) GroupByCategory(userID uint, txType models.TransactionType, r models.DateRange, f AggregateFilter) ([]CategoryTotal, error) {
	if err := checkRange(r); err != nil {
		return nil, err
	}
	var rows []CategoryTotal
	if err := s.scope(userID, r, f).
		Select("transactions.category_id AS category_id, COALESCE(categories.name, ?) AS category_name, SUM(transactions.amount) AS total", models.UncategorizedName).
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.transaction_type = ?", txType).
		Group("transactions.category_id, categories.name").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("按类别统计失败: %w", err)
	}
	for i := range rows {
		rows[i].Total = rows[i].Total.Round(2)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if c := rows[i].Total.Cmp(rows[j].Total); c != 0 {
			return c > 0
		}
		return rows[i].CategoryName < rows[j].CategoryName
	})
	return rows, nil
}

func (s *AggregationService) dateTypeTotals(userID uint, r models.DateRange, f AggregateFilter) ([]dateTypeTotal, error) {
	var rows []dateTypeTotal
	if err := s.scope(userID, r, f).
		Select("transactions.date, transactions.transaction_type, SUM(transactions.amount) AS total").
		Where("transactions.transaction_type IN ?", []models.TransactionType{models.TypeIncome, models.TypeExpense}).
		Group("transactions.date, transactions.transaction_type").
		Order("transactions.date ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("按日期统计失败: %w", err)
	}
	return rows, nil
}

// MonthlyTrend 最近 monthsBack 个自然月（含本月）的收支，按时间升序，无交易的月份补零
func (s *AggregationService) MonthlyTrend(userID uint, monthsBack int, today time.Time, f AggregateFilter) ([]MonthTotal, error) {
	if monthsBack < 1 {
		return nil, invalid("月份数必须大于 0")
	}
	first := models.MonthStart(today).AddDate(0, -(monthsBack - 1), 0)
	r := models.NewDateRange(first, models.MonthEnd(today))

	result := make([]MonthTotal, monthsBack)
	index := make(map[string]int, monthsBack)
	for i := 0; i < monthsBack; i++ {
		key := first.AddDate(0, i, 0).Format("2006-01")
		result[i] = MonthTotal{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
		index[key] = i
	}

	rows, err := s.dateTypeTotals(userID, r, f)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		i, ok := index[row.Date.UTC().Format("2006-01")]
		if !ok {
			continue
		}
		switch models.TransactionType(row.TransactionType) {
		case models.TypeIncome:
			result[i].Income = result[i].Income.Add(row.Total)
		case models.TypeExpense:
			result[i].Expense = result[i].Expense.Add(row.Total)
		}
	}
	for i := range result {
		result[i].Income = result[i].Income.Round(2)
		result[i].Expense = result[i].Expense.Round(2)
	}
	return result, nil
}

// CashFlowSeries 每个有交易的日期一行，按日期升序
func (s *AggregationService) CashFlowSeries(userID uint, r models.DateRange, f AggregateFilter) ([]DayTotal, error) {
	if err := checkRange(r); err != nil {
		return nil, err
	}
	rows, err := s.dateTypeTotals(userID, r, f)
	if err != nil {
		return nil, err
	}

	var series []DayTotal
	for _, row := range rows {
		day := models.DateOf(row.Date)
		if n := len(series); n == 0 || !series[n-1].Date.Equal(day) {
			series = append(series, DayTotal{Date: day, Income: decimal.Zero, Expense: decimal.Zero})
		}
		last := &series[len(series)-1]
		switch models.TransactionType(row.TransactionType) {
		case models.TypeIncome:
			last.Income = last.Income.Add(row.Total).Round(2)
		case models.TypeExpense:
			last.Expense = last.Expense.Add(row.Total).Round(2)
		}
	}
	return series, nil
}

// BudgetProgress 预算进度：统计区间为 [开始日期, min(今天, 结束日期)]，类别为空时统计全部支出
// 预算金额为 0 时百分比为 0
func (s *AggregationService) BudgetProgress(userID uint, b *models.Budget, today time.Time) (*BudgetProgress, error) {
	progress := &BudgetProgress{
		BudgetID:   b.ID,
		Name:       b.Name,
		Category:   "All",
		Amount:     b.Amount,
		Spent:      decimal.Zero,
		Percentage: decimal.Zero,
	}
	if b.Category != nil {
		progress.Category = b.Category.Name
	} else if b.CategoryID != nil {
		progress.Category = models.UncategorizedName
	}

	end := models.DateOf(today)
	if b.EndDate != nil && b.EndDate.Before(end) {
		end = models.DateOf(*b.EndDate)
	}
	r := models.NewDateRange(b.StartDate, end)
	if r.Valid() {
		spent, err := s.PeriodTotal(userID, models.TypeExpense, r, AggregateFilter{CategoryID: b.CategoryID})
		if err != nil {
			return nil, err
		}
		progress.Spent = spent
	}

	progress.Remaining = b.Amount.Sub(progress.Spent).Round(2)
	if !b.Amount.IsZero() {
		progress.Percentage = progress.Spent.Div(b.Amount).Mul(hundred).Round(2)
	}
	return progress, nil
}

// BudgetProgressList 今天有效的全部预算的进度
func (s *AggregationService) BudgetProgressList(userID uint, today time.Time) ([]BudgetProgress, error) {
	budgets, err := s.activeBudgets(userID, today, nil)
	if err != nil {
		return nil, err
	}
	list := make([]BudgetProgress, 0, len(budgets))
	for i := range budgets {
		p, err := s.BudgetProgress(userID, &budgets[i], today)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	return list, nil
}

func (s *AggregationService) activeBudgets(userID uint, today time.Time, categoryID *uint) ([]models.Budget, error) {
	day := models.DateOf(today)
	query := s.db.Preload("Category").
		Where("user_id = ? AND start_date <= ? AND (end_date IS NULL OR end_date >= ?)", userID, day, day)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	var budgets []models.Budget
	if err := query.Order("start_date ASC, id ASC").Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("查询预算失败: %w", err)
	}
	return budgets, nil
}

func (s *AggregationService) recent(userID uint, accountID *uint, limit int) ([]models.Transaction, error) {
	query := s.db.Preload("Category").Preload("Account").Where("user_id = ?", userID)
	if accountID != nil {
		query = query.Where("(account_id = ? OR transfer_account_id = ?)", *accountID, *accountID)
	}
	var list []models.Transaction
	if err := query.Order("date DESC, created_at DESC, id DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询最近交易失败: %w", err)
	}
	return list, nil
}

// Dashboard 首页概览
type Dashboard struct {
	TotalBalance       decimal.Decimal      `json:"total_balance"`
	MonthIncome        decimal.Decimal      `json:"month_income"`
	MonthExpense       decimal.Decimal      `json:"month_expense"`
	NetIncome          decimal.Decimal      `json:"net_income"`
	ExpenseByCategory  []CategoryTotal      `json:"expense_by_category"`
	MonthlyTrend       []MonthTotal         `json:"monthly_trend"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
	Budgets            []BudgetProgress     `json:"budgets"`
}

// Dashboard 汇总首页数据：未归档账户总余额、本月收支、本月支出分类、近 6 个月趋势、最近 5 笔交易、有效预算
func (s *AggregationService) Dashboard(userID uint, today time.Time) (*Dashboard, error) {
	var balance sumRow
	if err := s.db.Model(&models.Account{}).
		Select("COALESCE(SUM(balance), 0) AS total").
		Where("user_id = ? AND is_archived = ?", userID, false).
		Scan(&balance).Error; err != nil {
		return nil, fmt.Errorf("统计账户余额失败: %w", err)
	}

	month := models.NewDateRange(models.MonthStart(today), today)
	d := &Dashboard{TotalBalance: balance.Total.Round(2)}
	var err error
	if d.MonthIncome, err = s.PeriodTotal(userID, models.TypeIncome, month, AggregateFilter{}); err != nil {
		return nil, err
	}
	if d.MonthExpense, err = s.PeriodTotal(userID, models.TypeExpense, month, AggregateFilter{}); err != nil {
		return nil, err
	}
	d.NetIncome = d.MonthIncome.Sub(d.MonthExpense)
	if d.ExpenseByCategory, err = s.GroupByCategory(userID, models.TypeExpense, month, AggregateFilter{}); err != nil {
		return nil, err
	}
	if d.MonthlyTrend, err = s.MonthlyTrend(userID, 6, today, AggregateFilter{}); err != nil {
		return nil, err
	}
	if d.RecentTransactions, err = s.recent(userID, nil, 5); err != nil {
		return nil, err
	}
	if d.Budgets, err = s.BudgetProgressList(userID, today); err != nil {
		return nil, err
	}
	return d, nil
}

// AccountSummary 账户详情页数据
type AccountSummary struct {
	Account            models.Account       `json:"account"`
	MonthIncome        decimal.Decimal      `json:"month_income"`
	MonthExpense       decimal.Decimal      `json:"month_expense"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
}

// AccountSummary 账户最近 10 笔交易及本月收支
func (s *AggregationService) AccountSummary(userID, accountID uint, today time.Time) (*AccountSummary, error) {
	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		return nil, notFound(err, "账户")
	}

	month := models.NewDateRange(models.MonthStart(today), today)
	filter := AggregateFilter{AccountID: &accountID}
	summary := &AccountSummary{Account: account}
	var err error
	if summary.MonthIncome, err = s.PeriodTotal(userID, models.TypeIncome, month, filter); err != nil {
		return nil, err
	}
	if summary.MonthExpense, err = s.PeriodTotal(userID, models.TypeExpense, month, filter); err != nil {
		return nil, err
	}
	if summary.RecentTransactions, err = s.recent(userID, &accountID, 10); err != nil {
		return nil, err
	}
	return summary, nil
}

// CategoryAnalysis 类别分析数据
type CategoryAnalysis struct {
	Category models.Category `json:"category"`
	Spending []MonthTotal    `json:"spending"`
	Budget   *BudgetProgress `json:"budget"`
}

// CategoryAnalysis 类别近 6 个月的支出及当前有效预算
func (s *AggregationService) CategoryAnalysis(userID, categoryID uint, today time.Time) (*CategoryAnalysis, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		return nil, notFound(err, "类别")
	}

	spending, err := s.MonthlyTrend(userID, 6, today, AggregateFilter{CategoryID: &categoryID})
	if err != nil {
		return nil, err
	}
	analysis := &CategoryAnalysis{Category: category, Spending: spending}

	budgets, err := s.activeBudgets(userID, today, &categoryID)
	if err != nil {
		return nil, err
	}
	if len(budgets) > 0 {
		if analysis.Budget, err = s.BudgetProgress(userID, &budgets[0], today); err != nil {
			return nil, err
		}
	}
	return analysis, nil
}
