package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	reports *ReportHandler
}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{reports: NewReportHandler()}
}

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"
)

// table 导出的二维表，CSV 与 Excel 共用
type table struct {
	sheet   string
	headers []string
	widths  []float64
	rows    [][]interface{}
	summary []interface{} // 仅写入 Excel
}

func exportFormat(c *gin.Context) (string, bool) {
	format := strings.ToLower(c.DefaultQuery("format", formatCSV))
	if format != formatCSV && format != formatXLSX {
		BadRequest(c, "format 只能为 csv 或 xlsx")
		return "", false
	}
	return format, true
}

func cellString(v interface{}) string {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.StringFixed(2)
	case float64:
		return fmt.Sprintf("%.2f", x)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

func cellValue(v interface{}) interface{} {
	if d, ok := v.(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return v
}

func writeCSV(c *gin.Context, t *table, filename string) {
	buf := new(bytes.Buffer)
	// BOM，Excel 打开时中文不乱码
	buf.WriteString("\xEF\xBB\xBF")
	writer := csv.NewWriter(buf)

	if err := writer.Write(t.headers); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}
	for _, row := range t.rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = cellString(v)
		}
		if err := writer.Write(record); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename+".csv")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func borders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
}

// buildWorkbook 按表格生成工作簿：蓝底表头、带边框数据行、黄底合计行
func buildWorkbook(t *table) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", t.sheet); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    borders(),
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    borders(),
	})
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    borders(),
	})

	last, _ := excelize.ColumnNumberToName(len(t.headers))
	for i, width := range t.widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(t.sheet, col, col, width)
	}

	for i, header := range t.headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(t.sheet, cell, header)
	}
	f.SetCellStyle(t.sheet, "A1", last+"1", headerStyle)

	for r, row := range t.rows {
		for i, v := range row {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			f.SetCellValue(t.sheet, cell, cellValue(v))
		}
		f.SetCellStyle(t.sheet, fmt.Sprintf("A%d", r+2), fmt.Sprintf("%s%d", last, r+2), dataStyle)
	}

	if len(t.summary) > 0 {
		row := len(t.rows) + 2
		for i, v := range t.summary {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(t.sheet, cell, cellValue(v))
		}
		f.SetCellStyle(t.sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", last, row), summaryStyle)
	}
	return f, nil
}

func writeXLSX(c *gin.Context, t *table, filename string) {
	f, err := buildWorkbook(t)
	if err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename+".xlsx")))
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "生成 Excel 失败")
	}
}

func writeTable(c *gin.Context, format string, t *table, filename string) {
	if format == formatXLSX {
		writeXLSX(c, t, filename)
		return
	}
	writeCSV(c, t, filename)
}

func transactionTable(list []models.Transaction) *table {
	t := &table{
		sheet:   "交易记录",
		headers: []string{"ID", "日期", "类型", "金额", "账户", "转入账户", "类别", "描述", "状态", "标签"},
		widths:  []float64{8, 12, 10, 12, 16, 16, 14, 30, 12, 20},
		rows:    make([][]interface{}, 0, len(list)),
	}
	income, expense := decimal.Zero, decimal.Zero
	for _, tx := range list {
		account, category, transfer := "", models.UncategorizedName, ""
		if tx.Account != nil {
			account = tx.Account.Name
		}
		if tx.Category != nil {
			category = tx.Category.Name
		}
		if tx.TransferAccountID != nil {
			transfer = fmt.Sprintf("#%d", *tx.TransferAccountID)
		}
		t.rows = append(t.rows, []interface{}{
			tx.ID, formatDate(tx.Date), string(tx.TransactionType), tx.Amount,
			account, transfer, category, tx.Description, string(tx.Status), strings.Join(tx.Tags, ","),
		})
		if tx.Status == models.StatusCancelled {
			continue
		}
		switch tx.TransactionType {
		case models.TypeIncome:
			income = income.Add(tx.Amount)
		case models.TypeExpense:
			expense = expense.Add(tx.Amount)
		}
	}
	t.summary = []interface{}{"合计", "", "收入", income, "支出", expense, fmt.Sprintf("共 %d 条记录", len(list))}
	return t
}

// Transactions 导出交易记录
// @Summary 导出交易记录
// @Description 过滤条件与交易列表相同，format 为 csv（默认）或 xlsx
// @Tags 导出
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param format query string false "csv 或 xlsx" default(csv)
// @Param account_id query int false "账户ID"
// @Param category_id query int false "类别ID"
// @Param type query string false "交易类型"
// @Param status query string false "状态"
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Success 200 {file} file "导出文件"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/export/transactions [get]
func (h *ExportHandler) Transactions(c *gin.Context) {
	format, ok := exportFormat(c)
	if !ok {
		return
	}
	f, ok := exportFilter(c)
	if !ok {
		return
	}
	list, err := ledger().AllTransactions(middleware.GetCurrentUserID(c), f)
	if err != nil {
		ServiceError(c, err, "查询数据失败")
		return
	}
	writeTable(c, format, transactionTable(list), "transactions_"+formatDate(today()))
}

func categoryTable(sheet string, s *CategorySummary) *table {
	t := &table{
		sheet:   sheet,
		headers: []string{"类别", "金额", "占比(%)"},
		widths:  []float64{20, 14, 10},
	}
	for _, g := range s.ByCategory {
		share := decimal.Zero
		if !s.Total.IsZero() {
			share = g.Total.Div(s.Total).Mul(decimal.NewFromInt(100)).Round(2)
		}
		t.rows = append(t.rows, []interface{}{g.CategoryName, g.Total, share})
	}
	t.summary = []interface{}{"合计", s.Total, ""}
	return t
}

func cashFlowTable(r *CashFlowReport) *table {
	t := &table{
		sheet:   "现金流",
		headers: []string{"日期", "收入", "支出", "净额"},
		widths:  []float64{12, 14, 14, 14},
	}
	for _, d := range r.Series {
		t.rows = append(t.rows, []interface{}{formatDate(d.Date), d.Income, d.Expense, d.Income.Sub(d.Expense)})
	}
	t.summary = []interface{}{"合计", r.Income, r.Expense, r.Net}
	return t
}

func trendTable(trend []service.MonthTotal) *table {
	t := &table{
		sheet:   "月度趋势",
		headers: []string{"月份", "收入", "支出", "净额"},
		widths:  []float64{10, 14, 14, 14},
	}
	income, expense := decimal.Zero, decimal.Zero
	for _, m := range trend {
		t.rows = append(t.rows, []interface{}{m.Month, m.Income, m.Expense, m.Income.Sub(m.Expense)})
		income = income.Add(m.Income)
		expense = expense.Add(m.Expense)
	}
	t.summary = []interface{}{"合计", income, expense, income.Sub(expense)}
	return t
}

// Report 导出报表
// @Summary 导出报表
// @Description type 为 expense-summary、income-summary、cash-flow 或 monthly-trend，时间参数与对应报表接口相同
// @Tags 导出
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param type path string true "报表类型"
// @Param format query string false "csv 或 xlsx" default(csv)
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-01-31)"
// @Param months query int false "月份数（monthly-trend）" default(6)
// @Success 200 {file} file "导出文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "未知报表类型"
// @Router /api/v1/export/report/{type} [get]
func (h *ExportHandler) Report(c *gin.Context) {
	format, ok := exportFormat(c)
	if !ok {
		return
	}
	f, ok := aggregateFilter(c)
	if !ok {
		return
	}
	userID := middleware.GetCurrentUserID(c)
	reportType := c.Param("type")

	var t *table
	switch reportType {
	case "expense-summary", "income-summary":
		r, ok := bindRange(c, models.MonthStart(today()))
		if !ok {
			return
		}
		txType, sheet := models.TypeExpense, "支出汇总"
		if reportType == "income-summary" {
			txType, sheet = models.TypeIncome, "收入汇总"
		}
		s, err := h.reports.categorySummary(userID, txType, r, f)
		if err != nil {
			ServiceError(c, err, "统计失败")
			return
		}
		t = categoryTable(sheet, s)
	case "cash-flow":
		r, ok := bindRange(c, models.MonthStart(today()))
		if !ok {
			return
		}
		report, err := h.reports.cashFlow(userID, r, f)
		if err != nil {
			ServiceError(c, err, "统计失败")
			return
		}
		t = cashFlowTable(report)
	case "monthly-trend":
		months, ok := parseMonths(c)
		if !ok {
			return
		}
		trend, err := aggregation().MonthlyTrend(userID, months, today(), f)
		if err != nil {
			ServiceError(c, err, "统计失败")
			return
		}
		t = trendTable(trend)
	default:
		NotFound(c, "未知的报表类型: "+reportType)
		return
	}

	writeTable(c, format, t, reportType+"_"+formatDate(today()))
}
