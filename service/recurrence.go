package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fintrack/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// errClaimLost 该期已被其他执行者处理
var errClaimLost = errors.New("周期交易已被其他任务处理")

// RecurrenceScheduler 将到期的周期交易生成为实际交易
// 每一期在独立的数据库事务中完成：先用条件更新抢占该期，再通过账本工作单元写入交易并维护余额
type RecurrenceScheduler struct {
	db     *gorm.DB
	ledger *LedgerService
	goals  *GoalService
}

// NewRecurrenceScheduler 创建调度器；goals 不为 nil 时每轮结束后顺带判定目标状态
func NewRecurrenceScheduler(db *gorm.DB, goals *GoalService) *RecurrenceScheduler {
	return &RecurrenceScheduler{
		db:     db,
		ledger: NewLedgerService(db),
		goals:  goals,
	}
}

// ProcessDue 处理所有用户截至 today 的到期周期交易，返回生成的交易数
// 错过的周期逐期补齐；重复执行同一天不会重复生成
func (p *RecurrenceScheduler) ProcessDue(ctx context.Context, today time.Time) (int, error) {
	runID := uuid.NewString()
	day := models.DateOf(today)
	logger := slog.With("run_id", runID, "processing_date", day.Format(models.DateLayout))

	var due []models.RecurringTransaction
	if err := p.db.WithContext(ctx).
		Where("status = ? AND next_due <= ?", models.RecurringActive, day).
		Order("next_due ASC, id ASC").
		Find(&due).Error; err != nil {
		return 0, fmt.Errorf("查询到期周期交易失败: %w", err)
	}
	logger.InfoContext(ctx, "开始处理周期交易", "total_due", len(due))

	created := 0
	for i := range due {
		r := due[i]
		for {
			if err := ctx.Err(); err != nil {
				return created, err
			}
			if models.DateOf(r.NextDue).After(day) {
				break
			}
			ok, err := p.processOccurrence(ctx, &r, day)
			if errors.Is(err, errClaimLost) {
				logger.InfoContext(ctx, "周期交易已被其他任务处理", "recurring_id", r.ID)
				break
			}
			if err != nil {
				logger.ErrorContext(ctx, "生成周期交易失败",
					"recurring_id", r.ID,
					"user_id", r.UserID,
					"error", err)
				break
			}
			if !ok {
				logger.InfoContext(ctx, "周期交易已结束", "recurring_id", r.ID)
				break
			}
			created++
		}
	}

	if p.goals != nil {
		eval, err := p.goals.EvaluateGoals(ctx, day)
		if err != nil {
			logger.ErrorContext(ctx, "目标判定失败", "error", err)
		} else if eval.Achieved+eval.Failed > 0 {
			logger.InfoContext(ctx, "目标状态已更新", "achieved", eval.Achieved, "failed", eval.Failed)
		}
	}

	logger.InfoContext(ctx, "周期交易处理完成", "created", created, "total_checked", len(due))
	return created, nil
}

// processOccurrence 处理 r 的当前一期；返回 false 表示模板已结束
// 成功后 r.NextDue 前移到下一期
func (p *RecurrenceScheduler) processOccurrence(ctx context.Context, r *models.RecurringTransaction, today time.Time) (bool, error) {
	due := models.DateOf(r.NextDue)
	next, err := NextDue(r, due)
	if err != nil {
		return false, err
	}

	ended := false
	err = p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.Ended(due) {
			ended = true
			return tx.Model(&models.RecurringTransaction{}).
				Where("id = ? AND next_due = ? AND status = ?", r.ID, due, models.RecurringActive).
				Update("status", models.RecurringCompleted).Error
		}

		res := tx.Model(&models.RecurringTransaction{}).
			Where("id = ? AND next_due = ? AND status = ?", r.ID, due, models.RecurringActive).
			Updates(map[string]interface{}{
				"next_due":       next,
				"last_processed": today,
			})
		if res.Error != nil {
			return fmt.Errorf("抢占周期交易失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return errClaimLost
		}

		recurringID := r.ID
		t := &models.Transaction{
			AccountID:         r.AccountID,
			CategoryID:        r.CategoryID,
			TransferAccountID: r.TransferAccountID,
			Amount:            r.Amount,
			TransactionType:   r.TransactionType,
			Description:       r.Description,
			Date:              due,
			Status:            models.StatusCompleted,
			IsRecurring:       true,
			RecurringID:       &recurringID,
		}
		return p.ledger.createInTx(tx, r.UserID, t)
	})
	if err != nil {
		return false, err
	}
	if ended {
		return false, nil
	}

	r.NextDue = next
	r.LastProcessed = &today
	slog.InfoContext(ctx, "已根据周期交易生成交易",
		"recurring_id", r.ID,
		"user_id", r.UserID,
		"date", due.Format(models.DateLayout),
		"amount", r.Amount.StringFixed(2),
		"frequency", r.Frequency)
	return true, nil
}

// Run 启动时执行一次，之后每隔 interval 执行一次，直到 ctx 取消
func (p *RecurrenceScheduler) Run(ctx context.Context, interval time.Duration) {
	slog.Info("周期交易调度已启动", "interval", interval.String())
	p.runOnce(ctx, time.Now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("周期交易调度已停止")
			return
		case now := <-ticker.C:
			p.runOnce(ctx, now)
		}
	}
}

func (p *RecurrenceScheduler) runOnce(ctx context.Context, now time.Time) {
	if _, err := p.ProcessDue(ctx, now.UTC()); err != nil && ctx.Err() == nil {
		slog.Error("周期交易处理失败", "error", err)
	}
}
