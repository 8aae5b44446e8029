package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fintrack/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GoalNotifier 目标达成通知
type GoalNotifier interface {
	NotifyGoalAchieved(user *models.User, goal *models.Goal) error
}

// GoalService 理财目标：增删改查、存入进度、到期判定
// 当前金额达到目标金额时自动转为 ACHIEVED
type GoalService struct {
	db       *gorm.DB
	notifier GoalNotifier
}

// NewGoalService 创建目标服务，notifier 可为 nil
func NewGoalService(db *gorm.DB, notifier GoalNotifier) *GoalService {
	return &GoalService{db: db, notifier: notifier}
}

func validateGoal(g *models.Goal) error {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return invalid("目标名称不能为空")
	}
	if !g.TargetAmount.IsPositive() {
		return invalid("目标金额必须大于 0")
	}
	if g.CurrentAmount.IsNegative() {
		return invalid("当前金额不能为负数")
	}
	g.TargetAmount = g.TargetAmount.Round(2)
	g.CurrentAmount = g.CurrentAmount.Round(2)
	if g.GoalType == "" {
		g.GoalType = models.GoalSavings
	}
	if !g.GoalType.Valid() {
		return invalid("无效的目标类型: %s", g.GoalType)
	}
	if g.Priority == "" {
		g.Priority = models.PriorityMedium
	}
	if !g.Priority.Valid() {
		return invalid("无效的优先级: %s", g.Priority)
	}
	if g.Deadline != nil {
		d := models.DateOf(*g.Deadline)
		g.Deadline = &d
	}
	return nil
}

// settle 根据金额决定状态；失败的目标不会自动恢复
func settle(g *models.Goal) (achieved bool) {
	switch {
	case g.Status == models.GoalFailed:
		return false
	case g.Reached():
		achieved = g.Status != models.GoalAchieved
		g.Status = models.GoalAchieved
	default:
		g.Status = models.GoalInProgress
	}
	return achieved
}

// CreateGoal 创建目标
func (s *GoalService) CreateGoal(userID uint, g *models.Goal) error {
	if err := validateGoal(g); err != nil {
		return err
	}
	g.ID = 0
	g.UserID = userID
	g.Status = models.GoalInProgress
	achieved := settle(g)
	if err := s.db.Create(g).Error; err != nil {
		return fmt.Errorf("创建目标失败: %w", err)
	}
	if achieved {
		s.notify(g)
	}
	return nil
}

// GetGoal 获取目标
func (s *GoalService) GetGoal(userID, id uint) (*models.Goal, error) {
	var g models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&g).Error; err != nil {
		return nil, notFound(err, "目标")
	}
	return &g, nil
}

// ListGoals 列出目标，按优先级和截止日期排序
func (s *GoalService) ListGoals(userID uint, status models.GoalStatus) ([]models.Goal, error) {
	query := s.db.Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var list []models.Goal
	order := "CASE priority WHEN 'HIGH' THEN 0 WHEN 'MEDIUM' THEN 1 ELSE 2 END, deadline ASC, id ASC"
	if err := query.Order(order).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询目标失败: %w", err)
	}
	return list, nil
}

// UpdateGoal 更新目标，金额变化后重新判定状态
func (s *GoalService) UpdateGoal(userID, id uint, in *models.Goal) (*models.Goal, error) {
	if err := validateGoal(in); err != nil {
		return nil, err
	}
	var achieved bool
	var updated models.Goal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", id, userID).
			First(&updated).Error; err != nil {
			return notFound(err, "目标")
		}
		updated.Name = in.Name
		updated.Description = in.Description
		updated.TargetAmount = in.TargetAmount
		updated.CurrentAmount = in.CurrentAmount
		updated.Deadline = in.Deadline
		updated.GoalType = in.GoalType
		updated.Priority = in.Priority
		achieved = settle(&updated)
		return tx.Save(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	if achieved {
		s.notify(&updated)
	}
	return &updated, nil
}

// DeleteGoal 删除目标
func (s *GoalService) DeleteGoal(userID, id uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Goal{})
	if result.Error != nil {
		return fmt.Errorf("删除目标失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("目标%w", ErrNotFound)
	}
	return nil
}

// Contribute 向目标存入金额，达到目标金额时转为 ACHIEVED 并发送通知
func (s *GoalService) Contribute(userID, id uint, amount decimal.Decimal) (*models.Goal, error) {
	if !amount.IsPositive() {
		return nil, invalid("存入金额必须大于 0")
	}
	var achieved bool
	var g models.Goal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", id, userID).
			First(&g).Error; err != nil {
			return notFound(err, "目标")
		}
		if g.Status == models.GoalFailed {
			return invalid("已失败的目标不能继续存入")
		}
		g.CurrentAmount = g.CurrentAmount.Add(amount).Round(2)
		achieved = settle(&g)
		return tx.Model(&g).Updates(map[string]interface{}{
			"current_amount": g.CurrentAmount,
			"status":         g.Status,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	if achieved {
		s.notify(&g)
	}
	return &g, nil
}

// GoalEvaluation 到期判定结果
type GoalEvaluation struct {
	Achieved int
	Failed   int
}

// EvaluateGoals 扫描所有进行中的目标：已达成的转为 ACHIEVED，截止日期已过的转为 FAILED
func (s *GoalService) EvaluateGoals(ctx context.Context, today time.Time) (GoalEvaluation, error) {
	var result GoalEvaluation
	day := models.DateOf(today)

	var goals []models.Goal
	if err := s.db.WithContext(ctx).
		Where("status = ?", models.GoalInProgress).
		Find(&goals).Error; err != nil {
		return result, fmt.Errorf("查询目标失败: %w", err)
	}

	for i := range goals {
		g := &goals[i]
		var next models.GoalStatus
		switch {
		case g.Reached():
			next = models.GoalAchieved
		case g.Deadline != nil && models.DateOf(*g.Deadline).Before(day):
			next = models.GoalFailed
		default:
			continue
		}

		// 条件更新，避免与同时进行的存入操作互相覆盖
		res := s.db.WithContext(ctx).Model(&models.Goal{}).
			Where("id = ? AND status = ?", g.ID, models.GoalInProgress).
			Update("status", next)
		if res.Error != nil {
			slog.ErrorContext(ctx, "更新目标状态失败", "goal_id", g.ID, "error", res.Error)
			continue
		}
		if res.RowsAffected == 0 {
			continue
		}
		g.Status = next
		if next == models.GoalAchieved {
			result.Achieved++
			s.notify(g)
		} else {
			result.Failed++
		}
	}
	return result, nil
}

// notify 通知失败只记录日志，不影响已提交的状态
func (s *GoalService) notify(g *models.Goal) {
	if s.notifier == nil {
		return
	}
	var user models.User
	if err := s.db.First(&user, g.UserID).Error; err != nil {
		slog.Warn("目标达成通知跳过：用户不存在", "user_id", g.UserID, "goal_id", g.ID)
		return
	}
	if err := s.notifier.NotifyGoalAchieved(&user, g); err != nil {
		slog.Error("目标达成通知发送失败", "user_id", g.UserID, "goal_id", g.ID, "error", err)
	}
}
