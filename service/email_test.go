package service

import (
	"errors"
	"testing"

	"fintrack/config"
	"fintrack/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func newTestEmailService(enabled bool) (*EmailService, *[]*gomail.Message) {
	s := NewEmailService(&config.EmailConfig{Enabled: enabled, Username: "noreply@example.com", From: "记账助手"})
	sent := &[]*gomail.Message{}
	s.send = func(m *gomail.Message) error {
		*sent = append(*sent, m)
		return nil
	}
	return s, sent
}

func testGoal() *models.Goal {
	return &models.Goal{
		ID:            7,
		Name:          "应急基金",
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(1000),
	}
}

func TestGenerateGoalAchievedBody(t *testing.T) {
	s, _ := newTestEmailService(true)
	user := &models.User{Username: "张三<script>", Currency: "CNY"}
	body := s.generateGoalAchievedBody(user, testGoal())
	assert.Contains(t, body, "张三&lt;script&gt;")
	assert.Contains(t, body, "应急基金")
	assert.Contains(t, body, "1000.00 CNY / 1000.00 CNY")
}

func TestNotifyGoalAchieved(t *testing.T) {
	user := &models.User{ID: 1, Username: "alice", Email: "alice@example.com", NotificationsEnabled: true}

	t.Run("发送", func(t *testing.T) {
		s, sent := newTestEmailService(true)
		require.NoError(t, s.NotifyGoalAchieved(user, testGoal()))
		require.Len(t, *sent, 1)
		assert.Equal(t, []string{"alice@example.com"}, (*sent)[0].GetHeader("To"))
	})

	t.Run("服务未启用", func(t *testing.T) {
		s, sent := newTestEmailService(false)
		require.NoError(t, s.NotifyGoalAchieved(user, testGoal()))
		assert.Empty(t, *sent)
	})

	t.Run("用户关闭通知", func(t *testing.T) {
		s, sent := newTestEmailService(true)
		muted := *user
		muted.NotificationsEnabled = false
		require.NoError(t, s.NotifyGoalAchieved(&muted, testGoal()))
		assert.Empty(t, *sent)
	})

	t.Run("未填写邮箱", func(t *testing.T) {
		s, sent := newTestEmailService(true)
		noMail := *user
		noMail.Email = ""
		require.NoError(t, s.NotifyGoalAchieved(&noMail, testGoal()))
		assert.Empty(t, *sent)
	})

	t.Run("发送失败", func(t *testing.T) {
		s, _ := newTestEmailService(true)
		s.send = func(*gomail.Message) error { return errors.New("smtp down") }
		err := s.NotifyGoalAchieved(user, testGoal())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "发送邮件失败")
	})
}

func TestSendTestEmail_Disabled(t *testing.T) {
	s, sent := newTestEmailService(false)
	assert.Error(t, s.SendTestEmail("a@example.com"))
	assert.Empty(t, *sent)
}
