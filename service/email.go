package service

import (
	"fmt"
	"html"
	"log/slog"

	"fintrack/config"
	"fintrack/models"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg  *config.EmailConfig
	send func(m *gomail.Message) error
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	s := &EmailService{cfg: cfg}
	s.send = s.dialAndSend
	return s
}

// Enabled 邮件服务是否可用
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled
}

// NotifyGoalAchieved 目标达成通知
// 邮件服务未启用、用户关闭通知或未填写邮箱时静默跳过
func (s *EmailService) NotifyGoalAchieved(user *models.User, goal *models.Goal) error {
	if !s.Enabled() || user == nil || !user.NotificationsEnabled || user.Email == "" {
		return nil
	}

	subject := "【记账助手】恭喜，储蓄目标已达成"
	body := s.generateGoalAchievedBody(user, goal)
	if err := s.sendEmail(user.Email, subject, body); err != nil {
		return err
	}
	slog.Info("目标达成通知已发送", "user_id", user.ID, "goal_id", goal.ID)
	return nil
}

// generateGoalAchievedBody 生成目标达成邮件内容
func (s *EmailService) generateGoalAchievedBody(user *models.User, goal *models.Goal) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #10b981, #059669); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .amount-box { background: linear-gradient(135deg, #f0fdf4, #dcfce7); border: 2px dashed #10b981; border-radius: 12px; padding: 30px; text-align: center; margin: 30px 0; }
        .amount { font-size: 32px; font-weight: bold; color: #059669; font-family: 'Courier New', monospace; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🎉 记账助手</h1>
        </div>
        <div class="content">
            <p>尊敬的 <strong>%s</strong>，您好！</p>
            <p>您的目标「%s」已经达成：</p>
            <div class="amount-box">
                <span class="amount">%s %s / %s %s</span>
            </div>
            <p>继续保持良好的理财习惯！</p>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>如不想再收到此类邮件，可在设置中关闭通知</p>
        </div>
    </div>
</body>
</html>
`,
		html.EscapeString(user.Username),
		html.EscapeString(goal.Name),
		goal.CurrentAmount.StringFixed(2), user.Currency,
		goal.TargetAmount.StringFixed(2), user.Currency,
	)
}

// SendTestEmail 发送测试邮件
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.Enabled() {
		return fmt.Errorf("邮件服务未启用，请配置 FINTRACK_EMAIL_ENABLED=true")
	}

	subject := "【记账助手】邮件配置测试"
	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>✅ 邮件配置成功</h2>
    <p>如果您收到这封邮件，说明邮件服务配置正确。</p>
    <p style="color: #666;">—— 记账助手</p>
</body>
</html>
`
	return s.sendEmail(toEmail, subject, body)
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.send(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

func (s *EmailService) dialAndSend(m *gomail.Message) error {
	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}
