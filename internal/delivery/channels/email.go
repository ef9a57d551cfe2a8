// Package channels chứa các kênh gửi thông báo ra ngoài hệ thống.
package channels

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"meta_engage/internal/logger"
)

// EmailSender cấu hình SMTP để gửi email cảnh báo
type EmailSender struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
}

// SendAlertEmail gửi một email cảnh báo dạng HTML
func SendAlertEmail(sender *EmailSender, recipient string, subject string, htmlContent string) error {
	if sender.SMTPHost == "" || recipient == "" {
		return fmt.Errorf("thiếu cấu hình SMTP hoặc địa chỉ nhận")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", sender.FromEmail)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlContent)

	dialer := gomail.NewDialer(sender.SMTPHost, sender.SMTPPort, sender.SMTPUsername, sender.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("gửi email cảnh báo thất bại: %w", err)
	}

	logger.GetAppLogger().WithFields(map[string]interface{}{
		"to":      recipient,
		"subject": subject,
	}).Info("📧 [EMAIL] Đã gửi email cảnh báo")
	return nil
}
