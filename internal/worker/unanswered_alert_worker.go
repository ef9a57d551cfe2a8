// Package worker chứa các tiến trình chạy nền định kỳ.
package worker

import (
	"context"
	"fmt"
	"time"

	autmodels "meta_engage/internal/api/automation/models"
	autosvc "meta_engage/internal/api/automation/service"
	fbmodels "meta_engage/internal/api/fb/models"
	syncsvc "meta_engage/internal/api/sync/service"
	"meta_engage/internal/delivery/channels"
	"meta_engage/internal/global"
	"meta_engage/internal/logger"
)

// UnansweredAlertWorker quét định kỳ các trang có automation unanswered_alert
// và gửi email cảnh báo khi có hội thoại chưa trả lời quá ngưỡng giờ cấu hình.
type UnansweredAlertWorker struct {
	syncService       *syncsvc.SyncService
	automationService *autosvc.AutomationService
	interval          time.Duration // Khoảng thời gian giữa các lần quét
}

// NewUnansweredAlertWorker tạo mới UnansweredAlertWorker.
// interval dưới 1 phút bị nâng lên mặc định 30 phút.
func NewUnansweredAlertWorker(interval time.Duration) (*UnansweredAlertWorker, error) {
	syncService, err := syncsvc.NewSyncServiceFromConfig()
	if err != nil {
		return nil, err
	}
	automationService, err := autosvc.NewAutomationService()
	if err != nil {
		return nil, err
	}
	if interval < time.Minute {
		interval = 30 * time.Minute
	}
	return &UnansweredAlertWorker{
		syncService:       syncService,
		automationService: automationService,
		interval:          interval,
	}, nil
}

// Start chạy worker trong vòng lặp: mỗi interval quét toàn bộ trang active,
// panic trong một lần quét chỉ ghi log và chờ lần quét sau.
func (w *UnansweredAlertWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("⏰ [UNANSWERED] Starting Unanswered Alert Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("⏰ [UNANSWERED] Unanswered Alert Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("⏰ [UNANSWERED] Panic khi quét hội thoại chưa trả lời, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()
				w.scanAllPages(ctx)
			}()
		}
	}
}

// scanAllPages quét từng trang active; lỗi của một trang không chặn các trang khác
func (w *UnansweredAlertWorker) scanAllPages(ctx context.Context) {
	log := logger.GetAppLogger()

	pages, err := w.syncService.PageService().Find(ctx, map[string]interface{}{
		"status": fbmodels.PageStatusActive,
	}, nil)
	if err != nil {
		log.WithError(err).Error("⏰ [UNANSWERED] Lỗi lấy danh sách trang")
		return
	}

	for i := range pages {
		if err := w.scanPage(ctx, &pages[i]); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"pageId": pages[i].PageId,
			}).Error("⏰ [UNANSWERED] Lỗi quét trang")
		}
	}
}

// scanPage kiểm tra các automation unanswered_alert đang bật của một trang
func (w *UnansweredAlertWorker) scanPage(ctx context.Context, page *fbmodels.FbPage) error {
	log := logger.GetAppLogger()

	automations, err := w.automationService.FindActiveByPageAndType(ctx, page.ID, autmodels.AutomationTypeUnansweredAlert)
	if err != nil {
		return err
	}

	for i := range automations {
		automation := &automations[i]

		cfg, err := automation.AlertConfig()
		if err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"automationId": automation.ID.Hex(),
			}).Warn("⏰ [UNANSWERED] Config automation không hợp lệ, bỏ qua")
			continue
		}

		hours := cfg.Hours
		if hours <= 0 {
			hours = global.ServerConfig.UnansweredDefaultHours
		}
		recipient := cfg.Email
		if recipient == "" {
			recipient = global.ServerConfig.AlertEmailTo
		}

		conversations, err := w.syncService.GetUnanswered(ctx, page.PageId, hours)
		if err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"automationId": automation.ID.Hex(),
			}).Error("⏰ [UNANSWERED] Lỗi lấy hội thoại chưa trả lời")
			continue
		}
		if len(conversations) == 0 {
			continue
		}

		if err := w.sendAlert(page, hours, recipient, conversations); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"automationId": automation.ID.Hex(),
				"recipient":    recipient,
			}).Error("⏰ [UNANSWERED] Gửi email cảnh báo thất bại")
			continue
		}

		if err := w.automationService.RecordTrigger(ctx, automation.ID); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"automationId": automation.ID.Hex(),
			}).Warn("⏰ [UNANSWERED] Cập nhật trigger count thất bại")
		}

		log.WithFields(map[string]interface{}{
			"pageId":    page.PageId,
			"hours":     hours,
			"count":     len(conversations),
			"recipient": recipient,
		}).Info("⏰ [UNANSWERED] Đã gửi cảnh báo hội thoại chưa trả lời")
	}

	return nil
}

// sendAlert dựng nội dung và gửi email cảnh báo cho một trang
func (w *UnansweredAlertWorker) sendAlert(page *fbmodels.FbPage, hours int, recipient string, conversations []fbmodels.FbConversation) error {
	sender := &channels.EmailSender{
		SMTPHost:     global.ServerConfig.SMTPHost,
		SMTPPort:     global.ServerConfig.SMTPPort,
		SMTPUsername: global.ServerConfig.SMTPUsername,
		SMTPPassword: global.ServerConfig.SMTPPassword,
		FromEmail:    global.ServerConfig.AlertEmailFrom,
	}

	subject := fmt.Sprintf("[%s] %d hội thoại chưa trả lời quá %d giờ", page.Name, len(conversations), hours)

	rows := ""
	for i := range conversations {
		conv := &conversations[i]
		lastAt := time.UnixMilli(conv.LastMessageTime).Format("2006-01-02 15:04")
		rows += fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td></tr>", conv.ParticipantName, conv.LastMessageText, lastAt)
	}
	htmlContent := fmt.Sprintf(
		"<p>Trang <b>%s</b> có <b>%d</b> hội thoại chưa được trả lời quá <b>%d</b> giờ.</p>"+
			"<table border='1' cellpadding='5'><tr><th>Khách</th><th>Tin cuối</th><th>Thời điểm</th></tr>%s</table>",
		page.Name, len(conversations), hours, rows,
	)

	return channels.SendAlertEmail(sender, recipient, subject, htmlContent)
}
