// Package webhookhdl - handler webhook của nền tảng: verify subscription và dispatch event batch.
package webhookhdl

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "meta_engage/internal/api/base/handler"
	autosvc "meta_engage/internal/api/automation/service"
	faqmodels "meta_engage/internal/api/faq/models"
	faqsvc "meta_engage/internal/api/faq/service"
	fbmodels "meta_engage/internal/api/fb/models"
	fbsvc "meta_engage/internal/api/fb/service"
	syncsvc "meta_engage/internal/api/sync/service"
	webhookdto "meta_engage/internal/api/webhook/dto"
	webhookmodels "meta_engage/internal/api/webhook/models"
	webhooksvc "meta_engage/internal/api/webhook/service"
	"meta_engage/internal/common"
	"meta_engage/internal/global"
	"meta_engage/internal/logger"
	"meta_engage/internal/platform"
)

// eventAckBody body trả về cho nền tảng ngay khi batch được nhận,
// độc lập với kết quả xử lý từng event (nền tảng retry khi không nhận 2xx).
const eventAckBody = "EVENT_RECEIVED"

// pageResolver tra trang đã kết nối theo pageId nền tảng
type pageResolver interface {
	FindOneByPageID(ctx context.Context, pageID string) (fbmodels.FbPage, error)
}

// conversationResyncer kéo lại hội thoại/tin nhắn khi có event đến
type conversationResyncer interface {
	PullConversations(ctx context.Context, page *fbmodels.FbPage) ([]fbmodels.FbConversation, error)
	PullMessages(ctx context.Context, page *fbmodels.FbPage, conv *fbmodels.FbConversation) (int, error)
}

// conversationStore các thao tác hội thoại local mà dispatcher cần
type conversationStore interface {
	FindOneByParticipant(ctx context.Context, pageID primitive.ObjectID, participantID string) (fbmodels.FbConversation, error)
	MarkAnswered(ctx context.Context, conversationID string) error
}

// inboundRuleEngine chuỗi rule cho tin nhắn đến và comment
type inboundRuleEngine interface {
	ProcessInboundMessage(ctx context.Context, page *fbmodels.FbPage, senderID string, messageText string) (bool, error)
	HandleCommentToMessage(ctx context.Context, page *fbmodels.FbPage, authorID string, commentText string, postID string, commentID string) (bool, error)
}

// faqResponder FAQ fallback khi không rule nào bắn
type faqResponder interface {
	Search(ctx context.Context, pageID primitive.ObjectID, query string) ([]faqmodels.Faq, error)
	SendAnswer(ctx context.Context, faq *faqmodels.Faq, page *fbmodels.FbPage, recipientID string, conversationID primitive.ObjectID, triggeredBy string) (faqmodels.FaqLog, error)
}

// webhookLogStore lưu và cập nhật trạng thái xử lý của webhook log
type webhookLogStore interface {
	CreateWebhookLog(ctx context.Context, log webhookmodels.WebhookLog) (*webhookmodels.WebhookLog, error)
	UpdateProcessedStatus(ctx context.Context, logID primitive.ObjectID, processed bool, errorMsg string) error
}

// PlatformWebhookHandler xử lý webhook từ nền tảng messaging
type PlatformWebhookHandler struct {
	pageService       pageResolver
	syncService       conversationResyncer
	conversations     conversationStore
	ruleEngine        inboundRuleEngine
	faqService        faqResponder
	webhookLogService webhookLogStore
}

// NewPlatformWebhookHandler tạo mới PlatformWebhookHandler.
// Các engine dùng chung một platform client build từ cấu hình server.
func NewPlatformWebhookHandler() (*PlatformWebhookHandler, error) {
	cfg := platform.DefaultConfig()
	if global.ServerConfig != nil {
		if global.ServerConfig.GraphBaseURL != "" {
			cfg.BaseURL = global.ServerConfig.GraphBaseURL
		}
		if global.ServerConfig.GraphAPIVersion != "" {
			cfg.APIVersion = global.ServerConfig.GraphAPIVersion
		}
		if global.ServerConfig.GraphTimeoutSeconds > 0 {
			cfg.Timeout = time.Duration(global.ServerConfig.GraphTimeoutSeconds) * time.Second
		}
	}
	api := platform.NewClient(cfg)
	return NewPlatformWebhookHandlerWithAPI(api)
}

// NewPlatformWebhookHandlerWithAPI tạo handler với platform client cho trước
func NewPlatformWebhookHandlerWithAPI(api platform.API) (*PlatformWebhookHandler, error) {
	pageService, err := fbsvc.NewFbPageService()
	if err != nil {
		return nil, fmt.Errorf("failed to create page service: %w", err)
	}
	syncService, err := syncsvc.NewSyncService(api)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync service: %w", err)
	}
	ruleEngine, err := autosvc.NewRuleEngine(api)
	if err != nil {
		return nil, fmt.Errorf("failed to create rule engine: %w", err)
	}
	faqService, err := faqsvc.NewFaqService(api)
	if err != nil {
		return nil, fmt.Errorf("failed to create faq service: %w", err)
	}
	webhookLogService, err := webhooksvc.NewWebhookLogService()
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook log service: %w", err)
	}
	return &PlatformWebhookHandler{
		pageService:       pageService,
		syncService:       syncService,
		conversations:     syncService.ConversationService(),
		ruleEngine:        ruleEngine,
		faqService:        faqService,
		webhookLogService: webhookLogService,
	}, nil
}

// HandleVerify xử lý GET verify subscription: echo hub.challenge khi
// hub.mode=subscribe và hub.verify_token khớp cấu hình, ngược lại 403.
func (h *PlatformWebhookHandler) HandleVerify(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		mode := c.Query("hub.mode")
		token := c.Query("hub.verify_token")
		challenge := c.Query("hub.challenge")

		if mode == "" || token == "" {
			return c.Status(common.StatusBadRequest).SendString("Bad Request")
		}

		if mode == "subscribe" && token == global.ServerConfig.WebhookVerifyToken {
			logger.GetAppLogger().Info("🔔 [WEBHOOK] Verify subscription thành công")
			return c.Status(common.StatusOK).SendString(challenge)
		}

		logger.GetAppLogger().WithFields(logrus.Fields{"mode": mode}).Warn("🔔 [WEBHOOK] Verify subscription bị từ chối")
		return c.Status(common.StatusForbidden).SendString("Forbidden")
	})
}

// HandleEvents xử lý POST event batch. Luôn ack ngay với EVENT_RECEIVED;
// lỗi của từng entry/event chỉ ghi log, không bao giờ fail cả batch.
func (h *PlatformWebhookHandler) HandleEvents(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		log := logger.GetAppLogger()
		rawBody := string(c.Body())
		ctx := c.Context()

		var req webhookdto.WebhookEventRequest
		parseErr := json.Unmarshal(c.Body(), &req)

		webhookLog := h.saveWebhookLog(ctx, c, &req, rawBody, parseErr)

		if parseErr != nil || req.Object != "page" {
			// Payload lạ vẫn ack để nền tảng không retry
			return c.Status(common.StatusOK).SendString(eventAckBody)
		}

		var firstErr error
		for i := range req.Entry {
			if err := h.processEntry(ctx, &req.Entry[i]); err != nil && firstErr == nil {
				firstErr = err
			}
		}

		if webhookLog != nil {
			errorMsg := ""
			if firstErr != nil {
				errorMsg = firstErr.Error()
			}
			if err := h.webhookLogService.UpdateProcessedStatus(ctx, webhookLog.ID, firstErr == nil, errorMsg); err != nil {
				log.WithError(err).Warn("🔔 [WEBHOOK] Cập nhật trạng thái webhook log thất bại")
			}
		}

		return c.Status(common.StatusOK).SendString(eventAckBody)
	})
}

// saveWebhookLog lưu log của request webhook, lỗi lưu log không chặn xử lý
func (h *PlatformWebhookHandler) saveWebhookLog(ctx context.Context, c fiber.Ctx, req *webhookdto.WebhookEventRequest, rawBody string, parseErr error) *webhookmodels.WebhookLog {
	entry := webhookmodels.WebhookLog{
		EventType:   "page_events",
		RawBody:     rawBody,
		IPAddress:   c.IP(),
		UserAgent:   string(c.Request().Header.UserAgent()),
		ReceivedAt:  time.Now().UnixMilli(),
		RequestBody: map[string]interface{}{},
	}
	_ = json.Unmarshal([]byte(rawBody), &entry.RequestBody)
	if parseErr == nil && len(req.Entry) > 0 {
		entry.PageId = req.Entry[0].ID
	}
	if parseErr != nil {
		entry.ProcessError = parseErr.Error()
	}

	saved, err := h.webhookLogService.CreateWebhookLog(ctx, entry)
	if err != nil {
		logger.GetAppLogger().WithError(err).Warn("🔔 [WEBHOOK] Không thể lưu webhook log")
		return nil
	}
	return saved
}

// processEntry xử lý một entry theo trang; trang không resolve được chỉ ghi log và bỏ qua
func (h *PlatformWebhookHandler) processEntry(ctx context.Context, entry *webhookdto.WebhookEntry) error {
	log := logger.GetAppLogger()

	page, err := h.pageService.FindOneByPageID(ctx, entry.ID)
	if err != nil {
		log.WithField("pageId", entry.ID).Warn("🔔 [WEBHOOK] Entry cho trang chưa kết nối, bỏ qua")
		return nil
	}

	var firstErr error
	for i := range entry.Messaging {
		if err := h.processMessagingEvent(ctx, &page, &entry.Messaging[i]); err != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"pageId": entry.ID,
				"sender": entry.Messaging[i].Sender.ID,
			}).Error("🔔 [WEBHOOK] Lỗi xử lý messaging event")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	for i := range entry.Changes {
		if err := h.processChangeEvent(ctx, &page, &entry.Changes[i]); err != nil {
			log.WithError(err).WithField("pageId", entry.ID).Error("🔔 [WEBHOOK] Lỗi xử lý feed event")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// processMessagingEvent route một messaging sub-event tới xử lý tương ứng
func (h *PlatformWebhookHandler) processMessagingEvent(ctx context.Context, page *fbmodels.FbPage, event *webhookdto.MessagingEvent) error {
	switch {
	case event.Message != nil:
		// Echo là tin trang tự gửi vọng lại, không chạy rule chain
		if event.Message.IsEcho || event.Sender.ID == page.PageId {
			return nil
		}
		return h.handleInboundMessage(ctx, page, event.Sender.ID, event.Message.Text)
	case event.Read != nil:
		return h.handleReadEvent(ctx, page, event.Sender.ID)
	case event.Postback != nil:
		logger.GetAppLogger().WithFields(logrus.Fields{
			"pageId":  page.PageId,
			"sender":  event.Sender.ID,
			"payload": event.Postback.Payload,
		}).Info("🔔 [WEBHOOK] Nhận postback")
		return nil
	case event.Delivery != nil:
		// Delivery receipt không cần side effect
		return nil
	default:
		return nil
	}
}

// handleInboundMessage xử lý một tin nhắn đến: resync hội thoại, chạy rule chain,
// rồi FAQ fallback khi không rule nào bắn.
func (h *PlatformWebhookHandler) handleInboundMessage(ctx context.Context, page *fbmodels.FbPage, senderID string, text string) error {
	conv := h.resyncConversation(ctx, page, senderID)

	handled, err := h.ruleEngine.ProcessInboundMessage(ctx, page, senderID, text)
	if err != nil {
		return err
	}
	if handled {
		return nil
	}

	// FAQ fallback: gửi câu trả lời của FAQ khớp đầu tiên
	matches, err := h.faqService.Search(ctx, page.ID, text)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return nil
	}

	convID := primitive.NilObjectID
	if conv != nil {
		convID = conv.ID
	}
	_, err = h.faqService.SendAnswer(ctx, &matches[0], page, senderID, convID, text)
	return err
}

// resyncConversation kéo lại tin nhắn của hội thoại chứa sender; hội thoại chưa
// có local thì pull danh sách hội thoại trước. Lỗi resync không chặn rule chain.
func (h *PlatformWebhookHandler) resyncConversation(ctx context.Context, page *fbmodels.FbPage, senderID string) *fbmodels.FbConversation {
	log := logger.GetAppLogger()

	conv, err := h.conversations.FindOneByParticipant(ctx, page.ID, senderID)
	if err != nil {
		if _, pullErr := h.syncService.PullConversations(ctx, page); pullErr != nil {
			log.WithError(pullErr).WithField("pageId", page.PageId).Warn("🔔 [WEBHOOK] Pull hội thoại thất bại")
			return nil
		}
		conv, err = h.conversations.FindOneByParticipant(ctx, page.ID, senderID)
		if err != nil {
			log.WithField("sender", senderID).Warn("🔔 [WEBHOOK] Không tìm thấy hội thoại của sender sau khi pull")
			return nil
		}
	}

	if _, err := h.syncService.PullMessages(ctx, page, &conv); err != nil {
		log.WithError(err).WithField("conversationId", conv.ConversationId).Warn("🔔 [WEBHOOK] Resync tin nhắn thất bại")
	}
	return &conv
}

// handleReadEvent đánh dấu hội thoại của sender đã được trả lời
func (h *PlatformWebhookHandler) handleReadEvent(ctx context.Context, page *fbmodels.FbPage, senderID string) error {
	conv, err := h.conversations.FindOneByParticipant(ctx, page.ID, senderID)
	if err != nil {
		// Read receipt cho hội thoại chưa sync là bình thường
		return nil
	}
	return h.conversations.MarkAnswered(ctx, conv.ConversationId)
}

// processChangeEvent route feed change: comment mới được chuyển cho comment_to_message
func (h *PlatformWebhookHandler) processChangeEvent(ctx context.Context, page *fbmodels.FbPage, change *webhookdto.ChangeEvent) error {
	if change.Field != "feed" || change.Value.Item != "comment" {
		return nil
	}
	if change.Value.Verb != "" && change.Value.Verb != "add" {
		return nil
	}
	// Comment của chính trang không cần nhắn lại
	if change.Value.From.ID == page.PageId {
		return nil
	}
	_, err := h.ruleEngine.HandleCommentToMessage(ctx, page, change.Value.From.ID, change.Value.Message, change.Value.PostID, change.Value.CommentID)
	return err
}
