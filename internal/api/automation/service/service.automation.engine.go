package autosvc

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	autmodels "meta_engage/internal/api/automation/models"
	fbmodels "meta_engage/internal/api/fb/models"
	fbsvc "meta_engage/internal/api/fb/service"
	"meta_engage/internal/common"
	"meta_engage/internal/logger"
	"meta_engage/internal/platform"
)

// isNotFound phân biệt "trang không có rule" (bình thường) với lỗi thật
func isNotFound(err error) bool {
	return errors.Is(err, common.ErrNotFound)
}

// defaultContactInfoFields các field xin mặc định khi contact_info không cấu hình
var defaultContactInfoFields = []string{"email", "phone"}

// automationStore các truy vấn automation mà engine cần
type automationStore interface {
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]autmodels.Automation, error)
	FindActiveByPageAndType(ctx context.Context, pageID primitive.ObjectID, automationType string) ([]autmodels.Automation, error)
	FindOneActiveByPageAndType(ctx context.Context, pageID primitive.ObjectID, automationType string) (autmodels.Automation, error)
	RecordTrigger(ctx context.Context, id primitive.ObjectID) error
}

// keywordStore các truy vấn keyword mà engine cần
type keywordStore interface {
	FindActiveByAutomation(ctx context.Context, automationID primitive.ObjectID) ([]autmodels.Keyword, error)
	RecordMatch(ctx context.Context, id primitive.ObjectID) error
}

// instantReplyStore các truy vấn instant reply mà engine cần
type instantReplyStore interface {
	FindFirstActiveByAutomations(ctx context.Context, automationIDs []primitive.ObjectID) (autmodels.InstantReply, error)
	RecordTrigger(ctx context.Context, id primitive.ObjectID) error
}

// contactStore tra cứu contact để cá nhân hóa lời chào
type contactStore interface {
	FindOneByPageAndUser(ctx context.Context, pageID primitive.ObjectID, platformUserID string) (fbmodels.FbContact, error)
}

// RuleEngine đánh giá chuỗi rule theo thứ tự cố định với một tin nhắn đến:
// keyword match, away message, instant reply, contact info. Rule đầu tiên bắn
// sẽ kết thúc chuỗi (short-circuit), không rule nào bắn là kết quả bình thường.
type RuleEngine struct {
	api                 platform.API
	automationService   automationStore
	keywordService      keywordStore
	instantReplyService instantReplyStore
	contactService      contactStore
}

// NewRuleEngine tạo mới RuleEngine với một platform client cho trước
func NewRuleEngine(api platform.API) (*RuleEngine, error) {
	automationService, err := NewAutomationService()
	if err != nil {
		return nil, err
	}
	keywordService, err := NewKeywordService()
	if err != nil {
		return nil, err
	}
	instantReplyService, err := NewInstantReplyService()
	if err != nil {
		return nil, err
	}
	contactService, err := fbsvc.NewFbContactService()
	if err != nil {
		return nil, err
	}
	return &RuleEngine{
		api:                 api,
		automationService:   automationService,
		keywordService:      keywordService,
		instantReplyService: instantReplyService,
		contactService:      contactService,
	}, nil
}

// matchKeyword kiểm tra text có khớp keyword theo matchType không.
// Tất cả kiểu match đều không phân biệt hoa thường.
// Pattern regex không compile được coi như không match, không bao giờ panic.
func matchKeyword(text string, keyword string, matchType string) bool {
	lowerText := strings.ToLower(text)
	lowerKeyword := strings.ToLower(keyword)

	switch matchType {
	case autmodels.MatchTypeExact:
		return lowerText == lowerKeyword
	case autmodels.MatchTypeStartsWith:
		return strings.HasPrefix(lowerText, lowerKeyword)
	case autmodels.MatchTypeEndsWith:
		return strings.HasSuffix(lowerText, lowerKeyword)
	case autmodels.MatchTypeRegex:
		re, err := regexp.Compile("(?i)" + keyword)
		if err != nil {
			return false
		}
		return re.MatchString(text)
	default:
		// contains là mặc định
		return strings.Contains(lowerText, lowerKeyword)
	}
}

// sendText gửi tin nhắn văn bản tới người dùng qua nền tảng
func (e *RuleEngine) sendText(ctx context.Context, page *fbmodels.FbPage, recipientID string, text string) error {
	_, err := e.api.SendMessage(ctx, page.PageAccessToken, recipientID, text)
	return err
}

// ProcessInboundMessage chạy chuỗi rule với một tin nhắn đến.
// Trả về true nếu một rule đã bắn (đã gửi hoặc đã lên lịch gửi trả lời).
func (e *RuleEngine) ProcessInboundMessage(ctx context.Context, page *fbmodels.FbPage, senderID string, messageText string) (bool, error) {
	if handled, err := e.evaluateKeywords(ctx, page, senderID, messageText); handled || err != nil {
		return handled, err
	}
	if handled, err := e.evaluateAwayMessage(ctx, page, senderID); handled || err != nil {
		return handled, err
	}
	if handled, err := e.evaluateInstantReply(ctx, page, senderID); handled || err != nil {
		return handled, err
	}
	return e.evaluateContactInfo(ctx, page, senderID)
}

// evaluateKeywords bước 1 của chuỗi: duyệt mọi keyword đang bật của các
// automation custom_keyword, gửi response của keyword khớp đầu tiên.
func (e *RuleEngine) evaluateKeywords(ctx context.Context, page *fbmodels.FbPage, senderID string, messageText string) (bool, error) {
	automations, err := e.automationService.FindActiveByPageAndType(ctx, page.ID, autmodels.AutomationTypeCustomKeyword)
	if err != nil {
		return false, err
	}

	for i := range automations {
		keywords, err := e.keywordService.FindActiveByAutomation(ctx, automations[i].ID)
		if err != nil {
			return false, err
		}
		for j := range keywords {
			if !matchKeyword(messageText, keywords[j].Keyword, keywords[j].MatchType) {
				continue
			}
			if err := e.sendText(ctx, page, senderID, keywords[j].ResponseMessage); err != nil {
				return false, err
			}
			// Lỗi tăng counter chỉ ghi log, tin trả lời đã gửi thành công
			if err := e.keywordService.RecordMatch(ctx, keywords[j].ID); err != nil {
				logger.GetAppLogger().WithError(err).WithField("keywordId", keywords[j].ID.Hex()).Warn("🤖 [RULE] Tăng match counter thất bại")
			}
			if err := e.automationService.RecordTrigger(ctx, automations[i].ID); err != nil {
				logger.GetAppLogger().WithError(err).WithField("automationId", automations[i].ID.Hex()).Warn("🤖 [RULE] Tăng trigger counter thất bại")
			}
			logger.GetAppLogger().WithFields(logrus.Fields{
				"pageId":  page.PageId,
				"keyword": keywords[j].Keyword,
			}).Info("🤖 [RULE] Keyword match, đã trả lời")
			return true, nil
		}
	}
	return false, nil
}

// evaluateAwayMessage bước 2 của chuỗi: gửi tin vắng mặt nếu trang có rule away_message đang bật
func (e *RuleEngine) evaluateAwayMessage(ctx context.Context, page *fbmodels.FbPage, senderID string) (bool, error) {
	automation, err := e.automationService.FindOneActiveByPageAndType(ctx, page.ID, autmodels.AutomationTypeAwayMessage)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	cfg, err := automation.AwayConfig()
	if err != nil || cfg.Message == "" {
		return false, nil
	}

	if err := e.sendText(ctx, page, senderID, cfg.Message); err != nil {
		return false, err
	}
	if err := e.automationService.RecordTrigger(ctx, automation.ID); err != nil {
		logger.GetAppLogger().WithError(err).WithField("automationId", automation.ID.Hex()).Warn("🤖 [RULE] Tăng trigger counter thất bại")
	}
	logger.GetAppLogger().WithField("pageId", page.PageId).Info("🤖 [RULE] Đã gửi away message")
	return true, nil
}

// evaluateInstantReply bước 3 của chuỗi: gửi (hoặc lên lịch gửi) instant reply
// đang bật đầu tiên trong các automation của trang.
func (e *RuleEngine) evaluateInstantReply(ctx context.Context, page *fbmodels.FbPage, senderID string) (bool, error) {
	automations, err := e.automationService.Find(ctx, map[string]interface{}{"pageId": page.ID, "isActive": true}, nil)
	if err != nil {
		return false, err
	}
	ids := make([]primitive.ObjectID, 0, len(automations))
	for i := range automations {
		ids = append(ids, automations[i].ID)
	}

	reply, err := e.instantReplyService.FindFirstActiveByAutomations(ctx, ids)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	text := reply.Message
	if reply.IncludeName {
		if contact, err := e.contactService.FindOneByPageAndUser(ctx, page.ID, senderID); err == nil {
			text = personalizeReply(contact.Name, reply.Message)
		}
	}

	if reply.DelaySeconds > 0 {
		e.scheduleSend(page, senderID, text, reply, time.Duration(reply.DelaySeconds)*time.Second)
	} else {
		if err := e.sendText(ctx, page, senderID, text); err != nil {
			return false, err
		}
		e.recordInstantReply(ctx, &reply)
	}
	return true, nil
}

// personalizeReply chèn tên người nhận vào lời chào nếu biết tên
func personalizeReply(contactName string, message string) string {
	if contactName == "" {
		return message
	}
	return fmt.Sprintf("Hi %s,\n\n%s", contactName, message)
}

// scheduleSend lên lịch gửi instant reply có delay, fire-and-forget.
// Process restart trước khi timer nổ thì tin bị bỏ, chấp nhận vì lần resync
// kế tiếp với dữ liệu idempotent sẽ bù lại trạng thái.
func (e *RuleEngine) scheduleSend(page *fbmodels.FbPage, recipientID string, text string, reply autmodels.InstantReply, delay time.Duration) {
	pageCopy := *page
	time.AfterFunc(delay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := e.sendText(ctx, &pageCopy, recipientID, text); err != nil {
			logger.GetAppLogger().WithError(err).WithFields(logrus.Fields{
				"pageId":  pageCopy.PageId,
				"replyId": reply.ID.Hex(),
			}).Error("🤖 [RULE] Gửi instant reply theo lịch thất bại")
			return
		}
		e.recordInstantReply(ctx, &reply)
	})
}

// recordInstantReply tăng counter của reply và automation sở hữu nó
func (e *RuleEngine) recordInstantReply(ctx context.Context, reply *autmodels.InstantReply) {
	if err := e.instantReplyService.RecordTrigger(ctx, reply.ID); err != nil {
		logger.GetAppLogger().WithError(err).WithField("replyId", reply.ID.Hex()).Warn("🤖 [RULE] Tăng trigger counter thất bại")
	}
	if !reply.AutomationID.IsZero() {
		if err := e.automationService.RecordTrigger(ctx, reply.AutomationID); err != nil {
			logger.GetAppLogger().WithError(err).WithField("automationId", reply.AutomationID.Hex()).Warn("🤖 [RULE] Tăng trigger counter thất bại")
		}
	}
}

// evaluateContactInfo bước 4 (cuối) của chuỗi: xin thông tin liên hệ
// khi không rule nào trước đó bắn.
func (e *RuleEngine) evaluateContactInfo(ctx context.Context, page *fbmodels.FbPage, senderID string) (bool, error) {
	automation, err := e.automationService.FindOneActiveByPageAndType(ctx, page.ID, autmodels.AutomationTypeContactInfo)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	cfg, err := automation.ContactConfig()
	if err != nil {
		cfg = autmodels.ContactInfoConfig{}
	}
	text := cfg.Message
	if text == "" {
		text = buildContactInfoMessage(cfg.Fields)
	}

	if err := e.sendText(ctx, page, senderID, text); err != nil {
		return false, err
	}
	if err := e.automationService.RecordTrigger(ctx, automation.ID); err != nil {
		logger.GetAppLogger().WithError(err).WithField("automationId", automation.ID.Hex()).Warn("🤖 [RULE] Tăng trigger counter thất bại")
	}
	logger.GetAppLogger().WithField("pageId", page.PageId).Info("🤖 [RULE] Đã gửi contact info request")
	return true, nil
}

// buildContactInfoMessage dựng message mặc định xin thông tin liên hệ
func buildContactInfoMessage(fields []string) string {
	if len(fields) == 0 {
		fields = defaultContactInfoFields
	}
	return fmt.Sprintf("Thank you for contacting us! Could you please provide your %s so we can assist you better?", strings.Join(fields, " and "))
}

// HandleCommentToMessage nhắn tin trực tiếp cho tác giả comment nếu trang
// có automation comment_to_message đang bật.
func (e *RuleEngine) HandleCommentToMessage(ctx context.Context, page *fbmodels.FbPage, authorID string, commentText string, postID string, commentID string) (bool, error) {
	automation, err := e.automationService.FindOneActiveByPageAndType(ctx, page.ID, autmodels.AutomationTypeCommentToMessage)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	cfg, err := automation.CommentConfig()
	if err != nil || cfg.Message == "" {
		return false, nil
	}

	if err := e.sendText(ctx, page, authorID, cfg.Message); err != nil {
		return false, err
	}
	if err := e.automationService.RecordTrigger(ctx, automation.ID); err != nil {
		logger.GetAppLogger().WithError(err).WithField("automationId", automation.ID.Hex()).Warn("🤖 [RULE] Tăng trigger counter thất bại")
	}
	logger.GetAppLogger().WithFields(logrus.Fields{
		"pageId":    page.PageId,
		"postId":    postID,
		"commentId": commentID,
	}).Info("🤖 [RULE] Đã nhắn tin cho người comment")
	return true, nil
}
