// Package syncsvc đồng bộ hai chiều giữa MongoDB và Graph API:
// pull (account, page, conversation, message, contact) và push (reply, archive, mute, mark read, profile).
package syncsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	fbmodels "meta_engage/internal/api/fb/models"
	fbsvc "meta_engage/internal/api/fb/service"
	"meta_engage/internal/common"
	"meta_engage/internal/global"
	"meta_engage/internal/logger"
	"meta_engage/internal/platform"
)

// graphTimeLayout layout thời gian ISO8601 mà Graph API trả về (2024-01-15T10:30:00+0000)
const graphTimeLayout = "2006-01-02T15:04:05-0700"

// SyncService điều phối đồng bộ dữ liệu giữa nền tảng và MongoDB.
// Mọi thao tác push gọi nền tảng trước, chỉ ghi local khi nền tảng thành công.
type SyncService struct {
	api                 platform.API
	accountService     *fbsvc.FbAccountService
	pageService        *fbsvc.FbPageService
	conversationService *fbsvc.FbConversationService
	messageService     *fbsvc.FbMessageService
	contactService     *fbsvc.FbContactService
}

// NewSyncService tạo mới SyncService với một platform client cho trước
func NewSyncService(api platform.API) (*SyncService, error) {
	accountService, err := fbsvc.NewFbAccountService()
	if err != nil {
		return nil, err
	}
	pageService, err := fbsvc.NewFbPageService()
	if err != nil {
		return nil, err
	}
	conversationService, err := fbsvc.NewFbConversationService()
	if err != nil {
		return nil, err
	}
	messageService, err := fbsvc.NewFbMessageService()
	if err != nil {
		return nil, err
	}
	contactService, err := fbsvc.NewFbContactService()
	if err != nil {
		return nil, err
	}
	return &SyncService{
		api:                 api,
		accountService:     accountService,
		pageService:        pageService,
		conversationService: conversationService,
		messageService:     messageService,
		contactService:     contactService,
	}, nil
}

// NewSyncServiceFromConfig tạo mới SyncService với platform client build từ cấu hình server
func NewSyncServiceFromConfig() (*SyncService, error) {
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
	return NewSyncService(platform.NewClient(cfg))
}

// ParseGraphTime chuyển chuỗi thời gian ISO8601 của Graph API sang Unix ms.
// Trả về 0 nếu chuỗi rỗng hoặc không parse được.
func ParseGraphTime(value string) int64 {
	if value == "" {
		return 0
	}
	t, err := time.Parse(graphTimeLayout, value)
	if err != nil {
		// Một số endpoint trả về dạng có dấu hai chấm trong timezone
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return 0
		}
	}
	return t.UnixMilli()
}

// ConnectAccount kết nối một tài khoản bằng user access token:
// lấy profile qua /me, debug token lấy thời hạn, rồi upsert vào fb_accounts.
func (s *SyncService) ConnectAccount(ctx context.Context, accessToken string) (fbmodels.FbAccount, error) {
	var account fbmodels.FbAccount

	profile, err := s.api.GetMe(ctx, accessToken)
	if err != nil {
		return account, err
	}

	expiresAt, err := s.api.DebugToken(ctx, accessToken)
	if err != nil {
		// Token vẫn dùng được dù không debug được thời hạn
		logger.GetAppLogger().WithError(err).Warn("🔄 [SYNC] Không lấy được thời hạn token, bỏ qua")
		expiresAt = 0
	}

	set := map[string]interface{}{
		"accessToken": accessToken,
		"name":        profile.Name,
		"email":       profile.Email,
		"status":      fbmodels.AccountStatusActive,
	}
	if expiresAt > 0 {
		// Graph trả về expires_at theo giây
		set["tokenExpiresAt"] = expiresAt * 1000
	}
	return s.accountService.UpsertByPlatformUserID(ctx, profile.ID, set)
}

// ListConnectablePages liệt kê các trang mà tài khoản quản lý trên nền tảng
func (s *SyncService) ListConnectablePages(ctx context.Context, accountID primitive.ObjectID) ([]platform.PageInfo, error) {
	account, err := s.accountService.FindOneById(ctx, accountID)
	if err != nil {
		return nil, err
	}
	pages, err := s.api.ListAccounts(ctx, account.AccessToken)
	if err != nil {
		if common.IsPlatformRejected(err) {
			// Token bị từ chối nghĩa là đã hết hạn hoặc bị thu hồi
			_ = s.accountService.MarkStatus(ctx, account.PlatformUserId, fbmodels.AccountStatusExpired)
		}
		return nil, err
	}
	return pages, nil
}

// ConnectPage kết nối một trang vào hệ thống: lấy page token từ /me/accounts,
// upsert fb_pages rồi subscribe webhook cho trang.
func (s *SyncService) ConnectPage(ctx context.Context, accountID primitive.ObjectID, pageID string) (fbmodels.FbPage, error) {
	var page fbmodels.FbPage

	pages, err := s.ListConnectablePages(ctx, accountID)
	if err != nil {
		return page, err
	}

	var info *platform.PageInfo
	for i := range pages {
		if pages[i].ID == pageID {
			info = &pages[i]
			break
		}
	}
	if info == nil {
		return page, fmt.Errorf("page %s is not managed by this account: %w", pageID, common.ErrNotFound)
	}

	set := map[string]interface{}{
		"accountId":       accountID,
		"pageAccessToken": info.AccessToken,
		"name":            info.Name,
		"category":        info.Category,
		"about":           info.About,
		"pictureUrl":      info.PictureURL(),
		"fanCount":        info.FanCount,
	}
	page, err = s.pageService.UpsertByPageID(ctx, pageID, set)
	if err != nil {
		return page, err
	}

	if err := s.api.SubscribePage(ctx, pageID, info.AccessToken); err != nil {
		logger.GetAppLogger().WithError(err).WithField("pageId", pageID).Warn("🔄 [SYNC] Subscribe webhook thất bại")
		return page, err
	}
	if err := s.pageService.SetSubscribed(ctx, page.ID, true); err != nil {
		return page, err
	}
	page.IsSubscribed = true
	return page, nil
}

// SubscribePage đăng ký lại webhook cho một trang đã kết nối, dùng page token
// đã lưu. Cập nhật cờ isSubscribed khi nền tảng xác nhận.
func (s *SyncService) SubscribePage(ctx context.Context, pageID string) (fbmodels.FbPage, error) {
	page, err := s.pageService.FindOneByPageID(ctx, pageID)
	if err != nil {
		return page, err
	}

	if err := s.api.SubscribePage(ctx, pageID, page.PageAccessToken); err != nil {
		logger.GetAppLogger().WithError(err).WithField("pageId", pageID).Warn("🔄 [SYNC] Subscribe webhook thất bại")
		return page, err
	}
	if err := s.pageService.SetSubscribed(ctx, page.ID, true); err != nil {
		return page, err
	}
	page.IsSubscribed = true
	return page, nil
}

// PullPageProfile kéo profile mới nhất của trang từ nền tảng về local
func (s *SyncService) PullPageProfile(ctx context.Context, page *fbmodels.FbPage) error {
	info, err := s.api.GetPageDetails(ctx, page.PageId, page.PageAccessToken)
	if err != nil {
		return err
	}
	set := map[string]interface{}{
		"name":       info.Name,
		"category":   info.Category,
		"about":      info.About,
		"phone":      info.Phone,
		"website":    info.Website,
		"pictureUrl": info.PictureURL(),
		"coverUrl":   info.Cover.Source,
		"fanCount":   info.FanCount,
	}
	_, err = s.pageService.UpsertByPageID(ctx, page.PageId, set)
	return err
}

// PullConversations kéo danh sách hội thoại của trang về local.
// isAnswered suy ra từ unread_count; status chỉ set khi tạo mới nên
// hội thoại đã archive không bị mở lại.
func (s *SyncService) PullConversations(ctx context.Context, page *fbmodels.FbPage) ([]fbmodels.FbConversation, error) {
	data, err := s.api.ListConversations(ctx, page.PageId, page.PageAccessToken)
	if err != nil {
		return nil, err
	}

	results := make([]fbmodels.FbConversation, 0, len(data))
	for i := range data {
		conv, err := s.upsertConversation(ctx, page, &data[i])
		if err != nil {
			logger.GetAppLogger().WithError(err).WithFields(logrus.Fields{
				"pageId":         page.PageId,
				"conversationId": data[i].ID,
			}).Error("🔄 [SYNC] Upsert hội thoại thất bại")
			continue
		}
		results = append(results, conv)
	}
	return results, nil
}

// upsertConversation ghi một hội thoại từ payload nền tảng vào local
func (s *SyncService) upsertConversation(ctx context.Context, page *fbmodels.FbPage, data *platform.ConversationData) (fbmodels.FbConversation, error) {
	set := map[string]interface{}{
		"pageId":       page.ID,
		"unreadCount":  data.UnreadCount,
		"messageCount": data.MessageCount,
		"canReply":     data.CanReply,
		"subject":      data.Subject,
		"isAnswered":   data.UnreadCount == 0,
	}
	if participant := data.OtherParticipant(page.PageId); participant != nil {
		set["participantId"] = participant.ID
		set["participantName"] = participant.Name
	}
	if last := data.LastMessage(); last != nil {
		set["lastMessageText"] = last.Message
		set["lastMessageTime"] = ParseGraphTime(last.CreatedTime)
	} else if t := ParseGraphTime(data.UpdatedTime); t > 0 {
		set["lastMessageTime"] = t
	}
	return s.conversationService.UpsertByConversationID(ctx, data.ID, set)
}

// PullMessages kéo tin nhắn của một hội thoại về local, kèm upsert contact
// cho người gửi không phải trang. Trả về số tin đã ghi.
func (s *SyncService) PullMessages(ctx context.Context, page *fbmodels.FbPage, conv *fbmodels.FbConversation) (int, error) {
	data, err := s.api.ListMessages(ctx, conv.ConversationId, page.PageAccessToken)
	if err != nil {
		return 0, err
	}

	written := 0
	for i := range data {
		msg := &data[i]
		set := map[string]interface{}{
			"conversationId": conv.ID,
			"fromId":         msg.From.ID,
			"fromName":       msg.From.Name,
			"message":        msg.Message,
			"sticker":        msg.Sticker,
			"createdTime":    ParseGraphTime(msg.CreatedTime),
			"isFromPage":     msg.From.ID == page.PageId,
			"hasAttachments": len(msg.Attachments) > 0,
		}
		if len(msg.Attachments) > 0 {
			set["attachments"] = msg.Attachments
		}
		if len(msg.Tags) > 0 {
			set["tags"] = msg.Tags
		}
		if len(msg.ReplyTo) > 0 {
			set["replyTo"] = msg.ReplyTo
		}
		if _, err := s.messageService.UpsertByMessageID(ctx, msg.ID, set); err != nil {
			logger.GetAppLogger().WithError(err).WithField("messageId", msg.ID).Error("🔄 [SYNC] Upsert tin nhắn thất bại")
			continue
		}
		written++

		// Người gửi không phải trang thì chạm lại contact
		if msg.From.ID != page.PageId {
			contactSet := map[string]interface{}{"name": msg.From.Name}
			if pic := msg.From.Picture.Data.URL; pic != "" {
				contactSet["profilePic"] = pic
			}
			if _, err := s.contactService.UpsertByPageAndUser(ctx, page.ID, msg.From.ID, contactSet); err != nil {
				logger.GetAppLogger().WithError(err).WithField("userId", msg.From.ID).Warn("🔄 [SYNC] Upsert contact thất bại")
			}
		}
	}

	// Cập nhật lại messageCount theo số tin thực tế đã lưu
	count, err := s.messageService.CountByConversation(ctx, conv.ID)
	if err == nil {
		_, _ = s.conversationService.UpsertByConversationID(ctx, conv.ConversationId, map[string]interface{}{
			"pageId":       page.ID,
			"messageCount": count,
		})
	}
	return written, nil
}

// PullContacts kéo contact của trang từ danh sách participant các hội thoại
func (s *SyncService) PullContacts(ctx context.Context, page *fbmodels.FbPage) (int, error) {
	data, err := s.api.ListConversations(ctx, page.PageId, page.PageAccessToken)
	if err != nil {
		return 0, err
	}
	written := 0
	for i := range data {
		participant := data[i].OtherParticipant(page.PageId)
		if participant == nil {
			continue
		}
		set := map[string]interface{}{"name": participant.Name}
		if pic := participant.Picture.Data.URL; pic != "" {
			set["profilePic"] = pic
		}
		if _, err := s.contactService.UpsertByPageAndUser(ctx, page.ID, participant.ID, set); err != nil {
			logger.GetAppLogger().WithError(err).WithField("userId", participant.ID).Warn("🔄 [SYNC] Upsert contact thất bại")
			continue
		}
		written++
	}
	return written, nil
}

// FullSync đồng bộ toàn bộ một trang: profile, hội thoại rồi tin nhắn từng hội thoại.
// Lỗi ở một hội thoại chỉ ghi log và bỏ qua, lastSyncedAt chỉ chạm khi duyệt hết.
func (s *SyncService) FullSync(ctx context.Context, pageID string) error {
	page, err := s.pageService.FindOneByPageID(ctx, pageID)
	if err != nil {
		return err
	}

	if err := s.PullPageProfile(ctx, &page); err != nil {
		return err
	}

	conversations, err := s.PullConversations(ctx, &page)
	if err != nil {
		return err
	}

	for i := range conversations {
		if _, err := s.PullMessages(ctx, &page, &conversations[i]); err != nil {
			logger.GetAppLogger().WithError(err).WithFields(logrus.Fields{
				"pageId":         pageID,
				"conversationId": conversations[i].ConversationId,
			}).Error("🔄 [SYNC] Đồng bộ tin nhắn hội thoại thất bại, bỏ qua")
		}
	}

	if err := s.pageService.TouchLastSynced(ctx, page.ID); err != nil {
		return err
	}
	logger.GetAppLogger().WithFields(logrus.Fields{
		"pageId":        pageID,
		"conversations": len(conversations),
	}).Info("🔄 [SYNC] Đồng bộ toàn trang hoàn tất")
	return nil
}

// SendReply gửi tin nhắn trả lời một hội thoại qua nền tảng,
// thành công thì mirror tin vào local và đánh dấu hội thoại đã trả lời.
func (s *SyncService) SendReply(ctx context.Context, conversationID string, text string) (*platform.SendResult, error) {
	conv, err := s.conversationService.FindOneByConversationID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.ParticipantId == "" {
		return nil, fmt.Errorf("conversation has no participant: %w", common.ErrInvalidInput)
	}
	page, err := s.pageService.FindOneById(ctx, conv.PageID)
	if err != nil {
		return nil, err
	}

	result, err := s.api.SendMessage(ctx, page.PageAccessToken, conv.ParticipantId, text)
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	_, err = s.messageService.UpsertByMessageID(ctx, result.MessageID, map[string]interface{}{
		"conversationId": conv.ID,
		"fromId":         page.PageId,
		"fromName":       page.Name,
		"message":        text,
		"createdTime":    now,
		"isFromPage":     true,
	})
	if err != nil {
		logger.GetAppLogger().WithError(err).WithField("messageId", result.MessageID).Warn("🔄 [SYNC] Mirror tin gửi đi thất bại")
	}
	if err := s.conversationService.MarkAnswered(ctx, conversationID); err != nil {
		logger.GetAppLogger().WithError(err).WithField("conversationId", conversationID).Warn("🔄 [SYNC] Đánh dấu đã trả lời thất bại")
	}
	_, _ = s.conversationService.UpsertByConversationID(ctx, conversationID, map[string]interface{}{
		"pageId":          conv.PageID,
		"lastMessageText": text,
		"lastMessageTime": now,
	})
	return result, nil
}

// PushProfile đẩy thay đổi profile (about, phone, website) lên nền tảng,
// thành công mới mirror các field đó vào local.
func (s *SyncService) PushProfile(ctx context.Context, pageID string, fields map[string]string) error {
	if len(fields) == 0 {
		return fmt.Errorf("no profile fields to update: %w", common.ErrInvalidInput)
	}
	page, err := s.pageService.FindOneByPageID(ctx, pageID)
	if err != nil {
		return err
	}
	if err := s.api.UpdatePage(ctx, page.PageId, page.PageAccessToken, fields); err != nil {
		return err
	}
	set := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		set[k] = v
	}
	_, err = s.pageService.UpsertByPageID(ctx, pageID, set)
	return err
}

// ArchiveConversation lưu trữ hội thoại trên nền tảng rồi chuyển trạng thái local
func (s *SyncService) ArchiveConversation(ctx context.Context, conversationID string) error {
	conv, page, err := s.resolveConversationPage(ctx, conversationID)
	if err != nil {
		return err
	}
	if err := s.api.ArchiveConversation(ctx, conv.ConversationId, page.PageAccessToken); err != nil {
		return err
	}
	return s.conversationService.SetStatus(ctx, conversationID, fbmodels.ConversationStatusArchived)
}

// MuteConversation tắt thông báo hội thoại trên nền tảng (muteUntil rỗng = vĩnh viễn)
func (s *SyncService) MuteConversation(ctx context.Context, conversationID string, muteUntil string) error {
	conv, page, err := s.resolveConversationPage(ctx, conversationID)
	if err != nil {
		return err
	}
	return s.api.MuteConversation(ctx, conv.ConversationId, page.PageAccessToken, muteUntil)
}

// MarkConversationRead đánh dấu đã đọc trên nền tảng rồi cập nhật local
func (s *SyncService) MarkConversationRead(ctx context.Context, conversationID string) error {
	conv, page, err := s.resolveConversationPage(ctx, conversationID)
	if err != nil {
		return err
	}
	if err := s.api.MarkConversationRead(ctx, conv.ConversationId, page.PageAccessToken); err != nil {
		return err
	}
	return s.conversationService.MarkAnswered(ctx, conversationID)
}

// GetUnanswered liệt kê hội thoại chưa trả lời quá ngưỡng giờ của một trang.
// hours <= 0 thì dùng ngưỡng mặc định trong cấu hình.
func (s *SyncService) GetUnanswered(ctx context.Context, pageID string, hours int) ([]fbmodels.FbConversation, error) {
	if hours <= 0 && global.ServerConfig != nil {
		hours = global.ServerConfig.UnansweredDefaultHours
	}
	page, err := s.pageService.FindOneByPageID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	return s.conversationService.FindUnanswered(ctx, page.ID, hours)
}

// resolveConversationPage tra hội thoại và trang chứa nó
func (s *SyncService) resolveConversationPage(ctx context.Context, conversationID string) (fbmodels.FbConversation, fbmodels.FbPage, error) {
	var page fbmodels.FbPage
	conv, err := s.conversationService.FindOneByConversationID(ctx, conversationID)
	if err != nil {
		return conv, page, err
	}
	page, err = s.pageService.FindOneById(ctx, conv.PageID)
	return conv, page, err
}

// ConversationService cho các thành phần khác (webhook, worker) dùng lại
func (s *SyncService) ConversationService() *fbsvc.FbConversationService {
	return s.conversationService
}

// PageService cho các thành phần khác dùng lại
func (s *SyncService) PageService() *fbsvc.FbPageService {
	return s.pageService
}

// MessageService cho các thành phần khác dùng lại
func (s *SyncService) MessageService() *fbsvc.FbMessageService {
	return s.messageService
}

// ContactService cho các thành phần khác dùng lại
func (s *SyncService) ContactService() *fbsvc.FbContactService {
	return s.contactService
}
