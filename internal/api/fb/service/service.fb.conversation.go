package fbsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "meta_engage/internal/api/base/service"
	fbmodels "meta_engage/internal/api/fb/models"
	"meta_engage/internal/common"
	"meta_engage/internal/global"
)

// FbConversationService là cấu trúc chứa các phương thức liên quan đến hội thoại
type FbConversationService struct {
	*basesvc.BaseServiceMongoImpl[fbmodels.FbConversation]
}

// NewFbConversationService tạo mới FbConversationService
func NewFbConversationService() (*FbConversationService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.FbConversations)
	if !exist {
		return nil, fmt.Errorf("failed to get fb_conversations collection: %v", common.ErrNotFound)
	}
	return &FbConversationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[fbmodels.FbConversation](coll),
	}, nil
}

// FindOneByConversationID tìm một hội thoại theo conversationId trên nền tảng
func (s *FbConversationService) FindOneByConversationID(ctx context.Context, conversationID string) (fbmodels.FbConversation, error) {
	var conv fbmodels.FbConversation
	err := s.Collection().FindOne(ctx, bson.M{"conversationId": conversationID}).Decode(&conv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return conv, common.ErrNotFound
		}
		return conv, common.ConvertMongoError(err)
	}
	return conv, nil
}

// FindOneByParticipant tìm hội thoại của một người dùng trên một trang.
// Dùng khi webhook chỉ mang sender id, chưa có conversationId.
func (s *FbConversationService) FindOneByParticipant(ctx context.Context, pageID primitive.ObjectID, participantID string) (fbmodels.FbConversation, error) {
	var conv fbmodels.FbConversation
	filter := bson.M{"pageId": pageID, "participantId": participantID}
	err := s.Collection().FindOne(ctx, filter).Decode(&conv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return conv, common.ErrNotFound
		}
		return conv, common.ConvertMongoError(err)
	}
	return conv, nil
}

// UpsertByConversationID tạo hoặc cập nhật hội thoại theo conversationId.
// Status không nằm trong set: tag default đưa "open" vào $setOnInsert, nên hội thoại
// đã archive cục bộ không bị resync mở lại.
func (s *FbConversationService) UpsertByConversationID(ctx context.Context, conversationID string, set map[string]interface{}) (fbmodels.FbConversation, error) {
	filter := bson.M{"conversationId": conversationID}
	set["conversationId"] = conversationID
	return s.Upsert(ctx, filter, &basesvc.UpdateData{Set: set})
}

// MarkAnswered đánh dấu hội thoại đã được trang trả lời (unread về 0)
func (s *FbConversationService) MarkAnswered(ctx context.Context, conversationID string) error {
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{"isAnswered": true, "unreadCount": int64(0)},
	}
	_, err := s.UpdateOne(ctx, bson.M{"conversationId": conversationID}, updateData, nil)
	return err
}

// SetStatus chuyển trạng thái cục bộ của hội thoại (open | archived | spam)
func (s *FbConversationService) SetStatus(ctx context.Context, conversationID string, status string) error {
	updateData := &basesvc.UpdateData{Set: map[string]interface{}{"status": status}}
	_, err := s.UpdateOne(ctx, bson.M{"conversationId": conversationID}, updateData, nil)
	return err
}

// unansweredFilter dựng filter hội thoại mở, chưa trả lời, có tin cuối cũ hơn
// ngưỡng giờ tính từ now. Hội thoại archived/spam không tính là chưa trả lời.
func unansweredFilter(pageID primitive.ObjectID, hours int, now time.Time) bson.M {
	cutoff := now.Add(-time.Duration(hours) * time.Hour).UnixMilli()
	return bson.M{
		"pageId":          pageID,
		"isAnswered":      false,
		"status":          fbmodels.ConversationStatusOpen,
		"lastMessageTime": bson.M{"$lt": cutoff},
	}
}

// FindUnanswered trả về các hội thoại mở chưa trả lời có tin cuối cũ hơn ngưỡng giờ,
// sắp xếp tăng dần theo lastMessageTime (cũ nhất trước).
func (s *FbConversationService) FindUnanswered(ctx context.Context, pageID primitive.ObjectID, hours int) ([]fbmodels.FbConversation, error) {
	if hours <= 0 {
		return nil, fmt.Errorf("hours must be positive: %w", common.ErrInvalidInput)
	}
	filter := unansweredFilter(pageID, hours, time.Now())
	opts := options.Find().SetSort(bson.D{{Key: "lastMessageTime", Value: 1}})
	results, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []fbmodels.FbConversation{}
	}
	return results, nil
}
