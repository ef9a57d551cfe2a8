package fbsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "meta_engage/internal/api/base/service"
	fbmodels "meta_engage/internal/api/fb/models"
	"meta_engage/internal/common"
	"meta_engage/internal/global"
)

// FbMessageService là cấu trúc chứa các phương thức liên quan đến tin nhắn
type FbMessageService struct {
	*basesvc.BaseServiceMongoImpl[fbmodels.FbMessage]
}

// NewFbMessageService tạo mới FbMessageService
func NewFbMessageService() (*FbMessageService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.FbMessages)
	if !exist {
		return nil, fmt.Errorf("failed to get fb_messages collection: %v", common.ErrNotFound)
	}
	return &FbMessageService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[fbmodels.FbMessage](coll),
	}, nil
}

// FindOneByMessageID tìm một tin nhắn theo messageId trên nền tảng
func (s *FbMessageService) FindOneByMessageID(ctx context.Context, messageID string) (fbmodels.FbMessage, error) {
	var msg fbmodels.FbMessage
	err := s.Collection().FindOne(ctx, bson.M{"messageId": messageID}).Decode(&msg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return msg, common.ErrNotFound
		}
		return msg, common.ConvertMongoError(err)
	}
	return msg, nil
}

// UpsertByMessageID tạo hoặc cập nhật tin nhắn theo messageId.
// Webhook và sync đều giao at-least-once nên upsert giữ cho mỗi tin chỉ có một document.
func (s *FbMessageService) UpsertByMessageID(ctx context.Context, messageID string, set map[string]interface{}) (fbmodels.FbMessage, error) {
	filter := bson.M{"messageId": messageID}
	set["messageId"] = messageID
	return s.Upsert(ctx, filter, &basesvc.UpdateData{Set: set})
}

// FindByConversation liệt kê tin nhắn của một hội thoại theo thời gian tăng dần
func (s *FbMessageService) FindByConversation(ctx context.Context, conversationID primitive.ObjectID, limit int64) ([]fbmodels.FbMessage, error) {
	filter := bson.M{"conversationId": conversationID}
	opts := options.Find().SetSort(bson.D{{Key: "createdTime", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	results, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []fbmodels.FbMessage{}
	}
	return results, nil
}

// CountByConversation đếm số tin nhắn đã lưu của một hội thoại
func (s *FbMessageService) CountByConversation(ctx context.Context, conversationID primitive.ObjectID) (int64, error) {
	return s.CountDocuments(ctx, bson.M{"conversationId": conversationID})
}
