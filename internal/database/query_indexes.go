// Package database - Index bổ sung cho các truy vấn nhiều field (compound) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"meta_engage/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateQueryIndexes tạo các index bổ sung phục vụ truy vấn của sync và automation.
// Gọi sau CreateIndexes cho từng collection.
func CreateQueryIndexes(ctx context.Context, db *mongo.Database) error {
	// fb_conversations: (pageId, isAnswered, status, lastMessageTime) — truy vấn hội thoại chưa trả lời
	fbConversations := db.Collection(global.MongoDB_ColNames.FbConversations)
	if _, err := fbConversations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "pageId", Value: 1},
			{Key: "isAnswered", Value: 1},
			{Key: "status", Value: 1},
			{Key: "lastMessageTime", Value: 1},
		},
		Options: options.Index().SetName("fb_conversation_unanswered"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// fb_messages: (conversationId, createdTime) — load tin nhắn theo hội thoại
	fbMessages := db.Collection(global.MongoDB_ColNames.FbMessages)
	if _, err := fbMessages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "conversationId", Value: 1},
			{Key: "createdTime", Value: -1},
		},
		Options: options.Index().SetName("fb_message_conversation_time"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// automations: (pageId, type, isActive) — lookup rule chain theo trang
	automations := db.Collection(global.MongoDB_ColNames.Automations)
	if _, err := automations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "pageId", Value: 1},
			{Key: "type", Value: 1},
			{Key: "isActive", Value: 1},
		},
		Options: options.Index().SetName("automation_page_type_active"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// faqs: (pageId, isActive, displayOrder) — search FAQ theo trang
	faqs := db.Collection(global.MongoDB_ColNames.Faqs)
	if _, err := faqs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "pageId", Value: 1},
			{Key: "isActive", Value: 1},
			{Key: "displayOrder", Value: 1},
		},
		Options: options.Index().SetName("faq_page_active_order"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
