package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FbMessage lưu một tin nhắn trong hội thoại (fb_messages).
// Attachments/Tags/ReplyTo giữ nguyên payload gốc của nền tảng, không parse sâu.
type FbMessage struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`                                            // ID của tin trong hệ thống
	ConversationID primitive.ObjectID `json:"conversationId" bson:"conversationId" index:"compound:fb_message_conv_time"`   // Hội thoại chứa tin
	MessageId      string             `json:"messageId" bson:"messageId" index:"unique"`                                    // ID tin trên nền tảng
	FromId         string             `json:"fromId" bson:"fromId"`                                                         // ID người gửi
	FromName       string             `json:"fromName,omitempty" bson:"fromName,omitempty"`                                 // Tên người gửi
	Message        string             `json:"message,omitempty" bson:"message,omitempty"`                                   // Nội dung văn bản
	Sticker        string             `json:"sticker,omitempty" bson:"sticker,omitempty"`                                   // URL sticker (nếu có)
	Attachments    json.RawMessage    `json:"attachments,omitempty" bson:"attachments,omitempty"`                           // Payload attachments gốc
	Tags           json.RawMessage    `json:"tags,omitempty" bson:"tags,omitempty"`                                         // Payload tags gốc
	ReplyTo        json.RawMessage    `json:"replyTo,omitempty" bson:"replyTo,omitempty"`                                   // Tin được trả lời (nếu có)
	CreatedTime    int64              `json:"createdTime,omitempty" bson:"createdTime,omitempty" index:"compound:fb_message_conv_time"` // Thời điểm gửi (Unix ms)
	IsFromPage     bool               `json:"isFromPage" bson:"isFromPage"`                                                 // Tin do trang gửi
	HasAttachments bool               `json:"hasAttachments" bson:"hasAttachments"`                                         // Tin có đính kèm

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
