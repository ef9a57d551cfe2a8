package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các trạng thái của FbConversation.
const (
	ConversationStatusOpen     = "open"
	ConversationStatusSpam     = "spam"
	ConversationStatusArchived = "archived"
)

// FbConversation lưu hội thoại giữa trang và một người dùng (fb_conversations).
// IsAnswered suy ra từ unread count khi đồng bộ: unreadCount == 0 nghĩa là đã trả lời.
// Status chỉ được set mặc định khi tạo mới, các lần đồng bộ sau không ghi đè
// (hội thoại đã archive cục bộ giữ nguyên trạng thái qua resync).
type FbConversation struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`                                                        // ID của hội thoại trong hệ thống
	PageID          primitive.ObjectID `json:"pageId" bson:"pageId" index:"compound:fb_conversation_page_answered"`                      // Trang chứa hội thoại
	ConversationId  string             `json:"conversationId" bson:"conversationId" index:"unique"`                                      // ID hội thoại trên nền tảng
	ParticipantId   string             `json:"participantId,omitempty" bson:"participantId,omitempty"`                                   // ID người dùng phía bên kia
	ParticipantName string             `json:"participantName,omitempty" bson:"participantName,omitempty"`                               // Tên người dùng phía bên kia
	UnreadCount     int64              `json:"unreadCount" bson:"unreadCount"`                                                           // Số tin chưa đọc phía trang
	MessageCount    int64              `json:"messageCount" bson:"messageCount"`                                                         // Tổng số tin trong hội thoại
	LastMessageTime int64              `json:"lastMessageTime,omitempty" bson:"lastMessageTime,omitempty" index:"single:-1"`             // Thời điểm tin cuối (Unix ms)
	LastMessageText string             `json:"lastMessageText,omitempty" bson:"lastMessageText,omitempty"`                               // Nội dung tin cuối
	CanReply        bool               `json:"canReply" bson:"canReply"`                                                                 // Trang còn trong cửa sổ được phép trả lời
	Subject         string             `json:"subject,omitempty" bson:"subject,omitempty"`                                               // Chủ đề hội thoại (nếu có)
	IsAnswered      bool               `json:"isAnswered" bson:"isAnswered" index:"compound:fb_conversation_page_answered"`              // Tin cuối đã được trang trả lời chưa
	Status          string             `json:"status" bson:"status" default:"open"`                                                      // open | archived | spam

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
