package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các kiểu trigger của InstantReply.
const (
	TriggerNewMessage      = "new_message"
	TriggerNewConversation = "new_conversation"
	TriggerSpecificTime    = "specific_time"
)

// InstantReply tin trả lời tức thì thuộc một automation (instant_replies).
// DelaySeconds > 0 thì lên lịch gửi bằng timer, không block; restart giữa chừng chấp nhận mất.
type InstantReply struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`                          // ID của instant reply
	AutomationID    primitive.ObjectID `json:"automationId" bson:"automationId" index:"single:1"`          // Automation sở hữu reply
	Trigger         string             `json:"trigger" bson:"trigger" default:"new_message"`               // new_message | new_conversation | specific_time
	Message         string             `json:"message" bson:"message"`                                     // Nội dung trả lời
	DelaySeconds    int64              `json:"delaySeconds" bson:"delaySeconds" default:"0"`               // Trễ trước khi gửi (giây)
	IncludeName     bool               `json:"includeName" bson:"includeName" default:"true"`              // Có chèn tên người nhận vào lời chào không
	IsActive        bool               `json:"isActive" bson:"isActive" default:"true"`                    // Reply có đang bật không
	TriggerCount    int64              `json:"triggerCount" bson:"triggerCount" default:"0"`               // Số lần đã gửi
	LastTriggeredAt int64              `json:"lastTriggeredAt,omitempty" bson:"lastTriggeredAt,omitempty"` // Lần gửi gần nhất (Unix ms)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
