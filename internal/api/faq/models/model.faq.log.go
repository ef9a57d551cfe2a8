package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các giá trị feedback của FaqLog.
const (
	FeedbackHelpful   = "helpful"
	FeedbackUnhelpful = "unhelpful"
	FeedbackNone      = "none"
)

// FaqLog một lần gửi FAQ tới người dùng (faq_logs).
// Mỗi log có thể nhận feedback một lần, feedback đổi sẽ điều chỉnh counter trên Faq.
type FaqLog struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`                               // ID của log
	FaqID              primitive.ObjectID `json:"faqId" bson:"faqId" index:"single:1"`                             // FAQ đã gửi
	ConversationID     primitive.ObjectID `json:"conversationId,omitempty" bson:"conversationId,omitempty"`       // Hội thoại nhận FAQ (nếu biết)
	MessageId          string             `json:"messageId,omitempty" bson:"messageId,omitempty"`                  // ID tin đã gửi trên nền tảng
	UserFeedback       string             `json:"userFeedback" bson:"userFeedback" default:"none"`                 // helpful | unhelpful | none
	TriggeredByKeyword string             `json:"triggeredByKeyword,omitempty" bson:"triggeredByKeyword,omitempty"` // Keyword/câu hỏi đã kích hoạt

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
