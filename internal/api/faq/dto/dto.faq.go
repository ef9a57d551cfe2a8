// Package faqdto chứa các DTO đầu vào của domain FAQ.
package faqdto

// FaqCreateInput dữ liệu đầu vào khi tạo FAQ
type FaqCreateInput struct {
	PageId   string   `json:"pageId" validate:"required" transform:"str_objectid,map=PageID"`
	Question string   `json:"question" validate:"required,no_xss"`
	Answer   string   `json:"answer" validate:"required,no_xss"`
	Keywords []string `json:"keywords,omitempty"`
	Category string   `json:"category,omitempty"`
	Order    int64    `json:"order,omitempty"`
	IsActive *bool    `json:"isActive,omitempty"`
}

// FaqUpdateInput dữ liệu đầu vào khi cập nhật FAQ
type FaqUpdateInput struct {
	Question string   `json:"question,omitempty" validate:"omitempty,no_xss"`
	Answer   string   `json:"answer,omitempty" validate:"omitempty,no_xss"`
	Keywords []string `json:"keywords,omitempty"`
	Category string   `json:"category,omitempty"`
	Order    int64    `json:"order,omitempty"`
	IsActive *bool    `json:"isActive,omitempty"`
}

// FaqSendAnswerInput dữ liệu đầu vào khi gửi câu trả lời FAQ cho người dùng
type FaqSendAnswerInput struct {
	RecipientId    string `json:"recipientId" validate:"required"`
	ConversationId string `json:"conversationId,omitempty"`
	TriggeredBy    string `json:"triggeredBy,omitempty"`
}

// FaqFeedbackInput dữ liệu đầu vào khi ghi nhận feedback cho một lần gửi FAQ
type FaqFeedbackInput struct {
	Feedback string `json:"feedback" validate:"required"`
}

// FaqLogCreateInput dữ liệu đầu vào của faq log. Log được ghi bởi hệ thống
// khi gửi câu trả lời, API ngoài chỉ đọc.
type FaqLogCreateInput struct {
	FaqId          string `json:"faqId" validate:"required" transform:"str_objectid,map=FaqID"`
	ConversationId string `json:"conversationId,omitempty" transform:"str_objectid,map=ConversationID"`
	MessageId      string `json:"messageId,omitempty"`
}

// FaqLogUpdateInput dữ liệu đầu vào khi cập nhật faq log
type FaqLogUpdateInput struct {
	UserFeedback string `json:"userFeedback,omitempty" validate:"omitempty,oneof=helpful unhelpful none"`
}
