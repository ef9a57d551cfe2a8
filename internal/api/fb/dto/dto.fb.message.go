package fbdto

// FbMessageSendInput dữ liệu đầu vào khi gửi tin nhắn mới từ trang
type FbMessageSendInput struct {
	RecipientId string `json:"recipientId" validate:"required"`
	Message     string `json:"message" validate:"required,no_xss"`
}

// FbMessageFilterInput dữ liệu lọc khi liệt kê tin nhắn của một hội thoại.
// Tin nhắn chỉ được ghi qua đồng bộ và webhook, API ngoài chỉ đọc.
type FbMessageFilterInput struct {
	ConversationId string `json:"conversationId,omitempty"`
	FromId         string `json:"fromId,omitempty"`
}
