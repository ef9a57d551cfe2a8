package fbdto

// FbConversationUpdateInput dữ liệu đầu vào khi cập nhật hội thoại cục bộ
type FbConversationUpdateInput struct {
	Subject string `json:"subject,omitempty"`
	Status  string `json:"status,omitempty" validate:"omitempty,oneof=open archived spam"`
}

// FbConversationReplyInput dữ liệu đầu vào khi trang trả lời một hội thoại
type FbConversationReplyInput struct {
	Message string `json:"message" validate:"required,no_xss"`
}

// FbConversationMuteInput dữ liệu đầu vào khi tắt thông báo hội thoại
type FbConversationMuteInput struct {
	MuteUntil string `json:"muteUntil,omitempty"` // Rỗng = tắt vĩnh viễn
}
