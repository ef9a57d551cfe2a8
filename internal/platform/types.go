package platform

import "encoding/json"

// UserProfile thông tin user lấy từ endpoint /me
type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PageInfo thông tin page lấy từ /me/accounts hoặc /{page-id}
type PageInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
	Category    string `json:"category"`
	About       string `json:"about"`
	Picture     struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
	FanCount int64  `json:"fan_count"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
	Cover    struct {
		Source string `json:"source"`
	} `json:"cover"`
	SingleLineAddress string `json:"single_line_address"`
}

// PictureURL trả về URL avatar của page (rỗng nếu không có)
func (p PageInfo) PictureURL() string {
	return p.Picture.Data.URL
}

// Participant một người tham gia hội thoại
type Participant struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

// ConversationData một hội thoại trả về từ /{page-id}/conversations
type ConversationData struct {
	ID           string `json:"id"`
	Participants struct {
		Data []Participant `json:"data"`
	} `json:"participants"`
	UnreadCount  int64  `json:"unread_count"`
	MessageCount int64  `json:"message_count"`
	UpdatedTime  string `json:"updated_time"`
	CanReply     bool   `json:"can_reply"`
	Subject      string `json:"subject"`
	Messages     struct {
		Data []MessageData `json:"data"`
	} `json:"messages"`
}

// OtherParticipant trả về participant không phải page (khách hàng).
// Trả về nil nếu hội thoại chỉ có page.
func (c ConversationData) OtherParticipant(pageID string) *Participant {
	for i := range c.Participants.Data {
		if c.Participants.Data[i].ID != pageID {
			return &c.Participants.Data[i]
		}
	}
	return nil
}

// LastMessage trả về tin nhắn mới nhất kèm theo hội thoại (messages.limit(1)).
// Trả về nil nếu không có.
func (c ConversationData) LastMessage() *MessageData {
	if len(c.Messages.Data) == 0 {
		return nil
	}
	return &c.Messages.Data[0]
}

// MessageData một tin nhắn trả về từ /{conversation-id}/messages
type MessageData struct {
	ID   string      `json:"id"`
	From Participant `json:"from"`
	To   struct {
		Data []Participant `json:"data"`
	} `json:"to"`
	Message     string          `json:"message"`
	CreatedTime string          `json:"created_time"`
	Attachments json.RawMessage `json:"attachments"`
	Sticker     string          `json:"sticker"`
	Tags        json.RawMessage `json:"tags"`
	ReplyTo     json.RawMessage `json:"reply_to"`
}

// SendResult kết quả gửi tin nhắn qua /me/messages
type SendResult struct {
	RecipientID string `json:"recipient_id"`
	MessageID   string `json:"message_id"`
}

// apiError body lỗi chuẩn của Graph API
type apiError struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}
