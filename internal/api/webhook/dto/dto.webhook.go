// Package webhookdto chứa payload webhook của nền tảng và DTO cho webhook log.
package webhookdto

// WebhookEventRequest payload batch mà nền tảng đẩy tới: {object: "page", entry: [...]}
type WebhookEventRequest struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

// WebhookEntry một entry theo trang, chứa messaging events và feed changes
type WebhookEntry struct {
	ID        string           `json:"id"`   // Page ID trên nền tảng
	Time      int64            `json:"time"` // Unix ms
	Messaging []MessagingEvent `json:"messaging,omitempty"`
	Changes   []ChangeEvent    `json:"changes,omitempty"`
}

// MessagingEvent một sub-event messaging: message, read, delivery hoặc postback
type MessagingEvent struct {
	Sender    EventParty     `json:"sender"`
	Recipient EventParty     `json:"recipient"`
	Timestamp int64          `json:"timestamp"`
	Message   *MessageEvent  `json:"message,omitempty"`
	Read      *ReadEvent     `json:"read,omitempty"`
	Delivery  *DeliveryEvent `json:"delivery,omitempty"`
	Postback  *PostbackEvent `json:"postback,omitempty"`
}

// EventParty một bên của event (sender/recipient/tác giả comment)
type EventParty struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// MessageEvent nội dung sub-event message
type MessageEvent struct {
	Mid    string `json:"mid"`
	Text   string `json:"text"`
	IsEcho bool   `json:"is_echo"` // true khi là echo tin trang tự gửi
}

// ReadEvent sub-event read receipt
type ReadEvent struct {
	Watermark int64 `json:"watermark"`
}

// DeliveryEvent sub-event delivery receipt
type DeliveryEvent struct {
	Mids      []string `json:"mids"`
	Watermark int64    `json:"watermark"`
}

// PostbackEvent sub-event postback từ button
type PostbackEvent struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// ChangeEvent một feed change trong entry
type ChangeEvent struct {
	Field string      `json:"field"` // "feed" cho comment events
	Value ChangeValue `json:"value"`
}

// ChangeValue nội dung feed change
type ChangeValue struct {
	Item      string     `json:"item"` // "comment", "post", ...
	Verb      string     `json:"verb"` // "add", "edit", "remove"
	CommentID string     `json:"comment_id"`
	PostID    string     `json:"post_id"`
	Message   string     `json:"message"`
	From      EventParty `json:"from"`
}

// WebhookLogCreateInput là DTO cho tạo mới webhook log
type WebhookLogCreateInput struct {
	EventType   string                 `json:"eventType" validate:"required"`
	PageId      string                 `json:"pageId,omitempty"`
	SenderId    string                 `json:"senderId,omitempty"`
	RequestBody map[string]interface{} `json:"requestBody" validate:"required"`
	RawBody     string                 `json:"rawBody,omitempty"`
	IPAddress   string                 `json:"ipAddress,omitempty"`
	UserAgent   string                 `json:"userAgent,omitempty"`
}

// WebhookLogUpdateInput là DTO cho cập nhật webhook log
type WebhookLogUpdateInput struct {
	Processed    *bool   `json:"processed,omitempty"`
	ProcessError *string `json:"processError,omitempty"`
}
