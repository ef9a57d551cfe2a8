package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"meta_engage/internal/common"
)

// API định nghĩa các thao tác với Graph API.
// Sync service và automation engine phụ thuộc vào interface này
// để test được với fake client mà không gọi mạng thật.
type API interface {
	// Account
	GetMe(ctx context.Context, accessToken string) (*UserProfile, error)
	DebugToken(ctx context.Context, accessToken string) (int64, error)
	ListAccounts(ctx context.Context, userToken string) ([]PageInfo, error)

	// Page
	GetPageDetails(ctx context.Context, pageID string, pageToken string) (*PageInfo, error)
	UpdatePage(ctx context.Context, pageID string, pageToken string, fields map[string]string) error
	SubscribePage(ctx context.Context, pageID string, pageToken string) error

	// Conversation
	ListConversations(ctx context.Context, pageID string, pageToken string) ([]ConversationData, error)
	GetConversationUnread(ctx context.Context, conversationID string, pageToken string) (int64, error)
	ArchiveConversation(ctx context.Context, conversationID string, pageToken string) error
	MuteConversation(ctx context.Context, conversationID string, pageToken string, muteUntil string) error
	MarkConversationRead(ctx context.Context, conversationID string, pageToken string) error

	// Message
	ListMessages(ctx context.Context, conversationID string, pageToken string) ([]MessageData, error)
	SendMessage(ctx context.Context, pageToken string, recipientID string, text string) (*SendResult, error)
}

// Client triển khai API trên net/http
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient tạo Graph API client từ config
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config = DefaultConfig()
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// endpoint ghép URL đầy đủ: {base}/{version}/{path}
func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s/%s/%s", c.config.BaseURL, c.config.APIVersion, path)
}

// doGet gọi GET và decode JSON response vào out
func (c *Client) doGet(ctx context.Context, path string, params url.Values, out interface{}) error {
	fullURL := c.endpoint(path) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, "Không tạo được request", common.StatusInternalServerError, err)
	}

	return c.execute(req, path, out)
}

// doPost gọi POST với JSON body (có thể nil) và decode JSON response vào out (có thể nil)
func (c *Client) doPost(ctx context.Context, path string, params url.Values, body interface{}, out interface{}) error {
	fullURL := c.endpoint(path) + "?" + params.Encode()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return common.NewError(common.ErrCodeValidationFormat, "Không serialize được request body", common.StatusInternalServerError, err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, reader)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, "Không tạo được request", common.StatusInternalServerError, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.execute(req, path, out)
}

// execute thực hiện request, phân loại lỗi transient/rejected theo status code.
// Lỗi mạng và 5xx là transient (retry được), 4xx là rejected (không retry).
func (c *Client) execute(req *http.Request, path string, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"path":   path,
			"method": req.Method,
		}).Error("🌐 [GRAPH] Lỗi mạng khi gọi Graph API")
		return common.NewPlatformTransientError(fmt.Sprintf("Lỗi mạng khi gọi Graph API: %v", err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)

		var graphErr apiError
		message := string(bodyBytes)
		if json.Unmarshal(bodyBytes, &graphErr) == nil && graphErr.Error.Message != "" {
			message = graphErr.Error.Message
		}

		logrus.WithFields(logrus.Fields{
			"path":       path,
			"method":     req.Method,
			"statusCode": resp.StatusCode,
			"response":   message,
		}).Error("🌐 [GRAPH] Graph API trả về lỗi")

		if resp.StatusCode >= 500 {
			return common.NewPlatformTransientError(
				fmt.Sprintf("Graph API trả về status %d: %s", resp.StatusCode, message), nil)
		}
		return common.NewPlatformRejectedError(
			fmt.Sprintf("Graph API từ chối request (status %d): %s", resp.StatusCode, message), nil)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return common.NewPlatformTransientError(fmt.Sprintf("Không decode được response từ Graph API: %v", err), err)
	}

	return nil
}

// GetMe lấy thông tin user của access token
func (c *Client) GetMe(ctx context.Context, accessToken string) (*UserProfile, error) {
	params := url.Values{}
	params.Set("fields", "id,name,email")
	params.Set("access_token", accessToken)

	var profile UserProfile
	if err := c.doGet(ctx, "me", params, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DebugToken kiểm tra token, trả về thời điểm hết hạn (unix giây, 0 nếu không hết hạn)
func (c *Client) DebugToken(ctx context.Context, accessToken string) (int64, error) {
	params := url.Values{}
	params.Set("input_token", accessToken)
	params.Set("access_token", accessToken)

	var result struct {
		Data struct {
			ExpiresAt int64 `json:"expires_at"`
		} `json:"data"`
	}
	if err := c.doGet(ctx, "debug_token", params, &result); err != nil {
		return 0, err
	}
	return result.Data.ExpiresAt, nil
}

// ListAccounts lấy danh sách page mà user quản lý
func (c *Client) ListAccounts(ctx context.Context, userToken string) ([]PageInfo, error) {
	params := url.Values{}
	params.Set("fields", "id,name,access_token,category,about,picture,fan_count")
	params.Set("access_token", userToken)

	var result struct {
		Data []PageInfo `json:"data"`
	}
	if err := c.doGet(ctx, "me/accounts", params, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// GetPageDetails lấy chi tiết một page
func (c *Client) GetPageDetails(ctx context.Context, pageID string, pageToken string) (*PageInfo, error) {
	params := url.Values{}
	params.Set("fields", "id,name,category,about,picture,fan_count,phone,website,single_line_address,cover")
	params.Set("access_token", pageToken)

	var page PageInfo
	if err := c.doGet(ctx, pageID, params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdatePage cập nhật các field của page trên nền tảng (about, phone, website)
func (c *Client) UpdatePage(ctx context.Context, pageID string, pageToken string, fields map[string]string) error {
	if len(fields) == 0 {
		return common.ErrInvalidInput
	}

	params := url.Values{}
	params.Set("access_token", pageToken)

	body := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		body[k] = v
	}

	return c.doPost(ctx, pageID, params, body, nil)
}

// SubscribePage đăng ký page nhận webhook messages
func (c *Client) SubscribePage(ctx context.Context, pageID string, pageToken string) error {
	params := url.Values{}
	params.Set("subscribed_fields", "messages,messaging_postbacks,message_reads,message_deliveries")
	params.Set("access_token", pageToken)

	return c.doPost(ctx, pageID+"/subscribed_apps", params, nil, nil)
}

// ListConversations lấy danh sách hội thoại của page, kèm tin nhắn mới nhất
func (c *Client) ListConversations(ctx context.Context, pageID string, pageToken string) ([]ConversationData, error) {
	params := url.Values{}
	params.Set("fields", "id,participants,unread_count,message_count,updated_time,can_reply,subject,messages.limit(1){id,from,message,created_time}")
	params.Set("access_token", pageToken)

	var result struct {
		Data []ConversationData `json:"data"`
	}
	if err := c.doGet(ctx, pageID+"/conversations", params, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// GetConversationUnread lấy số tin chưa đọc của một hội thoại
func (c *Client) GetConversationUnread(ctx context.Context, conversationID string, pageToken string) (int64, error) {
	params := url.Values{}
	params.Set("fields", "unread_count")
	params.Set("access_token", pageToken)

	var result struct {
		UnreadCount int64 `json:"unread_count"`
	}
	if err := c.doGet(ctx, conversationID, params, &result); err != nil {
		return 0, err
	}
	return result.UnreadCount, nil
}

// ArchiveConversation lưu trữ hội thoại trên nền tảng
func (c *Client) ArchiveConversation(ctx context.Context, conversationID string, pageToken string) error {
	params := url.Values{}
	params.Set("access_token", pageToken)

	body := map[string]interface{}{"is_subscribed": false}
	return c.doPost(ctx, conversationID, params, body, nil)
}

// MuteConversation tắt thông báo hội thoại trên nền tảng.
// muteUntil: "PERMANENTLY" hoặc timestamp.
func (c *Client) MuteConversation(ctx context.Context, conversationID string, pageToken string, muteUntil string) error {
	params := url.Values{}
	params.Set("access_token", pageToken)

	body := map[string]interface{}{"mute_until": muteUntil}
	return c.doPost(ctx, conversationID+"/mute", params, body, nil)
}

// MarkConversationRead đánh dấu hội thoại đã đọc trên nền tảng
func (c *Client) MarkConversationRead(ctx context.Context, conversationID string, pageToken string) error {
	params := url.Values{}
	params.Set("access_token", pageToken)

	body := map[string]interface{}{"marked_read": true}
	return c.doPost(ctx, conversationID, params, body, nil)
}

// ListMessages lấy tối đa 100 tin nhắn mới nhất của hội thoại
func (c *Client) ListMessages(ctx context.Context, conversationID string, pageToken string) ([]MessageData, error) {
	params := url.Values{}
	params.Set("fields", "id,from,to,message,created_time,attachments,sticker,tags,reply_to")
	params.Set("access_token", pageToken)
	params.Set("limit", "100")

	var result struct {
		Data []MessageData `json:"data"`
	}
	if err := c.doGet(ctx, conversationID+"/messages", params, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// SendMessage gửi tin nhắn text tới người nhận qua page
func (c *Client) SendMessage(ctx context.Context, pageToken string, recipientID string, text string) (*SendResult, error) {
	params := url.Values{}
	params.Set("access_token", pageToken)

	body := map[string]interface{}{
		"recipient": map[string]string{"id": recipientID},
		"message":   map[string]string{"text": text},
	}

	var result SendResult
	if err := c.doPost(ctx, "me/messages", params, body, &result); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"recipientId": recipientID,
		"messageId":   result.MessageID,
	}).Debug("🌐 [GRAPH] Gửi tin nhắn thành công")

	return &result, nil
}
