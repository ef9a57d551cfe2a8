package webhookhdl

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"meta_engage/config"
	faqmodels "meta_engage/internal/api/faq/models"
	fbmodels "meta_engage/internal/api/fb/models"
	webhookmodels "meta_engage/internal/api/webhook/models"
	"meta_engage/internal/common"
	"meta_engage/internal/global"
)

func newVerifyApp(t *testing.T) *fiber.App {
	t.Helper()
	global.ServerConfig = &config.Configuration{WebhookVerifyToken: "token-123"}
	handler := &PlatformWebhookHandler{}
	app := fiber.New()
	app.Get("/webhook", handler.HandleVerify)
	return app
}

func TestHandleVerify_EchoesChallengeOnMatch(t *testing.T) {
	app := newVerifyApp(t)

	req := httptest.NewRequest("GET", "/webhook?hub.mode=subscribe&hub.verify_token=token-123&hub.challenge=ch-42", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "ch-42", string(body))
}

func TestHandleVerify_RejectsWrongToken(t *testing.T) {
	app := newVerifyApp(t)

	req := httptest.NewRequest("GET", "/webhook?hub.mode=subscribe&hub.verify_token=sai&hub.challenge=ch-42", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 403, resp.StatusCode)
}

func TestHandleVerify_RejectsWrongMode(t *testing.T) {
	app := newVerifyApp(t)

	req := httptest.NewRequest("GET", "/webhook?hub.mode=unsubscribe&hub.verify_token=token-123", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 403, resp.StatusCode)
}

func TestHandleVerify_MissingParams(t *testing.T) {
	app := newVerifyApp(t)

	for _, target := range []string{
		"/webhook",
		"/webhook?hub.mode=subscribe",
		"/webhook?hub.verify_token=token-123",
	} {
		req := httptest.NewRequest("GET", target, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, 400, resp.StatusCode, "target %s phải trả 400", target)
	}
}

// fakePageResolver chỉ biết các trang trong map
type fakePageResolver struct {
	pages map[string]fbmodels.FbPage
}

func (f *fakePageResolver) FindOneByPageID(ctx context.Context, pageID string) (fbmodels.FbPage, error) {
	page, ok := f.pages[pageID]
	if !ok {
		return fbmodels.FbPage{}, common.ErrNotFound
	}
	return page, nil
}

// fakeResyncer pull luôn thành công, không có side effect
type fakeResyncer struct{}

func (f *fakeResyncer) PullConversations(ctx context.Context, page *fbmodels.FbPage) ([]fbmodels.FbConversation, error) {
	return nil, nil
}

func (f *fakeResyncer) PullMessages(ctx context.Context, page *fbmodels.FbPage, conv *fbmodels.FbConversation) (int, error) {
	return 0, nil
}

// fakeConversationStore trả về một hội thoại cố định cho mọi participant
type fakeConversationStore struct {
	conv     fbmodels.FbConversation
	answered []string
}

func (f *fakeConversationStore) FindOneByParticipant(ctx context.Context, pageID primitive.ObjectID, participantID string) (fbmodels.FbConversation, error) {
	return f.conv, nil
}

func (f *fakeConversationStore) MarkAnswered(ctx context.Context, conversationID string) error {
	f.answered = append(f.answered, conversationID)
	return nil
}

// fakeRuleEngine ghi lại các tin được đưa vào chuỗi rule
type fakeRuleEngine struct {
	inbound  []string // pageId của các lần ProcessInboundMessage
	comments []string // pageId của các lần HandleCommentToMessage
	handled  bool
}

func (f *fakeRuleEngine) ProcessInboundMessage(ctx context.Context, page *fbmodels.FbPage, senderID string, messageText string) (bool, error) {
	f.inbound = append(f.inbound, page.PageId)
	return f.handled, nil
}

func (f *fakeRuleEngine) HandleCommentToMessage(ctx context.Context, page *fbmodels.FbPage, authorID string, commentText string, postID string, commentID string) (bool, error) {
	f.comments = append(f.comments, page.PageId)
	return false, nil
}

// fakeFaqResponder không có FAQ nào khớp
type fakeFaqResponder struct{}

func (f *fakeFaqResponder) Search(ctx context.Context, pageID primitive.ObjectID, query string) ([]faqmodels.Faq, error) {
	return nil, nil
}

func (f *fakeFaqResponder) SendAnswer(ctx context.Context, faq *faqmodels.Faq, page *fbmodels.FbPage, recipientID string, conversationID primitive.ObjectID, triggeredBy string) (faqmodels.FaqLog, error) {
	return faqmodels.FaqLog{}, nil
}

// fakeWebhookLogStore ghi lại trạng thái processed được cập nhật
type fakeWebhookLogStore struct {
	processed *bool
	errorMsg  string
}

func (f *fakeWebhookLogStore) CreateWebhookLog(ctx context.Context, log webhookmodels.WebhookLog) (*webhookmodels.WebhookLog, error) {
	log.ID = primitive.NewObjectID()
	return &log, nil
}

func (f *fakeWebhookLogStore) UpdateProcessedStatus(ctx context.Context, logID primitive.ObjectID, processed bool, errorMsg string) error {
	f.processed = &processed
	f.errorMsg = errorMsg
	return nil
}

func newEventsApp(ruleEngine *fakeRuleEngine, logStore *fakeWebhookLogStore, knownPages map[string]fbmodels.FbPage) *fiber.App {
	handler := &PlatformWebhookHandler{
		pageService:       &fakePageResolver{pages: knownPages},
		syncService:       &fakeResyncer{},
		conversations:     &fakeConversationStore{conv: fbmodels.FbConversation{ID: primitive.NewObjectID(), ConversationId: "t_1"}},
		ruleEngine:        ruleEngine,
		faqService:        &fakeFaqResponder{},
		webhookLogService: logStore,
	}
	app := fiber.New()
	app.Post("/webhook", handler.HandleEvents)
	return app
}

// Batch có một entry của trang chưa kết nối: entry đó bị bỏ qua, entry còn lại
// vẫn được xử lý và batch vẫn được ack 200.
func TestHandleEvents_UnknownPageEntrySkippedBatchContinues(t *testing.T) {
	ruleEngine := &fakeRuleEngine{handled: true}
	logStore := &fakeWebhookLogStore{}
	known := fbmodels.FbPage{ID: primitive.NewObjectID(), PageId: "page-known", PageAccessToken: "token"}
	app := newEventsApp(ruleEngine, logStore, map[string]fbmodels.FbPage{"page-known": known})

	body := `{
		"object": "page",
		"entry": [
			{"id": "page-unknown", "messaging": [{"sender": {"id": "user-9"}, "message": {"mid": "m1", "text": "hello"}}]},
			{"id": "page-known", "messaging": [{"sender": {"id": "user-1"}, "message": {"mid": "m2", "text": "xin chào"}}]}
		]
	}`
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "EVENT_RECEIVED", string(respBody))

	// Entry của trang lạ không vào chuỗi rule, entry của trang đã kết nối thì có
	require.Len(t, ruleEngine.inbound, 1)
	assert.Equal(t, "page-known", ruleEngine.inbound[0])

	// Trang lạ là trường hợp bình thường, batch vẫn tính là xử lý thành công
	require.NotNil(t, logStore.processed)
	assert.True(t, *logStore.processed)
	assert.Empty(t, logStore.errorMsg)
}

// Tin echo của chính trang không được đưa vào chuỗi rule
func TestHandleEvents_EchoSkipped(t *testing.T) {
	ruleEngine := &fakeRuleEngine{handled: true}
	logStore := &fakeWebhookLogStore{}
	known := fbmodels.FbPage{ID: primitive.NewObjectID(), PageId: "page-known", PageAccessToken: "token"}
	app := newEventsApp(ruleEngine, logStore, map[string]fbmodels.FbPage{"page-known": known})

	body := `{
		"object": "page",
		"entry": [
			{"id": "page-known", "messaging": [{"sender": {"id": "page-known"}, "message": {"mid": "m1", "text": "reply của trang", "is_echo": true}}]}
		]
	}`
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, ruleEngine.inbound, "echo không được vào chuỗi rule")
}
