// Package autosvc - Test matchKeyword, personalization, chuỗi rule và gửi theo lịch của engine.
package autosvc

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	autmodels "meta_engage/internal/api/automation/models"
	fbmodels "meta_engage/internal/api/fb/models"
	"meta_engage/internal/common"
	"meta_engage/internal/platform"
)

// fakeAPI ghi lại các lần gọi SendMessage, các method khác panic nếu bị gọi
type fakeAPI struct {
	platform.API

	mu    sync.Mutex
	calls []sentMessage
	err   error
}

type sentMessage struct {
	pageToken   string
	recipientID string
	text        string
}

func (f *fakeAPI) SendMessage(ctx context.Context, pageToken string, recipientID string, text string) (*platform.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sentMessage{pageToken: pageToken, recipientID: recipientID, text: text})
	if f.err != nil {
		return nil, f.err
	}
	return &platform.SendResult{MessageID: "m_test"}, nil
}

func (f *fakeAPI) sent() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentMessage, len(f.calls))
	copy(out, f.calls)
	return out
}

// fakeAutomationStore phục vụ automation từ memory
type fakeAutomationStore struct {
	mu          sync.Mutex
	automations []autmodels.Automation
	triggered   []primitive.ObjectID
}

func (f *fakeAutomationStore) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]autmodels.Automation, error) {
	return f.automations, nil
}

func (f *fakeAutomationStore) FindActiveByPageAndType(ctx context.Context, pageID primitive.ObjectID, automationType string) ([]autmodels.Automation, error) {
	var out []autmodels.Automation
	for i := range f.automations {
		if f.automations[i].Type == automationType && f.automations[i].IsActive {
			out = append(out, f.automations[i])
		}
	}
	return out, nil
}

func (f *fakeAutomationStore) FindOneActiveByPageAndType(ctx context.Context, pageID primitive.ObjectID, automationType string) (autmodels.Automation, error) {
	found, err := f.FindActiveByPageAndType(ctx, pageID, automationType)
	if err != nil || len(found) == 0 {
		return autmodels.Automation{}, common.ErrNotFound
	}
	return found[0], nil
}

func (f *fakeAutomationStore) RecordTrigger(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggered = append(f.triggered, id)
	return nil
}

func (f *fakeAutomationStore) triggeredIDs() []primitive.ObjectID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]primitive.ObjectID, len(f.triggered))
	copy(out, f.triggered)
	return out
}

// fakeKeywordStore phục vụ keyword theo automation từ memory
type fakeKeywordStore struct {
	keywords map[primitive.ObjectID][]autmodels.Keyword
	matched  []primitive.ObjectID
}

func (f *fakeKeywordStore) FindActiveByAutomation(ctx context.Context, automationID primitive.ObjectID) ([]autmodels.Keyword, error) {
	return f.keywords[automationID], nil
}

func (f *fakeKeywordStore) RecordMatch(ctx context.Context, id primitive.ObjectID) error {
	f.matched = append(f.matched, id)
	return nil
}

// fakeInstantReplyStore phục vụ một instant reply duy nhất
type fakeInstantReplyStore struct {
	mu        sync.Mutex
	reply     autmodels.InstantReply
	hasReply  bool
	triggered []primitive.ObjectID
}

func (f *fakeInstantReplyStore) FindFirstActiveByAutomations(ctx context.Context, automationIDs []primitive.ObjectID) (autmodels.InstantReply, error) {
	if !f.hasReply {
		return autmodels.InstantReply{}, common.ErrNotFound
	}
	return f.reply, nil
}

func (f *fakeInstantReplyStore) RecordTrigger(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggered = append(f.triggered, id)
	return nil
}

func (f *fakeInstantReplyStore) triggeredIDs() []primitive.ObjectID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]primitive.ObjectID, len(f.triggered))
	copy(out, f.triggered)
	return out
}

// fakeContactStore trả về một contact cố định
type fakeContactStore struct {
	contact fbmodels.FbContact
	found   bool
}

func (f *fakeContactStore) FindOneByPageAndUser(ctx context.Context, pageID primitive.ObjectID, platformUserID string) (fbmodels.FbContact, error) {
	if !f.found {
		return fbmodels.FbContact{}, common.ErrNotFound
	}
	return f.contact, nil
}

// newTestEngine dựng engine trên các fake store, trả kèm các fake để assert
func newTestEngine(api *fakeAPI, automations *fakeAutomationStore, keywords *fakeKeywordStore, replies *fakeInstantReplyStore, contacts *fakeContactStore) *RuleEngine {
	if keywords == nil {
		keywords = &fakeKeywordStore{}
	}
	if replies == nil {
		replies = &fakeInstantReplyStore{}
	}
	if contacts == nil {
		contacts = &fakeContactStore{}
	}
	return &RuleEngine{
		api:                 api,
		automationService:   automations,
		keywordService:      keywords,
		instantReplyService: replies,
		contactService:      contacts,
	}
}

func TestMatchKeyword_Contains(t *testing.T) {
	cases := []struct {
		text    string
		keyword string
		want    bool
	}{
		{"What is the price?", "price", true},
		{"PRICE please", "price", true},
		{"how much", "price", false},
		{"priceless item", "price", true},
	}
	for _, c := range cases {
		got := matchKeyword(c.text, c.keyword, autmodels.MatchTypeContains)
		if got != c.want {
			t.Errorf("matchKeyword(%q, %q, contains) = %v, muốn %v", c.text, c.keyword, got, c.want)
		}
	}
}

func TestMatchKeyword_Exact(t *testing.T) {
	if !matchKeyword("Price", "price", autmodels.MatchTypeExact) {
		t.Error("exact phải khớp không phân biệt hoa thường")
	}
	if matchKeyword("priceless", "price", autmodels.MatchTypeExact) {
		t.Error("exact không được khớp khi text dài hơn keyword")
	}
	if matchKeyword("What is the price?", "price", autmodels.MatchTypeExact) {
		t.Error("exact không được khớp substring")
	}
}

func TestMatchKeyword_StartsWithEndsWith(t *testing.T) {
	if !matchKeyword("Hello world", "hello", autmodels.MatchTypeStartsWith) {
		t.Error("starts_with phải khớp prefix không phân biệt hoa thường")
	}
	if matchKeyword("say hello", "hello", autmodels.MatchTypeStartsWith) {
		t.Error("starts_with không được khớp khi keyword nằm giữa")
	}
	if !matchKeyword("say hello", "HELLO", autmodels.MatchTypeEndsWith) {
		t.Error("ends_with phải khớp suffix không phân biệt hoa thường")
	}
	if matchKeyword("hello there", "hello", autmodels.MatchTypeEndsWith) {
		t.Error("ends_with không được khớp khi keyword ở đầu")
	}
}

func TestMatchKeyword_Regex(t *testing.T) {
	if !matchKeyword("Ship to Hanoi", "ship.*hanoi", autmodels.MatchTypeRegex) {
		t.Error("regex phải khớp không phân biệt hoa thường")
	}
	if matchKeyword("anything", "(", autmodels.MatchTypeRegex) {
		t.Error("pattern không compile được phải coi là không khớp")
	}
}

func TestMatchKeyword_UnknownTypeDefaultsToContains(t *testing.T) {
	if !matchKeyword("what is the price?", "price", "bogus") {
		t.Error("matchType lạ phải fallback về contains")
	}
}

func TestBuildContactInfoMessage_DefaultFields(t *testing.T) {
	got := buildContactInfoMessage(nil)
	want := "Thank you for contacting us! Could you please provide your email and phone so we can assist you better?"
	if got != want {
		t.Errorf("message mặc định sai:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestBuildContactInfoMessage_CustomFields(t *testing.T) {
	got := buildContactInfoMessage([]string{"email", "phone", "address"})
	want := "Thank you for contacting us! Could you please provide your email and phone and address so we can assist you better?"
	if got != want {
		t.Errorf("message với fields tùy chỉnh sai:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestPersonalizeReply(t *testing.T) {
	got := personalizeReply("Lan", "Cảm ơn bạn đã nhắn tin!")
	want := "Hi Lan,\n\nCảm ơn bạn đã nhắn tin!"
	if got != want {
		t.Errorf("personalizeReply sai:\ngot:  %q\nwant: %q", got, want)
	}
	if personalizeReply("", "Cảm ơn bạn!") != "Cảm ơn bạn!" {
		t.Error("không biết tên thì phải giữ nguyên message")
	}
}

func TestSendText_ForwardsPageTokenAndRecipient(t *testing.T) {
	fake := &fakeAPI{}
	engine := &RuleEngine{api: fake}
	page := &fbmodels.FbPage{PageId: "123", PageAccessToken: "token-abc"}

	if err := engine.sendText(context.Background(), page, "user-1", "xin chào"); err != nil {
		t.Fatalf("sendText lỗi: %v", err)
	}

	calls := fake.sent()
	if len(calls) != 1 {
		t.Fatalf("muốn 1 lần gọi SendMessage, có %d", len(calls))
	}
	if calls[0].pageToken != "token-abc" || calls[0].recipientID != "user-1" || calls[0].text != "xin chào" {
		t.Errorf("SendMessage nhận sai tham số: %+v", calls[0])
	}
}

func TestScheduleSend_FiresAfterDelayAndBumpsCounters(t *testing.T) {
	fake := &fakeAPI{}
	automations := &fakeAutomationStore{}
	replies := &fakeInstantReplyStore{}
	engine := newTestEngine(fake, automations, nil, replies, nil)
	page := &fbmodels.FbPage{PageId: "123", PageAccessToken: "token-abc"}
	reply := autmodels.InstantReply{ID: primitive.NewObjectID(), AutomationID: primitive.NewObjectID()}

	engine.scheduleSend(page, "user-1", "trả lời trễ", reply, 10*time.Millisecond)

	if len(fake.sent()) != 0 {
		t.Fatal("không được gửi trước khi hết delay")
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(replies.triggeredIDs()) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("hết delay mà vẫn chưa gửi")
		}
		time.Sleep(10 * time.Millisecond)
	}
	calls := fake.sent()
	if calls[0].text != "trả lời trễ" || calls[0].recipientID != "user-1" {
		t.Errorf("tin gửi theo lịch sai tham số: %+v", calls[0])
	}

	// Đường gửi theo lịch phải tăng counter của cả reply lẫn automation sở hữu,
	// giống đường gửi ngay
	if got := replies.triggeredIDs(); len(got) != 1 || got[0] != reply.ID {
		t.Errorf("counter của reply không được tăng đúng: %v", got)
	}
	if got := automations.triggeredIDs(); len(got) != 1 || got[0] != reply.AutomationID {
		t.Errorf("counter của automation sở hữu không được tăng: %v", got)
	}
}

func TestProcessInboundMessage_KeywordShortCircuitsChain(t *testing.T) {
	keywordAutomation := autmodels.Automation{ID: primitive.NewObjectID(), Type: autmodels.AutomationTypeCustomKeyword, IsActive: true}
	awayAutomation := autmodels.Automation{
		ID:       primitive.NewObjectID(),
		Type:     autmodels.AutomationTypeAwayMessage,
		IsActive: true,
		Config:   map[string]interface{}{"message": "Hiện chúng tôi đang vắng mặt"},
	}
	contactAutomation := autmodels.Automation{ID: primitive.NewObjectID(), Type: autmodels.AutomationTypeContactInfo, IsActive: true}
	keyword := autmodels.Keyword{
		ID:              primitive.NewObjectID(),
		AutomationID:    keywordAutomation.ID,
		Keyword:         "price",
		MatchType:       autmodels.MatchTypeContains,
		ResponseMessage: "Giá sản phẩm là 100k",
	}

	fake := &fakeAPI{}
	automations := &fakeAutomationStore{automations: []autmodels.Automation{keywordAutomation, awayAutomation, contactAutomation}}
	keywords := &fakeKeywordStore{keywords: map[primitive.ObjectID][]autmodels.Keyword{keywordAutomation.ID: {keyword}}}
	replies := &fakeInstantReplyStore{
		reply:    autmodels.InstantReply{ID: primitive.NewObjectID(), Message: "Cảm ơn bạn đã nhắn tin", IsActive: true},
		hasReply: true,
	}
	engine := newTestEngine(fake, automations, keywords, replies, nil)
	page := &fbmodels.FbPage{PageId: "123", PageAccessToken: "token-abc"}

	handled, err := engine.ProcessInboundMessage(context.Background(), page, "user-1", "What is the price?")
	if err != nil {
		t.Fatalf("ProcessInboundMessage lỗi: %v", err)
	}
	if !handled {
		t.Fatal("keyword match thì chuỗi phải báo handled")
	}

	// Rule đầu tiên bắn phải kết thúc chuỗi: đúng một tin được gửi, là
	// response của keyword, away message và instant reply không được gửi
	calls := fake.sent()
	if len(calls) != 1 {
		t.Fatalf("muốn đúng 1 tin được gửi, có %d: %+v", len(calls), calls)
	}
	if calls[0].text != "Giá sản phẩm là 100k" {
		t.Errorf("tin gửi đi phải là response của keyword, có %q", calls[0].text)
	}
	if got := keywords.matched; len(got) != 1 || got[0] != keyword.ID {
		t.Errorf("match counter của keyword phải được tăng: %v", got)
	}
	if len(replies.triggeredIDs()) != 0 {
		t.Error("instant reply không được bắn khi keyword đã match")
	}
	if got := automations.triggeredIDs(); len(got) != 1 || got[0] != keywordAutomation.ID {
		t.Errorf("chỉ automation keyword được tăng trigger counter: %v", got)
	}
}

func TestProcessInboundMessage_FallsThroughToAwayMessage(t *testing.T) {
	keywordAutomation := autmodels.Automation{ID: primitive.NewObjectID(), Type: autmodels.AutomationTypeCustomKeyword, IsActive: true}
	awayAutomation := autmodels.Automation{
		ID:       primitive.NewObjectID(),
		Type:     autmodels.AutomationTypeAwayMessage,
		IsActive: true,
		Config:   map[string]interface{}{"message": "Hiện chúng tôi đang vắng mặt"},
	}

	fake := &fakeAPI{}
	automations := &fakeAutomationStore{automations: []autmodels.Automation{keywordAutomation, awayAutomation}}
	keywords := &fakeKeywordStore{keywords: map[primitive.ObjectID][]autmodels.Keyword{
		keywordAutomation.ID: {{ID: primitive.NewObjectID(), Keyword: "price", MatchType: autmodels.MatchTypeContains, ResponseMessage: "Giá 100k"}},
	}}
	engine := newTestEngine(fake, automations, keywords, nil, nil)
	page := &fbmodels.FbPage{PageId: "123", PageAccessToken: "token-abc"}

	handled, err := engine.ProcessInboundMessage(context.Background(), page, "user-1", "xin chào shop")
	if err != nil {
		t.Fatalf("ProcessInboundMessage lỗi: %v", err)
	}
	if !handled {
		t.Fatal("away message phải bắn khi không keyword nào match")
	}

	calls := fake.sent()
	if len(calls) != 1 || calls[0].text != "Hiện chúng tôi đang vắng mặt" {
		t.Fatalf("tin gửi đi phải là away message, có %+v", calls)
	}
	if got := automations.triggeredIDs(); len(got) != 1 || got[0] != awayAutomation.ID {
		t.Errorf("automation away phải được tăng trigger counter: %v", got)
	}
}

func TestProcessInboundMessage_NoRulesIsNotHandled(t *testing.T) {
	fake := &fakeAPI{}
	engine := newTestEngine(fake, &fakeAutomationStore{}, nil, nil, nil)
	page := &fbmodels.FbPage{PageId: "123", PageAccessToken: "token-abc"}

	handled, err := engine.ProcessInboundMessage(context.Background(), page, "user-1", "xin chào")
	if err != nil {
		t.Fatalf("ProcessInboundMessage lỗi: %v", err)
	}
	if handled {
		t.Error("không rule nào cấu hình thì chuỗi không được báo handled")
	}
	if len(fake.sent()) != 0 {
		t.Errorf("không được gửi tin nào: %+v", fake.sent())
	}
}
