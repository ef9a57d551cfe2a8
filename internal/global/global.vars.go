package global

import (
	"meta_engage/config"
	"meta_engage/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	FbAccounts      string // Tên collection cho tài khoản kết nối nền tảng
	FbPages         string // Tên collection cho trang Facebook
	FbConversations string // Tên collection cho cuộc trò chuyện trên Facebook
	FbMessages      string // Tên collection cho tin nhắn trên Facebook
	FbContacts      string // Tên collection cho người liên hệ trên trang
	Automations     string // Tên collection cho cấu hình automation
	Keywords        string // Tên collection cho keyword của automation
	InstantReplies  string // Tên collection cho instant reply
	Faqs            string // Tên collection cho FAQ
	FaqLogs         string // Tên collection cho log gửi FAQ
	WebhookLogs     string // Tên collection cho log webhook nhận được
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration         // Cấu hình của server
var MongoDB_ColNames = MongoDB_CollectionName{ // Tên các collection
	FbAccounts:      "fb_accounts",
	FbPages:         "fb_pages",
	FbConversations: "fb_conversations",
	FbMessages:      "fb_messages",
	FbContacts:      "fb_contacts",
	Automations:     "automations",
	Keywords:        "automation_keywords",
	InstantReplies:  "instant_replies",
	Faqs:            "faqs",
	FaqLogs:         "faq_logs",
	WebhookLogs:     "webhook_logs",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
