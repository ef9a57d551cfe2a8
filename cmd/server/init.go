package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"meta_engage/config"
	autmodels "meta_engage/internal/api/automation/models"
	faqmodels "meta_engage/internal/api/faq/models"
	fbmodels "meta_engage/internal/api/fb/models"
	webhookmodels "meta_engage/internal/api/webhook/models"
	"meta_engage/internal/database"
	"meta_engage/internal/global"
)

// InitGlobal khởi tạo các biến toàn cục theo thứ tự: validator, config, database
func InitGlobal() {
	initValidator()
	initConfig()
	initDatabase_MongoDB()
}

// Hàm khởi tạo validator (đăng ký custom validators: no_xss, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database, đảm bảo collections và index
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	// Khởi tạo các index khai báo bằng tag trên model
	dbName := global.ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.FbAccounts), fbmodels.FbAccount{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.FbPages), fbmodels.FbPage{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.FbConversations), fbmodels.FbConversation{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.FbMessages), fbmodels.FbMessage{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.FbContacts), fbmodels.FbContact{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Automations), autmodels.Automation{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Keywords), autmodels.Keyword{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.InstantReplies), autmodels.InstantReply{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Faqs), faqmodels.Faq{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.FaqLogs), faqmodels.FaqLog{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.WebhookLogs), webhookmodels.WebhookLog{})

	// Index phục vụ các query thường dùng không khai báo được bằng tag
	if err := database.CreateQueryIndexes(context.TODO(), db); err != nil {
		logrus.Warnf("Failed to create query indexes: %v", err)
	}
}
