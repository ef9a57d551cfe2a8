// Package router đăng ký route cho domain Facebook.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	fbhdl "meta_engage/internal/api/fb/handler"
	apirouter "meta_engage/internal/api/router"
)

// Register đăng ký route cho tài khoản, trang, hội thoại, tin nhắn và contact.
// Tài khoản/trang/contact là dữ liệu cấu hình (read write); hội thoại và
// tin nhắn là dữ liệu ingest, chỉ đọc qua CRUD, ghi qua các action riêng.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	accountHandler, err := fbhdl.NewFbAccountHandler()
	if err != nil {
		return fmt.Errorf("failed to create fb account handler: %w", err)
	}
	pageHandler, err := fbhdl.NewFbPageHandler()
	if err != nil {
		return fmt.Errorf("failed to create fb page handler: %w", err)
	}
	conversationHandler, err := fbhdl.NewFbConversationHandler()
	if err != nil {
		return fmt.Errorf("failed to create fb conversation handler: %w", err)
	}
	messageHandler, err := fbhdl.NewFbMessageHandler()
	if err != nil {
		return fmt.Errorf("failed to create fb message handler: %w", err)
	}
	contactHandler, err := fbhdl.NewFbContactHandler()
	if err != nil {
		return fmt.Errorf("failed to create fb contact handler: %w", err)
	}

	r.RegisterCRUDRoutes(v1, "/fb-accounts", accountHandler, apirouter.ReadWriteConfig)
	v1.Post("/fb-accounts/connect", accountHandler.HandleConnect)
	v1.Get("/fb-accounts/:id/connectable-pages", accountHandler.HandleListConnectablePages)

	r.RegisterCRUDRoutes(v1, "/fb-pages", pageHandler, apirouter.ReadWriteConfig)
	v1.Post("/fb-pages/connect", pageHandler.HandleConnectPage)
	v1.Get("/fb-pages/by-page-id/:pageId", pageHandler.HandleFindOneByPageId)
	v1.Post("/fb-pages/:pageId/subscribe", pageHandler.HandleSubscribe)
	v1.Post("/fb-pages/:pageId/full-sync", pageHandler.HandleFullSync)
	v1.Put("/fb-pages/:pageId/profile", pageHandler.HandlePushProfile)
	v1.Get("/fb-pages/:pageId/unanswered", conversationHandler.HandleUnanswered)

	r.RegisterCRUDRoutes(v1, "/fb-conversations", conversationHandler, apirouter.ReadOnlyConfig)
	v1.Post("/fb-conversations/:conversationId/reply", conversationHandler.HandleReply)
	v1.Post("/fb-conversations/:conversationId/archive", conversationHandler.HandleArchive)
	v1.Post("/fb-conversations/:conversationId/mute", conversationHandler.HandleMute)
	v1.Post("/fb-conversations/:conversationId/mark-read", conversationHandler.HandleMarkRead)
	v1.Get("/fb-conversations/:conversationId/messages", messageHandler.HandleFindByConversation)

	r.RegisterCRUDRoutes(v1, "/fb-messages", messageHandler, apirouter.ReadOnlyConfig)

	r.RegisterCRUDRoutes(v1, "/fb-contacts", contactHandler, apirouter.ReadWriteConfig)
	v1.Get("/fb-contacts/by-page/:pageId", contactHandler.HandleFindByPage)

	return nil
}
