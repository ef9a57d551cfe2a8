// Package router đăng ký route cho domain automation.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	autohdl "meta_engage/internal/api/automation/handler"
	apirouter "meta_engage/internal/api/router"
)

// Register đăng ký route CRUD cho automation, keyword và instant reply.
// Xóa automation bị chặn khi còn keyword hoặc instant reply tham chiếu.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	automationHandler, err := autohdl.NewAutomationHandler()
	if err != nil {
		return fmt.Errorf("failed to create automation handler: %w", err)
	}
	keywordHandler, err := autohdl.NewKeywordHandler()
	if err != nil {
		return fmt.Errorf("failed to create keyword handler: %w", err)
	}
	instantReplyHandler, err := autohdl.NewInstantReplyHandler()
	if err != nil {
		return fmt.Errorf("failed to create instant reply handler: %w", err)
	}

	r.RegisterCRUDRoutes(v1, "/automations", automationHandler, apirouter.ReadWriteConfig)
	v1.Get("/automations/by-page/:pageId", automationHandler.HandleFindByPage)
	v1.Get("/automations/:automationId/keywords", keywordHandler.HandleFindByAutomation)
	v1.Get("/automations/:automationId/instant-replies", instantReplyHandler.HandleFindByAutomation)

	r.RegisterCRUDRoutes(v1, "/automation-keywords", keywordHandler, apirouter.ReadWriteConfig)
	r.RegisterCRUDRoutes(v1, "/instant-replies", instantReplyHandler, apirouter.ReadWriteConfig)

	return nil
}
