// Package models - Test decode config blob của automation sang struct typed.
package models

import (
	"testing"
)

func TestAlertConfigDecode(t *testing.T) {
	a := &Automation{
		Type: AutomationTypeUnansweredAlert,
		Config: map[string]interface{}{
			"hours": 48,
			"email": "ops@example.com",
		},
	}
	cfg, err := a.AlertConfig()
	if err != nil {
		t.Fatalf("AlertConfig lỗi: %v", err)
	}
	if cfg.Hours != 48 {
		t.Errorf("hours = %d, muốn 48", cfg.Hours)
	}
	if cfg.Email != "ops@example.com" {
		t.Errorf("email = %q, muốn ops@example.com", cfg.Email)
	}
}

func TestAlertConfigDecode_EmptyConfig(t *testing.T) {
	a := &Automation{Type: AutomationTypeUnansweredAlert}
	cfg, err := a.AlertConfig()
	if err != nil {
		t.Fatalf("AlertConfig với config nil lỗi: %v", err)
	}
	if cfg.Hours != 0 || cfg.Email != "" {
		t.Errorf("config nil phải decode về zero value, got %+v", cfg)
	}
}

func TestContactConfigDecode(t *testing.T) {
	a := &Automation{
		Type: AutomationTypeContactInfo,
		Config: map[string]interface{}{
			"fields": []string{"email"},
		},
	}
	cfg, err := a.ContactConfig()
	if err != nil {
		t.Fatalf("ContactConfig lỗi: %v", err)
	}
	if len(cfg.Fields) != 1 || cfg.Fields[0] != "email" {
		t.Errorf("fields = %v, muốn [email]", cfg.Fields)
	}
	if cfg.Message != "" {
		t.Errorf("message phải rỗng khi không cấu hình, got %q", cfg.Message)
	}
}

func TestAwayConfigDecode_IgnoresUnknownKeys(t *testing.T) {
	a := &Automation{
		Type: AutomationTypeAwayMessage,
		Config: map[string]interface{}{
			"message": "We are away",
			"extra":   true,
		},
	}
	cfg, err := a.AwayConfig()
	if err != nil {
		t.Fatalf("AwayConfig lỗi: %v", err)
	}
	if cfg.Message != "We are away" {
		t.Errorf("message = %q, muốn We are away", cfg.Message)
	}
}
