// Package basesvc - Test parse relationship tag trên model.
package basesvc

import (
	"reflect"
	"testing"

	automodels "meta_engage/internal/api/automation/models"
)

func TestParseRelationshipTag_Automation(t *testing.T) {
	defs := ParseRelationshipTag(reflect.TypeOf(automodels.Automation{}))
	if len(defs) != 2 {
		t.Fatalf("Automation phải có 2 relationship, got %d: %+v", len(defs), defs)
	}

	byCollection := map[string]RelationshipDefinition{}
	for _, d := range defs {
		byCollection[d.CollectionName] = d
	}

	kw, ok := byCollection["automation_keywords"]
	if !ok {
		t.Fatal("thiếu relationship tới automation_keywords")
	}
	if kw.FieldName != "automationId" {
		t.Errorf("field của automation_keywords = %q, muốn automationId", kw.FieldName)
	}

	ir, ok := byCollection["instant_replies"]
	if !ok {
		t.Fatal("thiếu relationship tới instant_replies")
	}
	if ir.FieldName != "automationId" {
		t.Errorf("field của instant_replies = %q, muốn automationId", ir.FieldName)
	}
}

func TestParseRelationshipTag_NoTag(t *testing.T) {
	type plain struct {
		Name string `bson:"name"`
	}
	defs := ParseRelationshipTag(reflect.TypeOf(plain{}))
	if len(defs) != 0 {
		t.Errorf("struct không có tag phải trả về 0 relationship, got %d", len(defs))
	}
}
