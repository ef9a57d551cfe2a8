// Package basesvc - Test build update document và default tag cho upsert.
package basesvc

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	fbmodels "meta_engage/internal/api/fb/models"
)

func TestToUpdateData_PlainMapWrappedInSet(t *testing.T) {
	update, err := ToUpdateData(map[string]interface{}{"name": "Trang A", "fanCount": 10})
	assert.NoError(t, err)
	assert.Equal(t, "Trang A", update.Set["name"])
	assert.Empty(t, update.SetOnInsert)
}

func TestToUpdateData_ExistingOperatorsPreserved(t *testing.T) {
	update, err := ToUpdateData(map[string]interface{}{
		"$set":         map[string]interface{}{"lastMessageText": "hello"},
		"$setOnInsert": map[string]interface{}{"status": "open"},
		"$inc":         map[string]interface{}{"messageCount": 1},
	})
	assert.NoError(t, err)
	assert.Equal(t, "hello", update.Set["lastMessageText"])
	assert.Equal(t, "open", update.SetOnInsert["status"])
	assert.EqualValues(t, 1, update.Inc["messageCount"])
}

func TestToUpdateData_UpdateDataPassthrough(t *testing.T) {
	in := &UpdateData{Set: map[string]interface{}{"about": "shop"}}
	update, err := ToUpdateData(in)
	assert.NoError(t, err)
	assert.Same(t, in, update)
}

// Giá trị default tag chỉ đi vào $setOnInsert, nên lần upsert thứ hai
// không ghi đè status đã bị đổi thủ công (ví dụ hội thoại đã archive).
func TestGetInsertDefaults_ConversationStatus(t *testing.T) {
	defaults := getInsertDefaultsFromModelType(reflect.TypeOf(fbmodels.FbConversation{}))
	assert.Equal(t, "open", defaults["status"])
	_, hasLastMessage := defaults["lastMessageText"]
	assert.False(t, hasLastMessage)
}

func TestGetInsertDefaults_TypedValues(t *testing.T) {
	type model struct {
		Active  bool   `bson:"isActive" default:"true"`
		Count   int64  `bson:"triggerCount" default:"0"`
		Status  string `bson:"status" default:"active"`
		Skipped string `bson:"-" default:"never"`
		NoTag   string `bson:"noTag"`
	}
	defaults := getInsertDefaultsFromModelType(reflect.TypeOf(model{}))
	assert.Equal(t, true, defaults["isActive"])
	assert.Equal(t, int64(0), defaults["triggerCount"])
	assert.Equal(t, "active", defaults["status"])
	assert.NotContains(t, defaults, "-")
	assert.NotContains(t, defaults, "noTag")
	assert.Len(t, defaults, 3)
}

func TestGetInsertDefaults_NonStructReturnsNil(t *testing.T) {
	assert.Nil(t, getInsertDefaultsFromModelType(reflect.TypeOf("chuỗi")))
}
