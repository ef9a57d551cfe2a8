// Package webhookdto - Test parse payload webhook của nền tảng.
package webhookdto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessagingEvent(t *testing.T) {
	payload := `{
		"object": "page",
		"entry": [{
			"id": "123456",
			"time": 1710000000000,
			"messaging": [{
				"sender": {"id": "user_1"},
				"recipient": {"id": "123456"},
				"timestamp": 1710000000000,
				"message": {"mid": "m_abc", "text": "what is the price?"}
			}]
		}]
	}`

	var req WebhookEventRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	assert.Equal(t, "page", req.Object)
	require.Len(t, req.Entry, 1)
	assert.Equal(t, "123456", req.Entry[0].ID)
	require.Len(t, req.Entry[0].Messaging, 1)

	event := req.Entry[0].Messaging[0]
	assert.Equal(t, "user_1", event.Sender.ID)
	require.NotNil(t, event.Message)
	assert.Equal(t, "m_abc", event.Message.Mid)
	assert.Equal(t, "what is the price?", event.Message.Text)
	assert.False(t, event.Message.IsEcho)
	assert.Nil(t, event.Read)
}

func TestParseEchoAndReadEvents(t *testing.T) {
	payload := `{
		"object": "page",
		"entry": [{
			"id": "123456",
			"messaging": [
				{"sender": {"id": "123456"}, "message": {"mid": "m_echo", "is_echo": true, "text": "reply"}},
				{"sender": {"id": "user_1"}, "read": {"watermark": 1710000000000}}
			]
		}]
	}`

	var req WebhookEventRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))
	require.Len(t, req.Entry[0].Messaging, 2)

	echo := req.Entry[0].Messaging[0]
	require.NotNil(t, echo.Message)
	assert.True(t, echo.Message.IsEcho, "is_echo phải được parse từ json")

	read := req.Entry[0].Messaging[1]
	require.NotNil(t, read.Read)
	assert.Equal(t, int64(1710000000000), read.Read.Watermark)
}

func TestParseFeedCommentChange(t *testing.T) {
	payload := `{
		"object": "page",
		"entry": [{
			"id": "123456",
			"changes": [{
				"field": "feed",
				"value": {
					"item": "comment",
					"verb": "add",
					"comment_id": "c_1",
					"post_id": "p_1",
					"message": "is this available?",
					"from": {"id": "user_2", "name": "Nguyen Van A"}
				}
			}]
		}]
	}`

	var req WebhookEventRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))
	require.Len(t, req.Entry[0].Changes, 1)

	change := req.Entry[0].Changes[0]
	assert.Equal(t, "feed", change.Field)
	assert.Equal(t, "comment", change.Value.Item)
	assert.Equal(t, "add", change.Value.Verb)
	assert.Equal(t, "c_1", change.Value.CommentID)
	assert.Equal(t, "p_1", change.Value.PostID)
	assert.Equal(t, "user_2", change.Value.From.ID)
}
