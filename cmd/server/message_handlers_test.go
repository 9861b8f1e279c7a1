package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"example.com/socialhub/internal/models"
)

func TestSendMessage(t *testing.T) {
	s, mockStore, _, ts := setupTestServer(t)
	defer ts.Close()

	aliceToken := seedUser(t, s, "u1", "alice")
	seedUser(t, s, "u2", "bob")

	body := map[string]any{"recipientId": "u2", "message": "hi bob"}
	resp := sendJSONRequest(t, http.MethodPost, ts.URL+"/api/v1/message/send", body, aliceToken, http.StatusCreated)
	defer resp.Body.Close()

	var created models.Message
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if created.SenderID != "u1" || created.ReceiverID != "u2" || created.Content != "hi bob" {
		t.Fatalf("unexpected message: %+v", created)
	}
	if created.Read {
		t.Fatal("new message must start unread")
	}
	if len(mockStore.Messages) != 1 {
		t.Fatalf("expected 1 message row, got %d", len(mockStore.Messages))
	}
}

func TestSendMessage_MissingRecipient(t *testing.T) {
	s, _, _, ts := setupTestServer(t)
	defer ts.Close()

	token := seedUser(t, s, "u1", "alice")

	body := map[string]any{"recipientId": "ghost", "message": "hello?"}
	resp := sendJSONRequest(t, http.MethodPost, ts.URL+"/api/v1/message/send", body, token, http.StatusNotFound)
	resp.Body.Close()
}

func TestSendMessage_Empty(t *testing.T) {
	s, _, _, ts := setupTestServer(t)
	defer ts.Close()

	token := seedUser(t, s, "u1", "alice")
	seedUser(t, s, "u2", "bob")

	body := map[string]any{"recipientId": "u2"}
	resp := sendJSONRequest(t, http.MethodPost, ts.URL+"/api/v1/message/send", body, token, http.StatusBadRequest)
	resp.Body.Close()
}

// the conversation includes both directions and marks received messages read
func TestConversation(t *testing.T) {
	s, mockStore, _, ts := setupTestServer(t)
	defer ts.Close()

	aliceToken := seedUser(t, s, "u1", "alice")
	bobToken := seedUser(t, s, "u2", "bob")

	sendBody := func(token, to, text string) {
		body := map[string]any{"recipientId": to, "message": text}
		resp := sendJSONRequest(t, http.MethodPost, ts.URL+"/api/v1/message/send", body, token, http.StatusCreated)
		resp.Body.Close()
	}
	sendBody(aliceToken, "u2", "hi bob")
	sendBody(bobToken, "u1", "hi alice")

	resp := sendJSONRequest(t, http.MethodGet, ts.URL+"/api/v1/message/u2", nil, aliceToken, http.StatusOK)
	defer resp.Body.Close()

	var conv []models.Message
	if err := json.NewDecoder(resp.Body).Decode(&conv); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(conv) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(conv))
	}
	if conv[0].Content != "hi bob" || conv[1].Content != "hi alice" {
		t.Fatalf("conversation out of order: %+v", conv)
	}

	// bob's message to alice is now read in the store
	for _, m := range mockStore.Messages {
		if m.ReceiverID == "u1" && !m.Read {
			t.Fatal("received message not marked read")
		}
	}
}

func TestConversation_MissingUser(t *testing.T) {
	s, _, _, ts := setupTestServer(t)
	defer ts.Close()

	token := seedUser(t, s, "u1", "alice")

	resp := sendJSONRequest(t, http.MethodGet, ts.URL+"/api/v1/message/ghost", nil, token, http.StatusNotFound)
	resp.Body.Close()
}
