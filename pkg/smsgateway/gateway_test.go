package smsgateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ArowuTest/sansol-promo-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGateway_SendSMS(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "3001234567", body["to"])
		assert.Equal(t, "SANSOL", body["from"])

		_ = json.NewEncoder(w).Encode(map[string]string{"messageId": "msg-1"})
	}))
	defer srv.Close()

	gw := New(Options{BaseURL: srv.URL, APIKey: "key", Sender: "SANSOL"}, logger.Discard())
	id, err := gw.SendSMS(context.Background(), "3001234567", "hola")
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
}

func TestHTTPGateway_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	gw := NewHTTPGateway(Options{BaseURL: srv.URL})
	_, err := gw.SendSMS(context.Background(), "3001234567", "hola")
	assert.Error(t, err)
}

func TestMockGateway(t *testing.T) {
	gw, ok := New(Options{Mock: true, Sender: "SANSOL"}, nil).(*MockGateway)
	require.True(t, ok)

	id, err := gw.SendSMS(context.Background(), "3001234567", "tu código")
	require.NoError(t, err)
	assert.Contains(t, id, "SANSOL-MOCK-MSG-")

	sent := gw.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "3001234567", sent[0].PhoneNumber)
}
