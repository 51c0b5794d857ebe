//go:build api

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceURL = "http://localhost:8080"

// TestAPI_FullFlow walks the whole ticket lifecycle against a running
// service: create event, issue, inspect, redeem, re-redeem, tamper.
func TestAPI_FullFlow(t *testing.T) {
	waitForService(t)

	var eventID, ticketID, payload string

	t.Run("Step1_CreateEvent", func(t *testing.T) {
		eventReq := map[string]interface{}{
			"title":    "Golang Workshop Bangkok",
			"location": "BITEC Bangna",
			"start_at": time.Now().Add(1 * time.Hour).Format(time.RFC3339),
			"end_at":   time.Now().Add(5 * time.Hour).Format(time.RFC3339),
		}

		resp := post(t, serviceURL+"/api/v1/events", eventReq)
		require.Equal(t, 201, resp.StatusCode, "should create event")

		var eventResp map[string]interface{}
		decodeJSON(t, resp, &eventResp)
		eventID, _ = eventResp["id"].(string)
		require.NotEmpty(t, eventID)
		assert.Equal(t, "Golang Workshop Bangkok", eventResp["title"])
	})

	t.Run("Step2_IssueTicket", func(t *testing.T) {
		resp := post(t, serviceURL+"/api/v1/events/"+eventID+"/tickets", map[string]interface{}{"owner": "alice"})
		require.Equal(t, 201, resp.StatusCode, "should issue ticket")

		var issueResp map[string]interface{}
		decodeJSON(t, resp, &issueResp)
		ticketID, _ = issueResp["ticket_id"].(string)
		payload, _ = issueResp["payload"].(string)
		require.NotEmpty(t, ticketID)
		require.NotEmpty(t, payload)
		assert.NotEmpty(t, issueResp["signature"])
	})

	t.Run("Step3_TicketDetail", func(t *testing.T) {
		resp := get(t, serviceURL+"/api/v1/tickets/"+ticketID)
		require.Equal(t, 200, resp.StatusCode)

		var ticketResp map[string]interface{}
		decodeJSON(t, resp, &ticketResp)
		assert.Equal(t, "unused", ticketResp["status"])
		assert.Equal(t, eventID, ticketResp["event_id"])
	})

	t.Run("Step4_Redeem", func(t *testing.T) {
		resp := post(t, serviceURL+"/api/v1/tickets/redeem", map[string]interface{}{"payload": payload})
		require.Equal(t, 200, resp.StatusCode, "first scan should succeed")

		var redeemResp map[string]interface{}
		decodeJSON(t, resp, &redeemResp)
		assert.Equal(t, "ok", redeemResp["status"])
		assert.Equal(t, ticketID, redeemResp["ticket_id"])
		assert.NotEmpty(t, redeemResp["used_at"])
	})

	t.Run("Step5_RedeemAgain", func(t *testing.T) {
		resp := post(t, serviceURL+"/api/v1/tickets/redeem", map[string]interface{}{"payload": payload})
		require.Equal(t, 409, resp.StatusCode, "second scan should be rejected")

		var redeemResp map[string]interface{}
		decodeJSON(t, resp, &redeemResp)
		assert.Equal(t, "already_used", redeemResp["reason"])
		assert.NotEmpty(t, redeemResp["used_at"])
	})

	t.Run("Step6_TamperedPayload", func(t *testing.T) {
		tampered := payload[:len(payload)-1]
		if payload[len(payload)-1] == '0' {
			tampered += "1"
		} else {
			tampered += "0"
		}

		resp := post(t, serviceURL+"/api/v1/tickets/redeem", map[string]interface{}{"payload": tampered})
		require.Equal(t, 403, resp.StatusCode)

		var redeemResp map[string]interface{}
		decodeJSON(t, resp, &redeemResp)
		assert.Equal(t, "invalid_signature", redeemResp["reason"])
	})
}

func waitForService(t *testing.T) {
	t.Helper()
	for i := 0; i < 30; i++ {
		resp, err := http.Get(serviceURL + "/health")
		if err == nil && resp.StatusCode == 200 {
			resp.Body.Close()
			return
		}
		time.Sleep(time.Second)
	}
	t.Fatal("service is not reachable on " + serviceURL)
}

func post(t *testing.T, url string, body map[string]interface{}) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err, fmt.Sprintf("POST %s", url))
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err, fmt.Sprintf("GET %s", url))
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
