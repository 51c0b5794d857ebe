package qrcode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_Success(t *testing.T) {
	var gotData string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotData = r.URL.Query().Get("data")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	url, err := c.Render(context.Background(), "ticket-1|abcdef")

	assert.NoError(t, err)
	assert.Contains(t, url, srv.URL)
	assert.Contains(t, url, "size=300x300")
	assert.Equal(t, "ticket-1|abcdef", gotData)
}

func TestRender_APIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Render(context.Background(), "payload")

	assert.ErrorIs(t, err, ErrRenderUnavailable)
}

func TestRender_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL)
	_, err := c.Render(context.Background(), "payload")

	assert.ErrorIs(t, err, ErrRenderUnavailable)
}
