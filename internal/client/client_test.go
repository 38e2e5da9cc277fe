package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/clubroster/internal/api/response"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin@club.com", body["email"])
		assert.Equal(t, "password123", body["password"])
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "sess_abc"})
	}))
	defer srv.Close()

	token, err := New(srv.URL, "").Login(context.Background(), "admin@club.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "sess_abc", token)
}

func TestLoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password", "code": "INVALID_CREDENTIALS"})
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Login(context.Background(), "admin@club.com", "bad")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))

	msg, ok := ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Invalid email or password", msg)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "INVALID_CREDENTIALS", httpErr.Code)
}

func TestSearchPlayersSendsTokenAndEscapesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sess_abc", r.Header.Get("Authorization"))
		assert.Equal(t, "o'b & co", r.URL.Query().Get("search"))
		_ = json.NewEncoder(w).Encode([]response.Player{{ID: 6, Name: "Sarah O'Brien", DUPRRating: 4.25}})
	}))
	defer srv.Close()

	players, err := New(srv.URL, "sess_abc").SearchPlayers(context.Background(), "o'b & co")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Sarah O'Brien", players[0].Name)
}

func TestSearchPlayersEmptyIsNonNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	players, err := New(srv.URL, "t").SearchPlayers(context.Background(), "xyz")
	require.NoError(t, err)
	assert.NotNil(t, players)
	assert.Empty(t, players)
}

func TestPlainTextErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Health(context.Background())
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadGateway))
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestRevokeHandlesNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/logout", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, New(srv.URL+"/", "").Revoke(context.Background(), "sess_abc"))
}

func TestMe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(response.Me{Email: "admin@club.com", DisplayName: "Club Admin"})
	}))
	defer srv.Close()

	me, err := New(srv.URL, "sess_abc").Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Club Admin", me.DisplayName)
}

func TestUnreachableServerIsNotHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, "").Login(context.Background(), "a@b.c", "x")
	require.Error(t, err)
	var httpErr *HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "", WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))
	_, err := c.SearchPlayers(context.Background(), "jo")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "client.SearchPlayers"))
}

func TestRevokeUsesGivenToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sess_old", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, "sess_current")
	require.NoError(t, c.Revoke(context.Background(), "sess_old"))
	assert.Equal(t, "sess_current", c.Token())
}
