// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/palash-droid/folio/internal/assistant"
	"github.com/palash-droid/folio/internal/commands"
	"github.com/palash-droid/folio/internal/content"
	"github.com/palash-droid/folio/internal/output"
	"github.com/palash-droid/folio/internal/session"
	"github.com/palash-droid/folio/internal/storage"
	"github.com/palash-droid/folio/internal/vfs"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("github.com/patrickmn/go-cache.(*janitor).Run"))
}

// =============================================================================
// HELPERS
// =============================================================================

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	prof, err := content.Default()
	require.NoError(t, err)

	interp := commands.New(commands.Deps{
		Profile:   prof,
		Assistant: assistant.NewProcessor(assistant.BuildKnowledgeBase(prof)),
		Blogs:     content.NewBlogLoader(prof.BlogPosts, content.WithSource(content.EmbeddedBlogFS())),
	})
	sessions := session.NewManager(session.Config{IdleTimeout: time.Minute},
		func(string) storage.KV { return storage.NewMemoryKV() }, nil)

	if cfg.RateLimit == 0 {
		cfg.RateLimit, cfg.RateBurst = 1000, 1000
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = time.Minute
	}
	return New(cfg, interp, sessions, nil)
}

func do(t *testing.T, h http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	return nil
}

// =============================================================================
// HEALTH AND COMMANDS
// =============================================================================

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, Config{})
	rec := do(t, srv.Handler(), http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, commands.Version, got.Version)
	assert.Zero(t, got.Sessions)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, got.Uptime)
}

func TestHandleHealth_CountsSessionsAndClients(t *testing.T) {
	srv := newTestServer(t, Config{})
	h := srv.Handler()

	do(t, h, http.MethodPost, "/api/exec", ExecRequest{Line: "ls"})
	do(t, h, http.MethodPost, "/api/exec", ExecRequest{Line: "contact-me-gui"})

	got := decode[HealthResponse](t, do(t, h, http.MethodGet, "/healthz", nil))
	assert.Equal(t, 2, got.Sessions)
	assert.Equal(t, map[string]int{"terminal": 1, "simple": 1}, got.Modes)
	assert.Equal(t, 1, got.Clients)
}

func TestHandleCommands(t *testing.T) {
	srv := newTestServer(t, Config{})
	rec := do(t, srv.Handler(), http.MethodGet, "/api/commands", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]CommandInfo](t, rec)
	names := make(map[string]bool)
	for _, c := range got {
		names[c.Name] = true
	}
	assert.True(t, names["help"])
	assert.True(t, names["ask"])
	assert.Len(t, got, len(srv.interp.Registry().Visible()))
}

// =============================================================================
// CHAT
// =============================================================================

func TestHandleChat(t *testing.T) {
	srv := newTestServer(t, Config{ChatDelay: time.Millisecond})
	rec := do(t, srv.Handler(), http.MethodPost, "/api/chat", ChatRequest{Message: "What are your skills?"})

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[ChatResponse](t, rec)
	assert.True(t, strings.HasPrefix(got.Text, "I work with"), got.Text)
	assert.Equal(t, "cd skills", got.RelatedCommand)
}

func TestHandleChat_BadRequests(t *testing.T) {
	srv := newTestServer(t, Config{})

	tests := []struct {
		name string
		body any
		want int
	}{
		{"blank message", ChatRequest{Message: "   "}, http.StatusBadRequest},
		{"invalid json", "{", http.StatusBadRequest},
		{"unknown field", `{"msg":"hi"}`, http.StatusBadRequest},
		{"too long", ChatRequest{Message: strings.Repeat("a", MaxLineLength+1)}, http.StatusBadRequest},
		{"too large", `{"message":"` + strings.Repeat("a", MaxRequestBodySize) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		rec := do(t, srv.Handler(), http.MethodPost, "/api/chat", tt.body)
		if rec.Code != tt.want {
			t.Errorf("POST /api/chat (%s) = %d, want %d", tt.name, rec.Code, tt.want)
		}
	}
}

// =============================================================================
// EXEC
// =============================================================================

func TestHandleExec_SessionCookie(t *testing.T) {
	srv := newTestServer(t, Config{})
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/api/exec", ExecRequest{Line: "cd projects"})
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode[ExecResponse](t, rec)
	assert.Equal(t, vfs.Projects, first.Path)
	assert.Equal(t, "~/ ❯ cd projects", first.Outcome.Records[0].Text)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, first.Session, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	rec = do(t, h, http.MethodPost, "/api/exec", ExecRequest{Line: "cd .."}, cookie)
	second := decode[ExecResponse](t, rec)
	assert.Equal(t, first.Session, second.Session)
	assert.Equal(t, vfs.Root, second.Path)
	assert.Equal(t, 1, srv.sessions.Count())
}

func TestHandleExec_AskThenChoice(t *testing.T) {
	srv := newTestServer(t, Config{})
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/api/exec", ExecRequest{Line: "ask projects"})
	first := decode[ExecResponse](t, rec)

	rec = do(t, h, http.MethodPost, "/api/exec", ExecRequest{Session: first.Session, Line: "2"})
	got := decode[ExecResponse](t, rec)
	assert.True(t, got.Outcome.Overridden)
	assert.Nil(t, got.Outcome.Action)
	assert.Equal(t, "terminal", got.Mode)
	require.Greater(t, len(got.Outcome.Records), 1)
}

func TestHandleExec_TransitionCompletes(t *testing.T) {
	srv := newTestServer(t, Config{})
	rec := do(t, srv.Handler(), http.MethodPost, "/api/exec", ExecRequest{Line: "contact-me-gui"})

	got := decode[ExecResponse](t, rec)
	require.NotNil(t, got.Outcome.Action)
	assert.Equal(t, output.ActionTransition, got.Outcome.Action.Kind)
	assert.Equal(t, "simple", got.Mode)
	assert.Equal(t, output.TargetContact, got.Section)
}

func TestHandleExec_ForeignSessionIDReplaced(t *testing.T) {
	srv := newTestServer(t, Config{})
	rec := do(t, srv.Handler(), http.MethodPost, "/api/exec", ExecRequest{Session: "../../etc", Line: "whoami"})

	got := decode[ExecResponse](t, rec)
	assert.NotEqual(t, "../../etc", got.Session)
	assert.Len(t, got.Session, 36)
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, Config{RateLimit: 0.001, RateBurst: 2})
	h := srv.Handler()

	for i := 0; i < 2; i++ {
		rec := do(t, h, http.MethodGet, "/api/commands", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := do(t, h, http.MethodGet, "/api/commands", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "health is not rate limited")
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		allowed     []string
		origin      string
		wantOrigin  string
		wantCredits bool
	}{
		{"explicit", []string{"http://localhost:5173"}, "http://localhost:5173", "http://localhost:5173", true},
		{"wildcard subdomain", []string{"*.example.com"}, "https://app.example.com", "https://app.example.com", true},
		{"any", []string{"*"}, "https://elsewhere.dev", "*", false},
		{"rejected", []string{"http://localhost:5173"}, "https://evil.dev", "", false},
	}
	for _, tt := range tests {
		srv := newTestServer(t, Config{AllowedOrigins: tt.allowed})
		req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code, tt.name)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
			t.Errorf("%s: Allow-Origin = %q, want %q", tt.name, got, tt.wantOrigin)
		}
		if got := rec.Header().Get("Access-Control-Allow-Credentials") == "true"; got != tt.wantCredits {
			t.Errorf("%s: Allow-Credentials = %v, want %v", tt.name, got, tt.wantCredits)
		}
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		remote string
		xff    string
		xri    string
		want   string
	}{
		{"203.0.113.5:1234", "", "", "203.0.113.5"},
		{"203.0.113.5:1234", "198.51.100.1", "", "203.0.113.5"},
		{"127.0.0.1:1234", "198.51.100.1, 10.0.0.1", "", "198.51.100.1"},
		{"10.1.2.3:80", "not-an-ip", "198.51.100.9", "198.51.100.9"},
		{"192.168.1.1:80", "", "", "192.168.1.1"},
		{"[::1]:80", "2001:db8::1", "", "2001:db8::1"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remote
		if tt.xff != "" {
			req.Header.Set("X-Forwarded-For", tt.xff)
		}
		if tt.xri != "" {
			req.Header.Set("X-Real-IP", tt.xri)
		}
		if got := GetClientIP(req); got != tt.want {
			t.Errorf("GetClientIP(%q, xff=%q, xri=%q) = %q, want %q", tt.remote, tt.xff, tt.xri, got, tt.want)
		}
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestOriginPatterns(t *testing.T) {
	got := originPatterns([]string{"http://localhost:5173", "*.example.com", "*", "::bad"})
	assert.Equal(t, []string{"localhost:5173", "*.example.com", "*"}, got)
}

// =============================================================================
// WEBSOCKET
// =============================================================================

type wsClient struct {
	t    *testing.T
	ctx  context.Context
	conn *websocket.Conn
}

func dialTerminal(t *testing.T, srv *Server) *wsClient {
	t.Helper()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws/terminal", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return &wsClient{t: t, ctx: ctx, conn: conn}
}

func (c *wsClient) send(msg Message) {
	c.t.Helper()
	data, err := json.Marshal(msg)
	require.NoError(c.t, err)
	require.NoError(c.t, c.conn.Write(c.ctx, websocket.MessageText, data))
}

func (c *wsClient) recv() Message {
	c.t.Helper()
	_, data, err := c.conn.Read(c.ctx)
	require.NoError(c.t, err)
	var msg Message
	require.NoError(c.t, json.Unmarshal(data, &msg))
	return msg
}

func TestTerminal_Session(t *testing.T) {
	srv := newTestServer(t, Config{})
	c := dialTerminal(t, srv)

	hello := c.recv()
	require.Equal(t, MsgOutput, hello.Type)
	require.Len(t, hello.Records, 2)
	assert.Contains(t, hello.Records[0].Text, "Portfolio Terminal")
	assert.Equal(t, vfs.Root, hello.Path)

	c.send(Message{Type: MsgInput, Content: "whoami"})
	out := c.recv()
	require.Equal(t, MsgOutput, out.Type)
	require.Len(t, out.Records, 2)
	assert.Equal(t, "guest", out.Records[1].Text)

	c.send(Message{Type: MsgTab, Content: "he"})
	assert.Equal(t, Message{Type: MsgInput, Content: "help"}, c.recv())

	c.send(Message{Type: MsgUp})
	assert.Equal(t, Message{Type: MsgInput, Content: "whoami"}, c.recv())

	c.send(Message{Type: "bogus"})
	assert.Equal(t, MsgError, c.recv().Type)
}

func TestTerminal_TransitionRoundTrip(t *testing.T) {
	srv := newTestServer(t, Config{})
	c := dialTerminal(t, srv)
	c.recv()

	c.send(Message{Type: MsgInput, Content: "contact-me-gui"})
	out := c.recv()
	assert.Equal(t, MsgOutput, out.Type)
	act := c.recv()
	require.Equal(t, MsgAction, act.Type)
	assert.Equal(t, output.TargetContact, act.Action.Target)

	c.send(Message{Type: MsgRainDone})
	mode := c.recv()
	assert.Equal(t, "simple", mode.Mode)
	assert.Equal(t, output.TargetContact, mode.Section)

	c.send(Message{Type: MsgTerminal, Content: "projects"})
	mode = c.recv()
	assert.Equal(t, "terminal", mode.Mode)
	out = c.recv()
	require.Equal(t, MsgOutput, out.Type)
	assert.Equal(t, "~/ ❯ projects", out.Records[0].Text)
}

func TestTerminal_ClearAndReset(t *testing.T) {
	srv := newTestServer(t, Config{})
	c := dialTerminal(t, srv)
	c.recv()

	c.send(Message{Type: MsgInput, Content: "clear"})
	assert.Equal(t, MsgClear, c.recv().Type)

	c.send(Message{Type: MsgInput, Content: "cd projects"})
	c.recv()
	c.send(Message{Type: MsgReset})
	assert.Equal(t, MsgClear, c.recv().Type)
	welcome := c.recv()
	assert.Equal(t, vfs.Root, welcome.Path)
	assert.Equal(t, "terminal", c.recv().Mode)
}

// =============================================================================
// LIFECYCLE
// =============================================================================

func TestServe_ShutsDownOnCancel(t *testing.T) {
	srv := newTestServer(t, Config{ShutdownTimeout: time.Second})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	http.DefaultClient.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
