package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/twinhq/twinforge/domain"
	"github.com/twinhq/twinforge/gateway"
)

func postJSON(t *testing.T, h func(echo.Context) error, target, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_id")
	c.SetParamValues(userID)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestGetConversationCreatesEmptySession(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t, gateway.NewScriptedCompleter())

	req := httptest.NewRequest(http.MethodGet, "/v1/conversations/u1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_id")
	c.SetParamValues("u1")

	if err := h.GetConversation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Messages []domain.Message     `json:"messages"`
		Status   domain.SessionStatus `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != domain.SessionStatusInProgress || len(resp.Messages) != 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPostMessageTurn(t *testing.T) {
	h := newTestHandler(t, gateway.NewScriptedCompleter("What's your name?"))

	rec := postJSON(t, h.PostMessage, "/v1/conversations/u1/messages", "u1", `{"message":"hello"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Reply  string               `json:"reply"`
		Status domain.SessionStatus `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Reply != "What's your name?" || resp.Status != domain.SessionStatusInProgress {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPostMessageValidation(t *testing.T) {
	h := newTestHandler(t, gateway.NewScriptedCompleter())

	rec := postJSON(t, h.PostMessage, "/v1/conversations/u1/messages", "u1", `{"message":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPostMessageGatewayUnavailable(t *testing.T) {
	completer := gateway.NewScriptedCompleter().FailWith(domain.ErrCompletionUnavailable)
	h := newTestHandler(t, completer)

	rec := postJSON(t, h.PostMessage, "/v1/conversations/u1/messages", "u1", `{"message":"hello"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp["error"], "resend") {
		t.Fatalf("error must ask the user to retry: %q", resp["error"])
	}
}

func TestProfileLifecycle(t *testing.T) {
	e := echo.New()
	completer := gateway.NewScriptedCompleter(terminalReply, "## Background\nEngineer.", "persona prompt")
	h := newTestHandler(t, completer)

	getProfile := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/v1/conversations/u1/profile", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("user_id")
		c.SetParamValues("u1")
		if err := h.GetProfile(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec
	}

	if rec := getProfile(); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before any turn, got %d", rec.Code)
	}

	if rec := postJSON(t, h.PostMessage, "/v1/conversations/u1/messages", "u1", `{"message":"done"}`); rec.Code != http.StatusOK {
		t.Fatalf("terminal turn failed with %d", rec.Code)
	}

	rec := getProfile()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after completion, got %d", rec.Code)
	}
	var resp struct {
		Profile domain.Profile `json:"profile"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Profile.Markdown != "## Background\nEngineer." {
		t.Fatalf("unexpected profile: %+v", resp.Profile)
	}
}

func TestPutProfileFacts(t *testing.T) {
	completer := gateway.NewScriptedCompleter(terminalReply, "summary", "persona", "edited persona")
	h := newTestHandler(t, completer)

	if rec := postJSON(t, h.PostMessage, "/v1/conversations/u1/messages", "u1", `{"message":"done"}`); rec.Code != http.StatusOK {
		t.Fatalf("terminal turn failed with %d", rec.Code)
	}

	rec := putJSON(t, h.PutProfile, "/v1/conversations/u1/profile", "u1", `{"facts":{"name":"Ada"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Profile domain.Profile `json:"profile"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Profile.Kind != domain.ProfileKindFacts || resp.Profile.Facts["name"] != "Ada" {
		t.Fatalf("unexpected profile: %+v", resp.Profile)
	}
}

func TestPutProfileValidation(t *testing.T) {
	h := newTestHandler(t, gateway.NewScriptedCompleter())

	rec := putJSON(t, h.PutProfile, "/v1/conversations/u1/profile", "u1", `{"facts":{}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func putJSON(t *testing.T, h func(echo.Context) error, target, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_id")
	c.SetParamValues(userID)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}
