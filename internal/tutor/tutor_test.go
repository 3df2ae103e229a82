package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewHTTPClientRequiresKey(t *testing.T) {
	if _, err := NewHTTPClient("  "); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("NewHTTPClient(blank) error = %v, expected ErrNoAPIKey", err)
	}
}

func TestSendMessageKeepsHistory(t *testing.T) {
	var got []generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "k" {
			t.Errorf("api key header = %q", r.Header.Get("x-goog-api-key"))
		}
		if !strings.HasSuffix(r.URL.Path, "/models/test-model:generateContent") {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		got = append(got, req)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Steer "},{"text":"into it."}]}}]}`))
	}))
	defer srv.Close()

	c, err := NewHTTPClient("k", WithBaseURL(srv.URL+"/"), WithModel("test-model"))
	if err != nil {
		t.Fatal(err)
	}

	reply, err := c.SendMessage(context.Background(), "why?")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if reply != "Steer into it." {
		t.Errorf("SendMessage() = %q, expected %q", reply, "Steer into it.")
	}
	if _, err := c.SendMessage(context.Background(), "and then?"); err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 {
		t.Fatalf("requests = %d, expected 2", len(got))
	}
	if len(got[1].Contents) != 3 {
		t.Errorf("second request contents = %d, expected 3", len(got[1].Contents))
	}
	if got[1].Contents[1].Role != "model" {
		t.Errorf("history role = %q, expected model", got[1].Contents[1].Role)
	}
	if got[0].SystemInstruction.Parts[0].Text != SystemInstruction {
		t.Error("system instruction not sent")
	}
}

func TestSendMessageErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"server error", http.StatusInternalServerError, `oops`, ErrNetwork},
		{"forbidden", http.StatusForbidden, `{"error":"bad key"}`, ErrNetwork},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, ErrEmptyReply},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, _ := NewHTTPClient("k", WithBaseURL(srv.URL))
			_, err := c.SendMessage(context.Background(), "q")
			if !errors.Is(err, tt.want) {
				t.Errorf("SendMessage() error = %v, expected %v", err, tt.want)
			}
			if len(c.history) != 0 {
				t.Errorf("history = %d entries after failure, expected 0", len(c.history))
			}
		})
	}
}

func TestSendMessageUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, _ := NewHTTPClient("k", WithBaseURL(url))
	if _, err := c.SendMessage(context.Background(), "q"); !errors.Is(err, ErrNetwork) {
		t.Errorf("SendMessage() error = %v, expected ErrNetwork", err)
	}
}

type fakeClient struct {
	reply string
	err   error
}

func (f fakeClient) SendMessage(context.Context, string) (string, error) {
	return f.reply, f.err
}

func TestSession(t *testing.T) {
	s := NewSession(fakeClient{reply: "Because of V squared."})
	if !s.Ready() {
		t.Fatal("Ready() = false, expected true")
	}
	msg := s.Send(context.Background(), "why faster?")
	if msg.IsError || msg.Text != "Because of V squared." {
		t.Errorf("Send() = %+v", msg)
	}

	msgs := s.Messages()
	if len(msgs) != 3 {
		t.Fatalf("Messages() = %d, expected 3", len(msgs))
	}
	if msgs[0].Text != Greeting || msgs[1].Role != RoleUser || msgs[2].Role != RoleModel {
		t.Errorf("Messages() = %+v", msgs)
	}
}

func TestSessionErrorsInline(t *testing.T) {
	s := NewSession(fakeClient{err: ErrNetwork})
	msg := s.Send(context.Background(), "hello")
	if !msg.IsError || msg.Text != NetworkErrorText {
		t.Errorf("Send() = %+v, expected network error message", msg)
	}

	s = NewSession(nil)
	if s.Ready() {
		t.Error("Ready() = true for nil client")
	}
	if first := s.Messages()[0]; !first.IsError {
		t.Errorf("first message = %+v, expected error", first)
	}
	if msg := s.Send(context.Background(), "hello"); msg.Text != NoKeyText {
		t.Errorf("Send() = %+v, expected NoKeyText", msg)
	}
}
