package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/meetingmind/meetingmind/internal/model"
)

func TestLoginSuccess(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type: got %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"token": "tok-1",
				"user":  map[string]string{"username": "ada", "email": "ada@example.com"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", time.Second)
	sess, err := c.Login(context.Background(), "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Token != "tok-1" {
		t.Fatalf("token: got %q", sess.Token)
	}
	if sess.User == nil || sess.User.Username != "ada" {
		t.Fatalf("user: got %+v", sess.User)
	}
	if gotBody["email"] != "ada@example.com" || gotBody["password"] != "hunter22" {
		t.Fatalf("request body: got %v", gotBody)
	}
}

func TestLoginRejectedPassesMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Invalid email or password",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Login(context.Background(), "x@y.z", "nope")
	var rej *model.RemoteRejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected RemoteRejection, got %T: %v", err, err)
	}
	if rej.Message != "Invalid email or password" {
		t.Fatalf("message: got %q", rej.Message)
	}
}

func TestLoginNonJSONIsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream error</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Login(context.Background(), "x@y.z", "pw")
	var tf *model.TransportFailure
	if !errors.As(err, &tf) {
		t.Fatalf("expected TransportFailure, got %T: %v", err, err)
	}
}

func TestLoginUnreachableIsTransportFailure(t *testing.T) {
	c := New("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := c.Login(context.Background(), "x@y.z", "pw")
	var tf *model.TransportFailure
	if !errors.As(err, &tf) {
		t.Fatalf("expected TransportFailure, got %T: %v", err, err)
	}
}

func TestRegisterSuccess(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	if err := c.Register(context.Background(), "ada", "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if gotBody["username"] != "ada" {
		t.Fatalf("request body: got %v", gotBody)
	}
}

func TestRegisterRejectedWithoutMessageUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	err := c.Register(context.Background(), "ada", "ada@example.com", "hunter22")
	var rej *model.RemoteRejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected RemoteRejection, got %T: %v", err, err)
	}
	if rej.Message != fallbackRejection {
		t.Fatalf("message: got %q", rej.Message)
	}
}
