package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"investorbooking/internal/delivery/http/helpers"
	"investorbooking/internal/domain"
)

type mockAuthService struct {
	token string
	err   error
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}

func TestAuthController_Login_Success(t *testing.T) {
	svc := &mockAuthService{token: "jwt-token"}
	ctrl := NewAuthController(testControllerLogger(), svc)

	body := `{"email": "admin@example.com", "password": "s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp struct {
		Data *LoginResult `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data == nil || resp.Data.Token != "jwt-token" {
		t.Fatalf("expected the issued token, got %+v", resp.Data)
	}
}

func TestAuthController_Login_InvalidCredentials(t *testing.T) {
	svc := &mockAuthService{err: domain.ErrInvalidCredentials}
	ctrl := NewAuthController(testControllerLogger(), svc)

	body := `{"email": "admin@example.com", "password": "guess"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != helpers.ErrCodeUnauthorized {
		t.Fatalf("expected error code %q, got %+v", helpers.ErrCodeUnauthorized, resp.Error)
	}
}

func TestAuthController_Login_MissingFields(t *testing.T) {
	svc := &mockAuthService{token: "jwt-token"}
	ctrl := NewAuthController(testControllerLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	ctrl.Login(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}
