package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"investorbooking/internal/delivery/http/helpers"
	"investorbooking/internal/domain"
)

type mockScheduleService struct {
	slot  *domain.Slot
	slots []*domain.Slot
	err   error
}

func (m *mockScheduleService) CreateSlot(ctx context.Context, datetime string) (*domain.Slot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.slot, nil
}

func (m *mockScheduleService) DeleteSlot(ctx context.Context, id string) error {
	return m.err
}

func (m *mockScheduleService) ListSlots(ctx context.Context) ([]*domain.Slot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.slots, nil
}

func TestScheduleController_CreateSlot_Success(t *testing.T) {
	dt := time.Date(2026, 9, 15, 14, 0, 0, 0, time.UTC)
	svc := &mockScheduleService{slot: &domain.Slot{ID: "s1", Datetime: dt}}
	ctrl := NewScheduleController(testControllerLogger(), svc)

	body := `{"datetime": "2026-09-15T14:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/slots", strings.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.CreateSlot(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	var resp struct {
		Data *domain.Slot `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data == nil || resp.Data.ID != "s1" {
		t.Fatalf("expected slot s1, got %+v", resp.Data)
	}
}

func TestScheduleController_CreateSlot_MissingDatetime(t *testing.T) {
	svc := &mockScheduleService{}
	ctrl := NewScheduleController(testControllerLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/admin/slots", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	ctrl.CreateSlot(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestScheduleController_CreateSlot_InvalidDatetime(t *testing.T) {
	svc := &mockScheduleService{err: domain.ErrInvalidInput}
	ctrl := NewScheduleController(testControllerLogger(), svc)

	body := `{"datetime": "next tuesday"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/slots", strings.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.CreateSlot(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != helpers.ErrCodeBadRequest {
		t.Fatalf("expected error code %q, got %+v", helpers.ErrCodeBadRequest, resp.Error)
	}
}

func TestScheduleController_DeleteSlot(t *testing.T) {
	svc := &mockScheduleService{}
	ctrl := NewScheduleController(testControllerLogger(), svc)

	req := httptest.NewRequest(http.MethodDelete, "/admin/slots/s1", nil)
	req.SetPathValue("slotID", "s1")
	w := httptest.NewRecorder()
	ctrl.DeleteSlot(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}
}

func TestScheduleController_ListSlots(t *testing.T) {
	svc := &mockScheduleService{slots: []*domain.Slot{{ID: "s1"}, {ID: "s2", IsBooked: true}}}
	ctrl := NewScheduleController(testControllerLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/admin/slots", nil)
	w := httptest.NewRecorder()
	ctrl.ListSlots(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp struct {
		Data []*domain.Slot `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(resp.Data))
	}
}
