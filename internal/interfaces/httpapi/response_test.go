package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/agsmith/run-my-pool/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}

	items, ok := errorObj["errors"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected single error item, got %v", errorObj["errors"])
	}
	item, _ := items[0].(map[string]any)
	if got, _ := item["domain"].(string); got != "run-my-pool" {
		t.Fatalf("expected error domain run-my-pool, got %v", item["domain"])
	}
	if got, _ := item["reason"].(string); got != "invalidInput" {
		t.Fatalf("expected reason invalidInput, got %v", item["reason"])
	}
}

func TestMapError_StatusTable(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		httpStatus int
		reason     string
		status     string
	}{
		{"invalid week", usecase.ErrInvalidWeek, http.StatusBadRequest, "invalidWeek", "INVALID_ARGUMENT"},
		{"unknown team", usecase.ErrUnknownTeam, http.StatusBadRequest, "unknownTeam", "INVALID_ARGUMENT"},
		{"invalid input", usecase.ErrInvalidInput, http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"},
		{"week locked", usecase.ErrWeekLocked, http.StatusConflict, "weekLocked", "FAILED_PRECONDITION"},
		{"team reused", &usecase.TeamUsedError{Team: "KC", ConflictWeek: 3}, http.StatusConflict, "teamAlreadyUsed", "FAILED_PRECONDITION"},
		{"not found", usecase.ErrNotFound, http.StatusNotFound, "notFound", "NOT_FOUND"},
		{"unauthorized", usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"},
		{"forbidden", usecase.ErrForbidden, http.StatusForbidden, "forbidden", "PERMISSION_DENIED"},
		{"dependency down", usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internalError", "INTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := mapError(context.Background(), tc.err)
			if mapped.HTTPStatus != tc.httpStatus || mapped.Reason != tc.reason || mapped.Status != tc.status {
				t.Fatalf("unexpected mapping %+v", mapped)
			}
		})
	}
}

func TestMapError_WrappedWeekErrorsKeepSpecificReason(t *testing.T) {
	err := fmt.Errorf("%w: week 42 not in 1..18", usecase.ErrInvalidWeek)

	mapped := mapError(context.Background(), err)
	if mapped.Reason != "invalidWeek" {
		t.Fatalf("expected invalidWeek reason for wrapped error, got %+v", mapped)
	}
}
