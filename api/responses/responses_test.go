package responses

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/types"
)

func TestWriteSuccessWrapsPayload(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"hello": "world"})

	if rec.Code != 200 {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if envelope.Data["hello"] != "world" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestWriteErrorUsesMetadataStatus(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))

	if rec.Code != 404 {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if envelope.Error.Code != "NOT_FOUND" || envelope.Error.Message != "order not found" {
		t.Fatalf("unexpected error payload: %+v", envelope.Error)
	}
}

func TestWriteErrorMasksInternalMessage(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeInternal, "secret detail"))

	if rec.Code != 500 {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if envelope.Error.Message == "secret detail" {
		t.Fatal("expected internal message to be masked")
	}
}

func TestWriteErrorUntypedBecomesInternal(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, context.DeadlineExceeded)

	if rec.Code != 500 {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}
