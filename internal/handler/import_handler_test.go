package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/repository"
	"github.com/lumela/schoolsync-backend/internal/service"
	"github.com/lumela/schoolsync-backend/internal/validator"
	"github.com/rs/zerolog"
)

// emptySchoolOps has no grades, classes, learners, or parents, so any row
// naming a grade aborts the batch.
type emptySchoolOps struct{}

func (emptySchoolOps) GradeIDsByName(context.Context) (map[string]int, error) {
	return map[string]int{}, nil
}

func (emptySchoolOps) ClassIDsByName(context.Context) (map[string]int, error) {
	return map[string]int{}, nil
}

func (emptySchoolOps) LearnerIDByIDNumber(context.Context, string) (int, error) {
	return 0, repository.ErrRowNotFound
}

func (emptySchoolOps) CreateLearner(_ context.Context, l *model.Learner) error {
	l.ID = 1
	return nil
}

func (emptySchoolOps) ParentByIDNumber(context.Context, string) (repository.ParentRef, error) {
	return repository.ParentRef{}, repository.ErrRowNotFound
}

func (emptySchoolOps) CreateParent(_ context.Context, p *model.Parent) error {
	p.ID = 1
	return nil
}

func (emptySchoolOps) LinkLearnerParent(context.Context, int, int, bool) error { return nil }

func (emptySchoolOps) UpdateLearnerPlacement(context.Context, int, *int, *int) error { return nil }

type emptySchoolStore struct{}

func (emptySchoolStore) RunInTx(_ context.Context, fn func(repository.ImportOps) error) error {
	return fn(emptySchoolOps{})
}

func TestImportLearnersAbortRespondsWithErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validator.Setup()

	h := NewImportHandler(service.NewLearnerImportService(emptySchoolStore{}, zerolog.Nop()))
	r := gin.New()
	r.POST("/imports/learners", h.ImportLearners)

	body, _ := json.Marshal(gin.H{
		"rows": []model.LearnerImportRow{
			{FirstName: "Thabo", LastName: "Nkosi", IDNumber: "L001", GradeName: "Grade 13"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/imports/learners", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data  interface{} `json:"data"`
		Error *struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data != nil {
		t.Errorf("aborted import carried data: %v", resp.Data)
	}
	if resp.Error == nil {
		t.Fatal("aborted import carried no error object")
	}
	if resp.Error.Code != "IMPORT_FAILED" {
		t.Errorf("error code = %q, want IMPORT_FAILED", resp.Error.Code)
	}
	if len(resp.Error.Fields) != 1 {
		t.Fatalf("fields = %v, want the single row error", resp.Error.Fields)
	}
	for _, msg := range resp.Error.Fields {
		if !strings.Contains(msg, "unknown grade") {
			t.Errorf("row error = %q, want unknown-grade message", msg)
		}
	}
}
