package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type consentPayload struct {
	Type      string `json:"type" binding:"required,consent_type"`
	Direction string `json:"direction" binding:"omitempty,consent_direction"`
}

func bindJSON(t *testing.T, body string, dst interface{}) map[string]string {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return Bind(c, dst)
}

func TestBindEnumTags(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Setup()

	if fields := bindJSON(t, `{"type":"transport","direction":"to_and_from"}`, &consentPayload{}); fields != nil {
		t.Errorf("valid payload rejected: %v", fields)
	}

	fields := bindJSON(t, `{"type":"detention"}`, &consentPayload{})
	if fields == nil {
		t.Fatal("unknown consent type passed validation")
	}
	msg, ok := fields["type"]
	if !ok {
		t.Fatalf("fields = %v, want error keyed by json name", fields)
	}
	if !strings.Contains(msg, "consent type") {
		t.Errorf("message = %q, want translated enum message", msg)
	}
}

func TestBindMalformedJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Setup()

	fields := bindJSON(t, `{"type":`, &consentPayload{})
	if fields == nil {
		t.Fatal("malformed JSON passed binding")
	}
	if _, ok := fields["detail"]; !ok {
		t.Errorf("fields = %v, want detail entry", fields)
	}
}
