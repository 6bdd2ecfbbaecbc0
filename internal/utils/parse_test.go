package utils

import (
	"strings"
	"testing"
)

type person struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// TestParseJSONAs_ValidJSON verifies plain unmarshaling of well-formed JSON.
func TestParseJSONAs_ValidJSON(t *testing.T) {
	got, err := ParseJSONAs[person](`{"name":"Ada","age":36}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Ada" || got.Age != 36 {
		t.Errorf("unexpected result: %+v", got)
	}
}

// TestParseJSONAs_RepairsBrokenJSON verifies that LLM-style JSON (single
// quotes, unquoted keys) is repaired before unmarshaling.
func TestParseJSONAs_RepairsBrokenJSON(t *testing.T) {
	got, err := ParseJSONAs[person](`{name: 'Ada', age: 36}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Ada" || got.Age != 36 {
		t.Errorf("unexpected result: %+v", got)
	}
}

// TestParseJSONAs_UnrepairableFails verifies that content the repairer
// cannot rescue produces a descriptive error.
func TestParseJSONAs_UnrepairableFails(t *testing.T) {
	_, err := ParseJSONAs[person](`{"name": "Ada", "age": "not a number"}`)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "person") {
		t.Errorf("error should name the target type, got: %v", err)
	}
}

// TestTruncateString verifies the bounded-message helper.
func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("short strings must pass through, got %q", got)
	}

	got := TruncateString(strings.Repeat("x", 100), 10)
	if !strings.HasPrefix(got, "xxxxxxxxxx...") {
		t.Errorf("expected truncated prefix, got %q", got)
	}
	if !strings.Contains(got, "100") {
		t.Errorf("expected original length in annotation, got %q", got)
	}
}
