package json_types

import (
	"encoding/json"
	"testing"
)

func TestDateOrEmptyUnmarshal(t *testing.T) {
	var payload struct {
		A DateOrEmpty `json:"a"`
		B DateOrEmpty `json:"b"`
		C DateOrEmpty `json:"c"`
		D DateOrEmpty `json:"d"`
	}
	body := `{"a":"2026-10-18","b":null,"c":"","d":"2026-10-18T09:00:00Z"}`
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if payload.A.String() != "2026-10-18" {
		t.Fatalf("unexpected a: %q", payload.A.String())
	}
	if !payload.B.IsZero() || !payload.C.IsZero() {
		t.Fatal("null and empty dates must be zero")
	}
	if payload.D.String() != "2026-10-18" {
		t.Fatalf("unexpected d: %q", payload.D.String())
	}
}

func TestDateOrEmptyMarshal(t *testing.T) {
	out, err := json.Marshal(struct {
		A DateOrEmpty `json:"a"`
	}{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"a":null}` {
		t.Fatalf("unexpected json: %s", out)
	}
}

func TestDateRejectsGarbage(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"18.10.2026"`), &d); err == nil {
		t.Fatal("expected error")
	}
	if err := json.Unmarshal([]byte(`42`), &d); err == nil {
		t.Fatal("expected error for non-string")
	}
}
