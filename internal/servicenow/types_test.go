package servicenow

import (
	"encoding/json"
	"testing"
)

func TestReferenceUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"object", `{"value":"abc","link":"https://x/abc"}`, "abc"},
		{"empty string", `""`, ""},
		{"null", `null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Reference
			if err := json.Unmarshal([]byte(tt.in), &r); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if r.Value != tt.want {
				t.Errorf("Value = %q, want %q", r.Value, tt.want)
			}
		})
	}
}

func TestRequestItemClosed(t *testing.T) {
	if (&RequestItem{Active: "true"}).Closed() {
		t.Error("active item must not report closed")
	}
	if !(&RequestItem{Active: "false"}).Closed() {
		t.Error("inactive item must report closed")
	}
	if (&RequestItem{Active: ""}).Closed() {
		t.Error("unknown active state must not report closed")
	}
}
