package storetest

import (
	"encoding/json"
	"reflect"
	"testing"
)

// assertSameJSON compares documents structurally; JSONB backends do not keep key order.
func assertSameJSON(t *testing.T, want, got []byte) {
	t.Helper()
	var w, g any
	if err := json.Unmarshal(want, &w); err != nil {
		t.Fatalf("decode want: %v", err)
	}
	if err := json.Unmarshal(got, &g); err != nil {
		t.Fatalf("decode got %q: %v", got, err)
	}
	if !reflect.DeepEqual(w, g) {
		t.Fatalf("document mismatch: want %s got %s", want, got)
	}
}
