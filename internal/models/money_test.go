package models

import (
	"encoding/json"
	"testing"
)

func TestMoney_JSON(t *testing.T) {
	var p struct {
		Price Money `json:"price"`
	}

	for _, in := range []string{`{"price": 5}`, `{"price": "5.00"}`, `{"price": 4.999}`} {
		if err := json.Unmarshal([]byte(in), &p); err != nil {
			t.Fatalf("%s: unexpected error: %v", in, err)
		}
		out, _ := json.Marshal(p)
		if string(out) != `{"price":"5.00"}` {
			t.Errorf("%s: expected two-place string, got %s", in, out)
		}
	}

	if err := json.Unmarshal([]byte(`{"price": "five"}`), &p); err == nil {
		t.Error("expected error for non-numeric amount")
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	a, b := MustMoney("10.10"), MustMoney("0.20")
	if got := a.Add(b).String(); got != "10.30" {
		t.Errorf("expected 10.30, got %s", got)
	}
	if got := b.Sub(a).String(); got != "-9.90" {
		t.Errorf("expected -9.90, got %s", got)
	}
	if !b.Less(a) || a.Less(b) {
		t.Error("unexpected ordering")
	}
	if ok, _ := a.Matches("10.1"); !ok {
		t.Error("expected 10.1 to match 10.10")
	}
}
