package codec

import (
	"reflect"
	"testing"

	"hushbudget/internal/core"
)

func TestPersistedRoundTrip(t *testing.T) {
	records := []core.Transaction{
		{ID: 1700000000000, Description: "Salary", Amount: 2500, Category: "Other", Date: core.NewDate(2024, 1, 1)},
		{ID: 1700000000001, Description: "Groceries", Amount: -52.75, Category: "Food", Date: core.NewDate(2024, 1, 5)},
		{ID: 1700000000002, Description: "Refund", Amount: 0, Category: "", Date: core.NewDate(2024, 2, 10)},
	}

	raw, err := EncodePersisted(records)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back := DecodePersisted(raw, nil)
	if !reflect.DeepEqual(records, back) {
		t.Fatalf("round trip mismatch:\n%v\n%v", records, back)
	}
}

func TestPersistedRoundTripEmpty(t *testing.T) {
	raw, err := EncodePersisted(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if raw != "[]" {
		t.Fatalf("expected empty array encoding, got %q", raw)
	}
	if back := DecodePersisted(raw, nil); len(back) != 0 {
		t.Fatalf("expected empty collection, got %v", back)
	}
}

func TestDecodePersistedFailSoft(t *testing.T) {
	cases := []string{"", "not json", `{"oops":`, `[{"id": "text"}]`, `[{"date": "nonsense"}]`}
	for i, raw := range cases {
		if got := DecodePersisted(raw, nil); len(got) != 0 {
			t.Fatalf("case %d: expected empty collection, got %v", i, got)
		}
	}
}

func TestDecodePersistedCorruptionHook(t *testing.T) {
	var hookErr error
	DecodePersisted("{{{", func(err error) { hookErr = err })
	if hookErr == nil {
		t.Fatal("hook should observe the absorbed parse error")
	}

	hookErr = nil
	DecodePersisted("", func(err error) { hookErr = err })
	if hookErr != nil {
		t.Fatalf("missing data is not corruption: %v", hookErr)
	}
}
