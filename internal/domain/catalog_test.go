package domain

import "testing"

func TestDefaultSpecialtyCatalog(t *testing.T) {
	cat := DefaultSpecialtyCatalog()

	if cat.Len() != 94 {
		t.Errorf("expected 94 specialties, got %d", cat.Len())
	}
	for _, s := range []string{"Cardiology", "Family practice", "Interventional radiology"} {
		if !cat.Contains(s) {
			t.Errorf("expected catalog to contain %q", s)
		}
	}
	// Membership is case-exact.
	if cat.Contains("cardiology") {
		t.Error("membership must be case-exact")
	}
	if cat.Contains("Podiatrist") {
		t.Error("unexpected member")
	}

	names := cat.Names()
	if len(names) != cat.Len() {
		t.Fatalf("Names length %d != Len %d", len(names), cat.Len())
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Names not sorted at %d: %q >= %q", i, names[i-1], names[i])
		}
	}
}

func TestDefaultProcedureCatalog(t *testing.T) {
	cat := DefaultProcedureCatalog()

	if cat.Len() != 51 {
		t.Errorf("expected 51 prefixes, got %d", cat.Len())
	}

	desc, ok := cat.Description("76")
	if !ok {
		t.Fatal("expected prefix 76 to exist")
	}
	if desc != "Diagnostic Ultrasound (76506-76999)" {
		t.Errorf("unexpected description for 76: %q", desc)
	}

	if cat.Contains("99") {
		t.Error("99 is not a catalog key")
	}

	for _, k := range cat.Keys() {
		if len(k) < 1 || len(k) > 2 {
			t.Errorf("prefix key %q must be 1-2 digits", k)
		}
	}
}

func TestSpecialtyCatalog_NamesIsACopy(t *testing.T) {
	cat := NewSpecialtyCatalog([]string{"B", "A"})
	names := cat.Names()
	names[0] = "mutated"
	if cat.Names()[0] != "A" {
		t.Error("Names must return a defensive copy")
	}
}
