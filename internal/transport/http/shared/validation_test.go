package shared

import "testing"

func TestValidatorDateFormats(t *testing.T) {
	v := NewValidator()

	if parsed, ok := v.Date("startDate", "2026-01-15"); !ok || parsed.Day() != 15 {
		t.Fatalf("plain date: ok=%v parsed=%v", ok, parsed)
	}
	if _, ok := v.Date("startDate", "2026-01-15T00:00:00Z"); !ok {
		t.Fatal("RFC3339 date rejected")
	}
	if v.HasIssues() {
		t.Fatalf("unexpected issues: %+v", v.issues)
	}

	for _, raw := range []string{"", "15/01/2026", "not-a-date"} {
		bad := NewValidator()
		if _, ok := bad.Date("endDate", raw); ok {
			t.Fatalf("accepted invalid date %q", raw)
		}
		if !bad.HasIssues() {
			t.Fatalf("no issue recorded for %q", raw)
		}
	}
}
