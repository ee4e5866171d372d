package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2026-03-01", "2026-02-28", "2024-02-29"}
	invalid := []string{"2026-02-30", "2026-13-01", "01-03-2026", "2026/03/01", "yesterday", ""}
	for _, date := range valid {
		if _, ok := IsValidDate(date); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", date)
		}
	}
	for _, date := range invalid {
		if _, ok := IsValidDate(date); ok {
			t.Errorf("IsValidDate(%q) = true, want false", date)
		}
	}
}

func TestIsValidNID(t *testing.T) {
	valid := []string{"1234567890123456", "0000000000000000"}
	invalid := []string{"123456789012345", "12345678901234567", "123456789012345a", "", "abcdefghabcdefgh"}
	for _, nid := range valid {
		if !IsValidNID(nid) {
			t.Errorf("IsValidNID(%q) = false, want true", nid)
		}
	}
	for _, nid := range invalid {
		if IsValidNID(nid) {
			t.Errorf("IsValidNID(%q) = true, want false", nid)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"annual", "sick", "permission"}
	if !IsInSlice("sick", slice) {
		t.Error("IsInSlice(sick) = false, want true")
	}
	if IsInSlice("Sick", slice) {
		t.Error("IsInSlice(Sick) = true, want false: matching is case-sensitive")
	}
	if IsInSlice("annual", nil) {
		t.Error("IsInSlice on nil slice = true, want false")
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"},
		{Field: "reason", Message: "is required"},
	}
	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("ToMap() has %d entries, want 2", len(m))
	}
	if m["reason"] != "is required" {
		t.Errorf("ToMap()[reason] = %q", m["reason"])
	}
}
