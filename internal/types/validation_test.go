package types

import (
	"errors"
	"testing"

	oserrors "github.com/findyi/opensearch-go/internal/errors"
)

func TestValidateDocumentFields(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in map[string]any
		ok bool
	}{
		{map[string]any{"id": 1}, true},
		{map[string]any{"id": "a", "title": "x"}, true},
		{map[string]any{"id": nil}, false},
		{map[string]any{"title": "x"}, false},
		{nil, false},
	}
	for _, c := range cases {
		err := ValidateDocumentFields(c.in)
		if c.ok && err != nil {
			t.Fatalf("expected ok for %v, got %v", c.in, err)
		}
		if !c.ok && !errors.Is(err, oserrors.ErrArgument) {
			t.Fatalf("expected argument error for %v, got %v", c.in, err)
		}
	}
}

func TestValidateMethod(t *testing.T) {
	t.Parallel()
	for _, m := range []string{"GET", "POST"} {
		if err := ValidateMethod(m); err != nil {
			t.Fatalf("%s: unexpected error %v", m, err)
		}
	}
	for _, m := range []string{"PUT", "DELETE", "get", ""} {
		if err := ValidateMethod(m); !errors.Is(err, oserrors.ErrArgument) {
			t.Fatalf("%q: expected argument error, got %v", m, err)
		}
	}
}

func TestValidatePageAndApp(t *testing.T) {
	t.Parallel()
	if err := ValidatePage(1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidatePage(0, 10); err == nil {
		t.Fatal("expected error for page 0")
	}
	if err := ValidatePage(1, 0); err == nil {
		t.Fatal("expected error for page size 0")
	}
	if err := ValidateAppName(""); err == nil {
		t.Fatal("expected error for empty app name")
	}
}

func TestSearchSummaryString(t *testing.T) {
	t.Parallel()
	n := 50
	s := SearchSummary{Field: "title", Element: "em", Length: &n, Postfix: "</b>"}
	want := "summary_field:title,summary_element:em,summary_len:50,summary_postfix:</b>"
	if got := s.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got := (SearchSummary{}).String(); got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
}
