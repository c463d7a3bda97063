package typegraph_test

import (
	"fmt"
	"testing"

	typegraph "github.com/typegraph/typegraph"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := typegraph.Issues{
		{Path: "/", Code: typegraph.CodeDanglingRef, Hint: "Node"},
	}
	got := iss.Error()
	if got != "dangling_ref at / (Node)" {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestAsIssues_Unwraps(t *testing.T) {
	iss := typegraph.Issues{{Code: typegraph.CodeParseError}}
	wrapped := fmt.Errorf("loading: %w", iss)
	got, ok := typegraph.AsIssues(wrapped)
	if !ok || len(got) != 1 || got[0].Code != typegraph.CodeParseError {
		t.Fatalf("expected issues back, got %v ok=%v", got, ok)
	}
	if _, ok := typegraph.AsIssues(nil); ok {
		t.Fatalf("nil error must not yield issues")
	}
}
