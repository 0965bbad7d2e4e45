package breakeven

import (
	"context"
	"strings"
	"testing"
)

func TestTableFormatter_Format(t *testing.T) {
	result, err := NewDefaultSolver(nil).Solve(context.Background(), Request{Config: defaultConfig(), Target: TargetExpenses, TargetYears: thirty})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	out := (&TableFormatter{Currency: "INR"}).Format(result)
	for _, want := range []string{"RUNWAY BREAK-EVEN", "Target:              expenses", "Monthly Expenses:", "✓ Converged", "PROJECTED RESULTS", "₹"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestTableFormatter_FormatMulti(t *testing.T) {
	result, err := NewDefaultSolver(nil).SolveAll(context.Background(), defaultConfig(), thirty)
	if err != nil {
		t.Fatalf("SolveAll failed: %v", err)
	}

	out := (&TableFormatter{Currency: "USD"}).FormatMulti(result)
	for _, want := range []string{"Target Runway:  30 years", "expenses", "corpus", "returns", " pts", "RECOMMENDATIONS", "$"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	result, err := NewDefaultSolver(nil).Solve(context.Background(), Request{Config: defaultConfig(), Target: TargetReturns, TargetYears: thirty})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	out, err := (&JSONFormatter{Pretty: true}).Format(result)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(out, `"target": "returns"`) {
		t.Errorf("Expected target in JSON, got:\n%s", out)
	}
	if strings.Contains(out, "nextBucketId") {
		t.Error("Solved configuration should not be serialized")
	}

	compact, err := (&JSONFormatter{}).Format(result)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(compact, `"success":true`) {
		t.Errorf("Expected compact JSON, got:\n%s", compact)
	}
}
