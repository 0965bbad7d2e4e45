package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const defaultPlanYAML = `
current_age: 30
inflation: 6
monthly_expenses: 50000
expense_type: monthly
investment_buckets:
  - id: 1
    name: Short Term (FD, Savings)
    amount: 1000000
    return: 7
  - id: 2
    name: Medium Term (Debt Funds)
    amount: 2000000
    return: 10
  - id: 3
    name: Long Term (Equity)
    amount: 3000000
    return: 12
one_time_expenses:
  - id: 1
    name: Car Purchase
    years_from_now: 5
    current_cost: 1000000
    inflation_rate: 5
  - id: 2
    name: Child Education
    years_from_now: 15
    current_cost: 2000000
    inflation_rate: 8
`

// runCLI executes a fresh root command against a store in dir.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--store", filepath.Join(dir, "store.json")}, args...))

	err := cmd.Execute()
	return buf.String(), err
}

func writePlan(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write plan: %v", err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	if cmd.Use != "runway" {
		t.Errorf("Expected root command use to be 'runway', got %s", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("Expected root command to have descriptions")
	}

	expectedCommands := []string{"project", "validate", "compare", "solve", "config", "version"}
	for _, name := range expectedCommands {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected command %s to be registered", name)
		}
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "--help")
	if err != nil {
		t.Errorf("Expected no error for help command, got %v", err)
	}
	if !strings.Contains(out, "project") {
		t.Error("Expected help to list the project command")
	}
}

func TestProjectCommand_File(t *testing.T) {
	dir := t.TempDir()
	plan := writePlan(t, dir, defaultPlanYAML)

	out, err := runCLI(t, dir, "project", plan)
	if err != nil {
		t.Fatalf("project failed: %v", err)
	}

	for _, want := range []string{"Real Return:            4.5%", "Money Lasts:            12.0 years", "Car Purchase"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestProjectCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	plan := writePlan(t, dir, defaultPlanYAML)

	out, err := runCLI(t, dir, "project", plan, "--format", "json")
	if err != nil {
		t.Fatalf("project failed: %v", err)
	}
	if !strings.Contains(out, `"totalCorpus"`) {
		t.Errorf("Expected JSON output, got:\n%s", out)
	}
}

func TestProjectCommand_OutputFile(t *testing.T) {
	dir := t.TempDir()
	plan := writePlan(t, dir, defaultPlanYAML)
	target := filepath.Join(dir, "report.md")

	out, err := runCLI(t, dir, "project", plan, "-f", "md", "-o", target)
	if err != nil {
		t.Fatalf("project failed: %v", err)
	}
	if !strings.Contains(out, "Report written to "+target) {
		t.Errorf("Unexpected output: %s", out)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if len(data) == 0 {
		t.Error("Expected a non-empty report")
	}
}

func TestProjectCommand_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	plan := writePlan(t, dir, defaultPlanYAML)

	_, err := runCLI(t, dir, "project", plan, "--format", "docx")
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Errorf("Expected unknown format error, got %v", err)
	}
}

func TestProjectCommand_SavedConfiguration(t *testing.T) {
	dir := t.TempDir()

	// Nothing saved yet: the defaults are projected
	out, err := runCLI(t, dir, "project")
	if err != nil {
		t.Fatalf("project failed: %v", err)
	}
	if !strings.Contains(out, "12.0 years") {
		t.Errorf("Expected the default projection, got:\n%s", out)
	}

	plan := writePlan(t, dir, strings.Replace(defaultPlanYAML, "current_age: 30", "current_age: 52", 1))
	if _, err := runCLI(t, dir, "project", plan, "--save"); err != nil {
		t.Fatalf("project --save failed: %v", err)
	}

	out, err = runCLI(t, dir, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, `current_age: "52"`) {
		t.Errorf("Expected saved age 52, got:\n%s", out)
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	plan := writePlan(t, dir, defaultPlanYAML)

	out, err := runCLI(t, dir, "validate", plan)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "is valid (3 investment buckets, 2 one-time expenses)") {
		t.Errorf("Unexpected output: %s", out)
	}

	bad := writePlan(t, dir, "expense_type: weekly\n")
	if _, err := runCLI(t, dir, "validate", bad); err == nil {
		t.Error("Expected an invalid expense type to fail validation")
	}
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	plan := writePlan(t, dir, defaultPlanYAML)

	out, err := runCLI(t, dir, "compare", plan, "--with", "stress,frugal")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	for _, want := range []string{"RETIREMENT RUNWAY COMPARISON", "stress", "frugal"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}

	out, err = runCLI(t, dir, "compare", plan,
		"--transform", "adjust_returns:delta=2", "--transform", "drop_one_time_expenses", "--format", "csv")
	if err != nil {
		t.Fatalf("compare --transform failed: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 3 {
		t.Errorf("Expected header, base and custom rows, got %d lines:\n%s", len(lines), out)
	}
}

func TestCompareCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	plan := writePlan(t, dir, defaultPlanYAML)

	if _, err := runCLI(t, dir, "compare", plan); err == nil {
		t.Error("Expected an error without --with or --transform")
	}
	if _, err := runCLI(t, dir, "compare", plan, "--with", "moonshot"); err == nil {
		t.Error("Expected an error for an unknown template")
	}
	if _, err := runCLI(t, dir, "compare", plan, "--with", "stress", "--format", "xml"); err == nil {
		t.Error("Expected an error for an unknown format")
	}
}

func TestCompareCommand_ListTemplates(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "compare", "--list-templates")
	if err != nil {
		t.Fatalf("list-templates failed: %v", err)
	}
	for _, want := range []string{"stress", "inflation_plus_1", "adjust_inflation", "defer_expense"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected template list to contain %q", want)
		}
	}
}

func TestConfigCommands(t *testing.T) {
	dir := t.TempDir()
	plan := writePlan(t, dir, strings.Replace(defaultPlanYAML, "monthly_expenses: 50000", "monthly_expenses: 65000", 1))

	out, err := runCLI(t, dir, "config", "path")
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	if strings.TrimSpace(out) != filepath.Join(dir, "store.json") {
		t.Errorf("Unexpected store path %q", out)
	}

	if _, err := runCLI(t, dir, "config", "import", plan); err != nil {
		t.Fatalf("config import failed: %v", err)
	}

	out, err = runCLI(t, dir, "config", "show", "--json")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, `"monthlyExpenses":"65000"`) {
		t.Errorf("Expected imported expenses in snapshot, got:\n%s", out)
	}

	exported := filepath.Join(dir, "exported.yaml")
	if _, err := runCLI(t, dir, "config", "export", exported); err != nil {
		t.Fatalf("config export failed: %v", err)
	}
	if out, err := runCLI(t, dir, "validate", exported); err != nil {
		t.Errorf("Expected exported file to validate, got %v (%s)", err, out)
	}

	if _, err := runCLI(t, dir, "config", "reset"); err != nil {
		t.Fatalf("config reset failed: %v", err)
	}
	out, err = runCLI(t, dir, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, `monthly_expenses: "50000"`) {
		t.Errorf("Expected defaults after reset, got:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "runway dev") {
		t.Errorf("Unexpected version output: %s", out)
	}
}

func TestSolveCommand(t *testing.T) {
	dir := t.TempDir()
	plan := writePlan(t, dir, defaultPlanYAML)

	out, err := runCLI(t, dir, "solve", plan, "--years", "30")
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	for _, want := range []string{"RUNWAY BREAK-EVEN", "Current Runway: 12.0 years", "RECOMMENDATIONS"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}

	out, err = runCLI(t, dir, "solve", plan, "--target", "expenses", "-f", "json")
	if err != nil {
		t.Fatalf("solve json failed: %v", err)
	}
	if !strings.Contains(out, `"target": "expenses"`) {
		t.Errorf("Expected JSON result, got:\n%s", out)
	}
}

func TestSolveCommand_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := runCLI(t, dir, "solve", "--target", "age"); err == nil {
		t.Error("Expected error for unknown target")
	}
	if _, err := runCLI(t, dir, "solve", "--format", "xml"); err == nil {
		t.Error("Expected error for unknown format")
	}
	if _, err := runCLI(t, dir, "solve", "--years", "150"); err == nil {
		t.Error("Expected error for a target beyond the horizon")
	}
}
