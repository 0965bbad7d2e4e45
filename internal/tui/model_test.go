package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/rgehrsitz/runway/internal/storage"
)

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	return send(t, m, tea.KeyMsg{Type: k})
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// follow runs cmd and feeds its message back into the model.
func follow(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	return m
}

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel(nil, "")

	assert.Equal(t, SceneForm, m.Scene())
	assert.True(t, m.Config().CurrentAge.Equal(decimal.NewFromInt(30)))
	assert.True(t, m.Result().TotalCorpus.Equal(decimal.NewFromInt(6000000)))
	assert.True(t, m.Result().RealReturn.Equal(decimal.RequireFromString("4.5")))
	assert.Len(t, m.fields, 4+3*3+2*4)
	assert.True(t, m.fields[0].Focused())
	assert.False(t, m.loading)
	assert.NotNil(t, m.Init())
}

func TestModel_TypingRecomputes(t *testing.T) {
	m := NewModel(nil, "")
	m, _ = press(t, m, tea.KeyTab)

	ref, ok := m.focusedRef()
	require.True(t, ok)
	require.Equal(t, fieldInflation, ref.kind)

	m, _ = press(t, m, tea.KeyBackspace)
	assert.True(t, m.Config().Inflation.IsZero())

	m = typeText(t, m, "8")
	assert.True(t, m.Config().Inflation.Equal(decimal.NewFromInt(8)))
	assert.True(t, m.Result().RealReturn.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, m.dirty)
}

func TestModel_InvalidInputKeepsLastValue(t *testing.T) {
	m := NewModel(nil, "")
	m, _ = press(t, m, tea.KeyTab)

	m = typeText(t, m, "x")
	assert.Equal(t, "not a number", m.fields[m.focus].Err)
	assert.True(t, m.Config().Inflation.Equal(decimal.NewFromInt(6)))

	m, _ = press(t, m, tea.KeyBackspace)
	assert.Empty(t, m.fields[m.focus].Err)
}

func TestModel_AddAndRemoveRows(t *testing.T) {
	m := NewModel(nil, "")

	m, _ = press(t, m, tea.KeyCtrlB)
	require.Len(t, m.Config().InvestmentBuckets, 4)
	ref, _ := m.focusedRef()
	assert.Equal(t, fieldRef{fieldBucketName, 4}, ref)
	assert.Equal(t, "Added investment bucket", m.status)

	m, _ = press(t, m, tea.KeyCtrlD)
	assert.Len(t, m.Config().InvestmentBuckets, 3)
	assert.Equal(t, 5, m.Config().NextBucketID)

	m, _ = press(t, m, tea.KeyCtrlE)
	require.Len(t, m.Config().OneTimeExpenses, 3)
	ref, _ = m.focusedRef()
	assert.Equal(t, fieldRef{fieldExpenseName, 3}, ref)
	assert.Len(t, m.fields, 4+3*3+3*4)

	m, _ = press(t, m, tea.KeyCtrlD)
	assert.Len(t, m.Config().OneTimeExpenses, 2)
}

func TestModel_RemoveRowOnBasics(t *testing.T) {
	m := NewModel(nil, "")
	m, _ = press(t, m, tea.KeyCtrlD)

	assert.Equal(t, "Only bucket and expense rows can be removed", m.status)
	assert.Len(t, m.Config().InvestmentBuckets, 3)
}

func TestModel_ToggleExpenseType(t *testing.T) {
	m := NewModel(nil, "")
	assert.True(t, m.Result().AnnualExpenses.Equal(decimal.NewFromInt(600000)))

	m, _ = press(t, m, tea.KeyCtrlT)
	assert.Equal(t, domain.ExpenseYearly, m.Config().ExpenseType)
	assert.True(t, m.Result().AnnualExpenses.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, "Yearly Expenses", m.fields[2].Label)

	// Space on the expense type field toggles back
	for i := 0; i < 3; i++ {
		m, _ = press(t, m, tea.KeyTab)
	}
	ref, _ := m.focusedRef()
	require.Equal(t, fieldExpenseType, ref.kind)

	m, _ = press(t, m, tea.KeySpace)
	assert.Equal(t, domain.ExpenseMonthly, m.Config().ExpenseType)
}

func TestModel_ResetDefaults(t *testing.T) {
	m := NewModel(nil, "")
	m, _ = press(t, m, tea.KeyCtrlB)
	m, _ = press(t, m, tea.KeyCtrlR)

	assert.Len(t, m.Config().InvestmentBuckets, 3)
	assert.Equal(t, 0, m.focus)
	assert.True(t, m.dirty)
}

func TestModel_Save(t *testing.T) {
	store := storage.NewStore(storage.NewMemoryKV())
	m := NewModel(store, "")
	assert.True(t, m.loading)

	m = follow(t, m, loadConfigCmd(store))
	assert.False(t, m.loading)

	m, _ = press(t, m, tea.KeyCtrlT)
	require.True(t, m.dirty)

	m, cmd := press(t, m, tea.KeyCtrlS)
	assert.Equal(t, "Saving...", m.status)
	m = follow(t, m, cmd)

	assert.Equal(t, "Saved", m.status)
	assert.False(t, m.dirty)
	assert.Equal(t, domain.ExpenseYearly, store.Load().ExpenseType)
}

func TestModel_SaveWithoutStore(t *testing.T) {
	m := NewModel(nil, "")
	m, cmd := press(t, m, tea.KeyCtrlS)

	assert.Nil(t, cmd)
	assert.Equal(t, "Nothing to save to", m.status)
}

func TestModel_ConfigLoaded(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.CurrentAge = decimal.NewFromInt(45)
	cfg = cfg.RemoveExpense(1)

	m := NewModel(nil, "")
	m, _ = send(t, m, ConfigLoadedMsg{Config: cfg})

	assert.True(t, m.Config().CurrentAge.Equal(decimal.NewFromInt(45)))
	assert.Equal(t, "45", m.fields[0].Value())
	assert.Len(t, m.fields, 4+3*3+1*4)
	assert.False(t, m.dirty)
}

func TestModel_Navigation(t *testing.T) {
	m := NewModel(nil, "INR")
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 200, Height: 100})

	form := m.View()
	assert.Contains(t, form, "Investment Buckets")
	assert.Contains(t, form, "Car Purchase")
	assert.Contains(t, form, "Total Corpus")

	m, cmd := press(t, m, tea.KeyCtrlP)
	m = follow(t, m, cmd)
	assert.Equal(t, SceneProjection, m.Scene())
	assert.Contains(t, m.View(), "Yearly Projection")

	m, cmd = press(t, m, tea.KeyF1)
	m = follow(t, m, cmd)
	assert.Equal(t, SceneHelp, m.Scene())
	assert.Contains(t, m.View(), "Keyboard")

	m, cmd = press(t, m, tea.KeyF1)
	m = follow(t, m, cmd)
	assert.Equal(t, SceneProjection, m.Scene())

	m, cmd = press(t, m, tea.KeyEsc)
	m = follow(t, m, cmd)
	assert.Equal(t, SceneForm, m.Scene())
}

func TestModel_ErrorDismissed(t *testing.T) {
	m := NewModel(nil, "")
	m, _ = send(t, m, ConfigSavedMsg{Err: assert.AnError})
	assert.Contains(t, m.View(), "save failed")

	m, _ = press(t, m, tea.KeyTab)
	assert.Nil(t, m.err)
	assert.Equal(t, 0, m.focus)
}

func TestModel_DrawDownProjection(t *testing.T) {
	cfg := domain.DefaultConfig()
	for _, b := range cfg.InvestmentBuckets {
		cfg, _ = cfg.UpdateBucket(b.ID, domain.BucketReturn(decimal.Zero))
	}

	m := NewModel(nil, "")
	m, _ = send(t, m, ConfigLoadedMsg{Config: cfg})
	m.currentScene = SceneProjection

	assert.Empty(t, m.Result().YearlyData)
	assert.Contains(t, m.View(), "No yearly breakdown")
}

func TestWindow(t *testing.T) {
	lines := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

	assert.Equal(t, lines, window(lines, 3, 20))
	assert.Equal(t, []string{"0", "1", "2", "3"}, window(lines, 0, 4))
	assert.Equal(t, []string{"3", "4", "5", "6"}, window(lines, 5, 4))
	assert.Equal(t, []string{"6", "7", "8", "9"}, window(lines, 9, 4))
}

func TestApplyField(t *testing.T) {
	cfg := domain.DefaultConfig()

	out, err := applyField(cfg, fieldRef{fieldExpenseYears, 1}, "-2")
	assert.EqualError(t, err, "must be 0 or more")
	assert.Equal(t, 5, out.OneTimeExpenses[0].YearsFromNow)

	_, err = applyField(cfg, fieldRef{fieldExpenseYears, 1}, "2.5")
	assert.EqualError(t, err, "whole years only")

	out, err = applyField(cfg, fieldRef{fieldExpenseYears, 1}, "7")
	require.NoError(t, err)
	assert.Equal(t, 7, out.OneTimeExpenses[0].YearsFromNow)
	assert.Equal(t, 5, cfg.OneTimeExpenses[0].YearsFromNow)

	out, err = applyField(cfg, fieldRef{fieldBucketAmount, 2}, "")
	require.NoError(t, err)
	assert.True(t, out.InvestmentBuckets[1].Amount.IsZero())

	out, err = applyField(cfg, fieldRef{fieldBucketName, 3}, "Index Funds")
	require.NoError(t, err)
	assert.Equal(t, "Index Funds", out.InvestmentBuckets[2].Name)

	_, err = applyField(cfg, fieldRef{kind: fieldExpenseType}, "yearly")
	assert.Error(t, err)
}
