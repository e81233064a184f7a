package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/payroll"
)

func TestMemory_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	rules := payroll.StatutoryRules()
	rules.WeekGrouping = payroll.ISOWeeks{}

	saved, err := m.SaveRuleSet(ctx, payroll.RuleSet{ID: "iso", Name: "ISO weeks", Rules: rules})
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Version)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := m.GetRuleSet(ctx, "iso")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ISO weeks", got.Name)
	assert.Equal(t, payroll.WeekGroupingISO, got.Rules.Weeks().Name())

	missing, err := m.GetRuleSet(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemory_SaveBumpsVersion(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return first }

	_, err := m.SaveRuleSet(ctx, payroll.RuleSet{ID: "a", Name: "v1", Rules: payroll.StatutoryRules()})
	require.NoError(t, err)

	m.now = func() time.Time { return first.Add(time.Hour) }
	saved, err := m.SaveRuleSet(ctx, payroll.RuleSet{ID: "a", Name: "v2", Rules: payroll.StatutoryRules()})
	require.NoError(t, err)

	assert.Equal(t, 2, saved.Version)
	assert.Equal(t, first, saved.CreatedAt)
	assert.Equal(t, first.Add(time.Hour), saved.UpdatedAt)
}

func TestMemory_ListOrderedByID(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for _, id := range []payroll.RuleSetID{"c", "a", "b"} {
		_, err := m.SaveRuleSet(ctx, payroll.RuleSet{ID: id, Rules: payroll.StatutoryRules()})
		require.NoError(t, err)
	}

	list, err := m.ListRuleSets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, payroll.RuleSetID("a"), list[0].ID)
	assert.Equal(t, payroll.RuleSetID("c"), list[2].ID)
}

func TestResolveRules(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	rules, err := payroll.ResolveRules(ctx, m, "statutory", "statutory")
	require.NoError(t, err)
	assert.Equal(t, 8, rules.DailyLimitHours)

	_, err = payroll.ResolveRules(ctx, m, "custom", "statutory")
	assert.ErrorIs(t, err, payroll.ErrRuleSetNotFound)
	assert.True(t, payroll.IsNotFound(err))

	custom := payroll.StatutoryRules()
	custom.DailyLimitHours = 7
	_, err = m.SaveRuleSet(ctx, payroll.RuleSet{ID: "custom", Rules: custom})
	require.NoError(t, err)

	rules, err = payroll.ResolveRules(ctx, m, "custom", "statutory")
	require.NoError(t, err)
	assert.Equal(t, 7, rules.DailyLimitHours)
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.SaveRuleSet(ctx, payroll.RuleSet{ID: "a", Rules: payroll.StatutoryRules()})
	require.NoError(t, err)

	require.NoError(t, m.DeleteRuleSet(ctx, "a"))
	require.NoError(t, m.DeleteRuleSet(ctx, "missing"))

	got, err := m.GetRuleSet(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}
