package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	rules := payroll.StatutoryRules()
	rules.WeekGrouping = payroll.ISOWeeks{}
	rules.OvertimeRate = decimal.RequireFromString("0.75")

	saved, err := s.SaveRuleSet(ctx, payroll.RuleSet{ID: "iso", Name: "ISO weeks", Rules: rules})
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Version)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := s.GetRuleSet(ctx, "iso")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ISO weeks", got.Name)
	assert.Equal(t, payroll.WeekGroupingISO, got.Rules.Weeks().Name())
	assert.True(t, decimal.RequireFromString("0.75").Equal(got.Rules.OvertimeRate))
	assert.Equal(t, 8, got.Rules.DailyLimitHours)
}

func TestStore_GetMissing(t *testing.T) {
	got, err := newTestStore(t).GetRuleSet(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_UpsertBumpsVersion(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return first }

	_, err := s.SaveRuleSet(ctx, payroll.RuleSet{ID: "a", Name: "v1", Rules: payroll.StatutoryRules()})
	require.NoError(t, err)

	s.now = func() time.Time { return first.Add(time.Hour) }
	rules := payroll.StatutoryRules()
	rules.DailyLimitHours = 7
	saved, err := s.SaveRuleSet(ctx, payroll.RuleSet{ID: "a", Name: "v2", Rules: rules})
	require.NoError(t, err)

	assert.Equal(t, 2, saved.Version)
	assert.Equal(t, "v2", saved.Name)
	assert.Equal(t, 7, saved.Rules.DailyLimitHours)
	assert.True(t, first.Equal(saved.CreatedAt))
	assert.True(t, first.Add(time.Hour).Equal(saved.UpdatedAt))
}

func TestStore_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	for _, id := range []payroll.RuleSetID{"c", "a", "b"} {
		_, err := s.SaveRuleSet(ctx, payroll.RuleSet{ID: id, Name: string(id), Rules: payroll.StatutoryRules()})
		require.NoError(t, err)
	}

	list, err := s.ListRuleSets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, payroll.RuleSetID("a"), list[0].ID)
	assert.Equal(t, payroll.RuleSetID("c"), list[2].ID)

	require.NoError(t, s.DeleteRuleSet(ctx, "b"))
	list, err = s.ListRuleSets(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, s.Reset(ctx))
	list, err = s.ListRuleSets(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_SeedKeepsExisting(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	presets, err := factory.NewRulesFactory().Presets()
	require.NoError(t, err)

	edited := presets[0]
	edited.Name = "edited"
	_, err = s.SaveRuleSet(ctx, edited)
	require.NoError(t, err)

	n, err := s.SeedRuleSets(ctx, presets)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "only the missing preset is inserted")

	got, err := s.GetRuleSet(ctx, factory.StatutoryRuleSetID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Name)
	assert.Equal(t, 1, got.Version)
}

func TestStore_ResolveRules(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := payroll.ResolveRules(ctx, s, "iso-week", factory.StatutoryRuleSetID)
	assert.ErrorIs(t, err, payroll.ErrRuleSetNotFound)

	presets, err := factory.NewRulesFactory().Presets()
	require.NoError(t, err)
	_, err = s.SeedRuleSets(ctx, presets)
	require.NoError(t, err)

	rules, err := payroll.ResolveRules(ctx, s, "iso-week", factory.StatutoryRuleSetID)
	require.NoError(t, err)
	assert.Equal(t, payroll.WeekGroupingISO, rules.Weeks().Name())
}
