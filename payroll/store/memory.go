// Package store provides RuleSetStore implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	ruleSets map[payroll.RuleSetID]payroll.RuleSet
	now      func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		ruleSets: make(map[payroll.RuleSetID]payroll.RuleSet),
		now:      time.Now,
	}
}

func (m *Memory) SaveRuleSet(_ context.Context, rs payroll.RuleSet) (payroll.RuleSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	if existing, ok := m.ruleSets[rs.ID]; ok {
		rs.Version = existing.Version + 1
		rs.CreatedAt = existing.CreatedAt
	} else {
		rs.Version = 1
		rs.CreatedAt = now
	}
	rs.UpdatedAt = now
	m.ruleSets[rs.ID] = rs
	return rs, nil
}

func (m *Memory) GetRuleSet(_ context.Context, id payroll.RuleSetID) (*payroll.RuleSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rs, ok := m.ruleSets[id]
	if !ok {
		return nil, nil
	}
	return &rs, nil
}

func (m *Memory) ListRuleSets(_ context.Context) ([]payroll.RuleSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]payroll.RuleSet, 0, len(m.ruleSets))
	for _, rs := range m.ruleSets {
		out = append(out, rs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) DeleteRuleSet(_ context.Context, id payroll.RuleSetID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.ruleSets, id)
	return nil
}
