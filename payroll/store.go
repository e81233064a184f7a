/*
store.go - Persistence interface for rule sets

PURPOSE:
  A RuleSet is a named, stored Rules document. Callers reference a rule set
  by ID to compute under an alternative week interpretation without a
  redeploy. Only configuration is stored; calculation results never are.

VERSIONING:
  Saving an existing ID replaces its rules and bumps Version. CreatedAt is
  kept from the first save.

IMPLEMENTATIONS:
  - payroll/store/memory.go: In-memory for testing
  - store/sqlite/sqlite.go: SQLite
*/
package payroll

import (
	"context"
	"time"
)

type RuleSetID string

type RuleSet struct {
	ID        RuleSetID
	Name      string
	Rules     Rules
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RuleSetStore persists rule sets.
type RuleSetStore interface {
	// SaveRuleSet inserts or replaces a rule set and returns the stored record.
	SaveRuleSet(ctx context.Context, rs RuleSet) (RuleSet, error)

	// GetRuleSet returns (nil, nil) when id is unknown.
	GetRuleSet(ctx context.Context, id RuleSetID) (*RuleSet, error)

	// ListRuleSets returns all rule sets ordered by ID.
	ListRuleSets(ctx context.Context) ([]RuleSet, error)

	// DeleteRuleSet removes a rule set. Deleting an unknown ID is not an error.
	DeleteRuleSet(ctx context.Context, id RuleSetID) error
}

// ResolveRules loads the rules for id, falling back to StatutoryRules when
// id is the fallback ID and nothing is stored under it.
func ResolveRules(ctx context.Context, store RuleSetStore, id, fallback RuleSetID) (Rules, error) {
	rs, err := store.GetRuleSet(ctx, id)
	if err != nil {
		return Rules{}, err
	}
	if rs != nil {
		return rs.Rules, nil
	}
	if id == fallback {
		return StatutoryRules(), nil
	}
	return Rules{}, ErrRuleSetNotFound
}
