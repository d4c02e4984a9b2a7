package filterset

import (
	"errors"
	"fmt"
)

// ErrColumnForced is returned when a user operation targets a column with any
// forced configuration. Forced columns cannot be opened or edited by the user
// at all, whether the configuration is open or defined.
var ErrColumnForced = errors.New("column filter is forced by configuration")

// Engine holds the three filter layers for one contact list session and
// merges them into the effective query. Precedence is always
// forced-defined > forced-open-prefill-once > user pending/applied.
//
// The engine is not safe for concurrent use; one list session owns it and
// mutates it from a single goroutine.
type Engine struct {
	pending      map[string]Value
	applied      map[string]Value
	forced       map[string]ForcedFilter
	columnSearch map[string]string
	page         int

	// lastAppliedSignature records the forced configuration that was last
	// reconciled into the applied layer. Reconcile is a no-op while the
	// signature is unchanged, even if applied was mutated elsewhere.
	lastAppliedSignature string
}

// NewEngine creates an empty engine positioned on page 1.
func NewEngine() *Engine {
	return &Engine{
		pending:      make(map[string]Value),
		applied:      make(map[string]Value),
		forced:       make(map[string]ForcedFilter),
		columnSearch: make(map[string]string),
		page:         1,
	}
}

// SetForced installs a new forced configuration and reconciles it into the
// applied layer. Safe to call repeatedly with the same configuration: the
// signature guard makes every call after the first a no-op.
func (e *Engine) SetForced(forced map[string]ForcedFilter) {
	sig := forcedSignature(forced)

	e.forced = make(map[string]ForcedFilter, len(forced))
	for k, f := range forced {
		f.Value = f.Value.clone()
		e.forced[k] = f
	}

	if sig == e.lastAppliedSignature {
		return
	}

	// Open filters pre-fill once: only columns the applied layer lacks.
	for col, f := range e.forced {
		if f.Type != ForcedOpen {
			continue
		}
		if _, ok := e.applied[col]; !ok {
			e.applied[col] = f.Value.clone()
		}
	}

	// Defined filters must always equal the applied layer. Replace per key,
	// never merge, so stale partial values cannot linger.
	if e.definedDiverges() {
		for col, f := range e.forced {
			if f.Type != ForcedDefined {
				continue
			}
			delete(e.applied, col)
			e.applied[col] = f.Value.clone()
		}
	}

	// The signature must move in the same step as the layer mutation it
	// describes, or the guard above turns incorrect.
	e.lastAppliedSignature = sig
}

// definedDiverges reports whether any defined forced entry differs from the
// applied layer, compared order-insensitively.
func (e *Engine) definedDiverges() bool {
	for col, f := range e.forced {
		if f.Type != ForcedDefined {
			continue
		}
		got, ok := e.applied[col]
		if !ok || !got.Equal(f.Value) {
			return true
		}
	}
	return false
}

// enforceDefined re-stomps only the defined forced entries. It runs after
// every applied-layer change so a user can never clear or override a defined
// filter, while open filters stay freely overridable after their pre-fill.
func (e *Engine) enforceDefined() {
	for col, f := range e.forced {
		if f.Type != ForcedDefined {
			continue
		}
		if got, ok := e.applied[col]; !ok || !got.Equal(f.Value) {
			delete(e.applied, col)
			e.applied[col] = f.Value.clone()
		}
	}
}

// IsForced reports whether the column carries any forced configuration.
func (e *Engine) IsForced(column string) bool {
	f, ok := e.forced[column]
	return ok && f.Value.IsSet()
}

// SetPending stores a draft filter value for a column.
func (e *Engine) SetPending(column string, v Value) {
	e.pending[column] = v.clone()
}

// SetColumnSearch stores the transient search-within-filter text of a
// multi-select column's popover.
func (e *Engine) SetColumnSearch(column, text string) {
	e.columnSearch[column] = text
}

// ColumnSearch returns the transient search text for a column.
func (e *Engine) ColumnSearch(column string) string {
	return e.columnSearch[column]
}

// ApplyColumn copies one column's pending value into the applied layer,
// resets to page 1 and clears the column's transient search text. Forced
// columns reject outright.
func (e *Engine) ApplyColumn(column string) error {
	if e.IsForced(column) {
		return fmt.Errorf("cannot apply filter on %q: %w", column, ErrColumnForced)
	}

	if v, ok := e.pending[column]; ok && v.IsSet() {
		e.applied[column] = v.clone()
	} else {
		delete(e.applied, column)
	}
	e.page = 1
	delete(e.columnSearch, column)
	e.enforceDefined()
	return nil
}

// ApplyAll copies every pending value into the applied layer. If any pending
// column is forced the whole operation rejects and nothing is applied.
func (e *Engine) ApplyAll() error {
	for column := range e.pending {
		if e.IsForced(column) {
			return fmt.Errorf("cannot apply filter on %q: %w", column, ErrColumnForced)
		}
	}

	for column, v := range e.pending {
		if v.IsSet() {
			e.applied[column] = v.clone()
		} else {
			delete(e.applied, column)
		}
		delete(e.columnSearch, column)
	}
	e.page = 1
	e.enforceDefined()
	return nil
}

// ResetColumn clears one column from every user layer. Forced columns reject.
func (e *Engine) ResetColumn(column string) error {
	if e.IsForced(column) {
		return fmt.Errorf("cannot reset filter on %q: %w", column, ErrColumnForced)
	}

	delete(e.pending, column)
	delete(e.applied, column)
	delete(e.columnSearch, column)
	e.page = 1
	e.enforceDefined()
	return nil
}

// ResetFilters clears all user layers but re-seeds the defined forced
// entries: a forced column is never left empty.
func (e *Engine) ResetFilters() {
	e.pending = make(map[string]Value)
	e.applied = make(map[string]Value)
	e.columnSearch = make(map[string]string)
	e.page = 1
	e.enforceDefined()
}

// Applied returns the applied value for a column.
func (e *Engine) Applied(column string) (Value, bool) {
	v, ok := e.applied[column]
	return v.clone(), ok
}

// Effective returns a copy of the applied layer, which after reconciliation
// is the effective query: forced-defined entries always present, open
// pre-fills present until overridden, user filters for the rest.
func (e *Engine) Effective() map[string]Value {
	out := make(map[string]Value, len(e.applied))
	for col, v := range e.applied {
		out[col] = v.clone()
	}
	return out
}

// Page returns the current page, 1-based.
func (e *Engine) Page() int {
	return e.page
}

// SetPage moves to a page without touching any filter layer.
func (e *Engine) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	e.page = page
}
