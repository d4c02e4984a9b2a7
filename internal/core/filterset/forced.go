package filterset

import (
	"sort"
	"strings"
)

// ForcedType distinguishes the two administrative filter flavours.
type ForcedType string

// Forced filter types. A defined filter is an immutable constraint the user
// can never see or remove; an open filter is a one-time default the user may
// edit afterwards.
const (
	ForcedOpen    ForcedType = "open"
	ForcedDefined ForcedType = "defined"
)

// ForcedFilter is one administratively configured column constraint, owned
// by the settings collaborator and read-only to the engine.
type ForcedFilter struct {
	Type  ForcedType
	Value Value
}

// forcedSignature returns a stable serialization of a forced configuration.
// The engine stores the last applied signature and skips reconciliation
// entirely when it is unchanged; this is the re-entrancy guard that keeps
// reconciliation from fighting user edits to non-forced columns.
func forcedSignature(forced map[string]ForcedFilter) string {
	if len(forced) == 0 {
		return ""
	}
	keys := make([]string, 0, len(forced))
	for k := range forced {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		f := forced[k]
		parts = append(parts, k+"="+string(f.Type)+"|"+f.Value.signature())
	}
	return strings.Join(parts, ";")
}
