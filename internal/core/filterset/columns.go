package filterset

// Well-known contact list columns.
const (
	ColumnStatus       = "status"
	ColumnTeleoperator = "teleoperator"
	ColumnConfirmateur = "confirmateur"
	ColumnPlatform     = "platform"
	ColumnSource       = "source"
	ColumnCreatedAt    = "created_at"
	ColumnUpdatedAt    = "updated_at"
	ColumnLastCallAt   = "last_call_at"
	ColumnEventDate    = "event_date"
)

// The column classification is a core invariant, not configuration: a
// column's filter kind never changes at runtime.
var dateColumns = map[string]bool{
	ColumnCreatedAt:  true,
	ColumnUpdatedAt:  true,
	ColumnLastCallAt: true,
	ColumnEventDate:  true,
}

var multiColumns = map[string]bool{
	ColumnStatus:       true,
	ColumnTeleoperator: true,
	ColumnConfirmateur: true,
	ColumnPlatform:     true,
	ColumnSource:       true,
}

// ColumnKind returns the fixed filter kind for a column. Columns outside the
// date and multi-select tables filter as free text.
func ColumnKind(column string) Kind {
	if dateColumns[column] {
		return KindDateRange
	}
	if multiColumns[column] {
		return KindMulti
	}
	return KindText
}
