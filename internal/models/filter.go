package models

// OperationFilter provides criteria for filtering operation history
type OperationFilter struct {
	SessionID string
	Kind      OperationKind   // empty matches every kind
	Status    OperationStatus // empty matches every status
	Limit     int             // 0 means no limit
	Offset    int
}

// Matches reports whether rec satisfies every criterion except pagination
func (f OperationFilter) Matches(rec *OperationRecord) bool {
	if rec == nil || rec.Request == nil {
		return false
	}
	if f.SessionID != "" && rec.Request.SessionID != f.SessionID {
		return false
	}
	if f.Kind != "" && rec.Request.Kind != f.Kind {
		return false
	}
	if f.Status != "" && rec.Status != f.Status {
		return false
	}
	return true
}
