package voucher

// Status is the lifecycle state of a voucher document
type Status string

const (
	StatusDraft    Status = "draft"    // editable, may be unbalanced while being edited
	StatusApproved Status = "approved" // final
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusApproved:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanEdit returns true if entries and header fields may change in this status
func (s Status) CanEdit() bool {
	return s == StatusDraft
}

// CanApprove returns true if the document can be approved in this status
func (s Status) CanApprove() bool {
	return s == StatusDraft
}

// CanDelete returns true if the document can be deleted in this status
func (s Status) CanDelete() bool {
	return s == StatusDraft
}
