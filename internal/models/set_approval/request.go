package models

// Approved is a pointer so a missing or non-boolean field is distinguishable
// from an explicit false.
type SetApprovalRequest struct {
	Approved *bool `json:"approved"`
}
