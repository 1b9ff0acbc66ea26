package dto

import "time"

// AuditEntryResponse entrada del log de auditoría.
type AuditEntryResponse struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	TargetID  string    `json:"target_id"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}
