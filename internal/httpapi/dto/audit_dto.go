package dto

import (
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/vaultkeep/internal/audit/domain"
)

// AuditRecordResponse is the API representation of an audit record.
// Never includes the signature's derived key material, only the
// signature bytes themselves for external verification tooling.
type AuditRecordResponse struct {
	ID            string            `json:"id"`
	Action        string            `json:"action"`
	ResourceType  string            `json:"resource_type"`
	ResourceID    string            `json:"resource_id"`
	ActorID       string            `json:"actor_id,omitempty"`
	SourceAddr    string            `json:"source_addr,omitempty"`
	CorrelationID string            `json:"correlation_id,omitempty"`
	Success       bool              `json:"success"`
	FailureReason string            `json:"failure_reason,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// ListAuditRecordsResponse is a paginated list of audit records.
type ListAuditRecordsResponse struct {
	Data  []AuditRecordResponse `json:"data"`
	Total int                   `json:"total"`
}

// MapAuditRecordsToResponse converts domain audit records to their API representation.
func MapAuditRecordsToResponse(records []*auditDomain.Record, total int) ListAuditRecordsResponse {
	data := make([]AuditRecordResponse, 0, len(records))
	for _, r := range records {
		entry := AuditRecordResponse{
			ID:            r.ID.String(),
			Action:        string(r.Action),
			ResourceType:  string(r.ResourceType),
			ResourceID:    r.ResourceID,
			ActorID:       r.ActorID,
			SourceAddr:    r.SourceAddr,
			Success:       r.Success,
			FailureReason: r.FailureReason,
			Metadata:      r.Metadata,
			CreatedAt:     r.CreatedAt,
		}
		if r.CorrelationID != uuid.Nil {
			entry.CorrelationID = r.CorrelationID.String()
		}
		data = append(data, entry)
	}
	return ListAuditRecordsResponse{Data: data, Total: total}
}
