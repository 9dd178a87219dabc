package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/auth"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/store"
)

// Audit actions.
const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionApprove  = "approve"
	ActionReject   = "reject"
	ActionConvert  = "convert"
	ActionComplete = "complete"
	ActionAnalyze  = "analyze"
)

const auditCollection = "audit-logs"

// AuditService appends and queries audit-log records.
type AuditService struct {
	coll *store.Collection[*model.AuditLog]
	log  zerolog.Logger
	now  func() time.Time
}

func NewAuditService(docs *store.Documents, log zerolog.Logger) *AuditService {
	return &AuditService{
		coll: store.CollectionOf[*model.AuditLog](docs, auditCollection),
		log:  log,
		now:  time.Now,
	}
}

// Record appends an audit entry. Failures are logged and never surface to the caller.
// A nil receiver is a no-op.
func (a *AuditService) Record(ctx context.Context, entityType, entityID, action string, changes map[string]any) {
	if a == nil {
		return
	}
	performedBy := "anonymous"
	if actor := auth.ActorFromContext(ctx); actor != nil {
		performedBy = actor.ActorID
	}
	now := a.now()
	entry := &model.AuditLog{
		ID:          model.NewID("AUD", now),
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		PerformedBy: performedBy,
		Timestamp:   model.Timestamp(now),
		Changes:     changes,
	}
	err := a.coll.Update(ctx, func(items []*model.AuditLog) ([]*model.AuditLog, error) {
		return append(items, entry), nil
	})
	if err != nil {
		a.log.Warn().Err(err).
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Str("action", action).
			Msg("audit write failed")
	}
}

// Trail returns audit entries matching f, newest first. Entries are appended
// under the collection lock, so reverse insertion order is chronological even
// when timestamps tie. Entity types match case-insensitively.
func (a *AuditService) Trail(ctx context.Context, f model.AuditFilter) ([]*model.AuditLog, error) {
	items, err := a.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.AuditLog, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		if f.EntityType != "" && !strings.EqualFold(it.EntityType, f.EntityType) {
			continue
		}
		if f.EntityID != "" && it.EntityID != f.EntityID {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}
