package service

import (
	"context"
	"time"

	"github.com/outfitly/storefront/internal/events"
	"github.com/outfitly/storefront/internal/models"
	"github.com/outfitly/storefront/internal/repo"
	"github.com/outfitly/storefront/pkg/logging"
)

// Recorder is the write sink for user interaction events. Rows are appended
// for the not-yet-built recommendation feature and mirrored to kafka. Both
// writes are best effort: failures are logged, never surfaced.
type Recorder struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (r *Recorder) Record(ctx context.Context, userID string, productID uint, interactionType string) {
	l := logging.FromContext(ctx)

	in := models.UserInteraction{
		UserID:          userID,
		ProductID:       productID,
		InteractionType: interactionType,
		Timestamp:       time.Now().UTC(),
	}
	if err := r.Repo.CreateInteraction(ctx, &in); err != nil {
		l.Error("interaction_store_failed", "type", interactionType, "product_id", productID, "error", err)
	}

	if r.Events == nil {
		return
	}
	event := map[string]any{
		"type":       interactionType,
		"userID":     userID,
		"productID":  productID,
		"occurredAt": in.Timestamp,
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := r.Events.Publish(pubCtx, userID, event); err != nil {
		l.Error("interaction_publish_failed", "type", interactionType, "product_id", productID, "error", err)
	}
}
