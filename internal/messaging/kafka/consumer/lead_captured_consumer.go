package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"go-crm/internal/events"
	"go-crm/internal/lead"
	leaderrors "go-crm/internal/lead/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeadCaptured menghitung ulang skor lead setiap ada event
// lead.captured dari outbox.
func ConsumeLeadCaptured(
	ctx context.Context,
	reader *kafkago.Reader,
	leadService lead.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.lead_captured")
	log.Info("lead captured consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("lead captured consumer stopped")
				return
			}
			log.Error("fetch lead captured message failed", zap.Error(err))
			continue
		}

		var event events.LeadCapturedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode lead_captured event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = leadService.RecalculateScore(ctx, event.CompanyID, event.LeadID)
		if err != nil {
			// Lead sudah dihapus sebelum event diproses; event aman di-skip.
			if errors.Is(err, leaderrors.ErrLeadNotFound) {
				log.Warn("lead gone before score recalculation, skipping",
					zap.String("lead_id", event.LeadID),
					zap.String("company_id", event.CompanyID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("recalculate lead score failed",
				zap.String("lead_id", event.LeadID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit lead captured message failed", zap.Error(err))
			continue
		}

		log.Info("lead score recalculated from lead_captured event",
			zap.String("lead_id", event.LeadID),
			zap.String("company_id", event.CompanyID),
		)
	}
}
