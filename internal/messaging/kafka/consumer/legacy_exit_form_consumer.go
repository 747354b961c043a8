package consumer

import (
	"context"
	"encoding/json"

	"go-exitflow/internal/events"
	"go-exitflow/internal/exitform"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLegacyExitForms ingests exit-form batches exported by the old HRMS.
// Records inside a batch are messy (duplicate rows, drifting field names,
// several status spellings); all of that tolerance lives in
// exitform.ImportLegacy, the consumer only decodes and commits.
func ConsumeLegacyExitForms(
	ctx context.Context,
	reader *kafkago.Reader,
	formService exitform.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.legacy_exit_forms")
	log.Info("legacy exit form consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("legacy exit form consumer stopped")
				return
			}
			log.Error("fetch legacy exit form message failed", zap.Error(err))
			continue
		}

		var batch events.LegacyExitFormBatch
		if err := json.Unmarshal(msg.Value, &batch); err != nil {
			log.Error("decode legacy exit form batch failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		imported, err := formService.ImportLegacy(ctx, batch.Records)
		if err != nil {
			log.Error("import legacy exit forms failed",
				zap.String("source", batch.Source),
				zap.Int("imported_before_failure", imported),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit legacy exit form message failed", zap.Error(err))
			continue
		}

		log.Info("legacy exit form batch imported",
			zap.String("source", batch.Source),
			zap.Int("received", len(batch.Records)),
			zap.Int("imported", imported),
		)
	}
}
