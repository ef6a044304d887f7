package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"admissions-chatbot-be/internal/pkg/logger"
	"admissions-chatbot-be/pkg/rag"
)

const reindexTopic = "knowledge.reindex"

type IIndexerService interface {
	Start(ctx context.Context) error
	TriggerReindex() error
	Close() error
}

// IndexerService rebuilds the knowledge indexes off the request path.
// Reindex requests go through an in-process queue so concurrent
// triggers serialize instead of racing the engine.
type IndexerService struct {
	pubSub *gochannel.GoChannel
	engine *rag.Engine
	log    logger.ILogger
}

func NewIndexerService(engine *rag.Engine, log logger.ILogger) IIndexerService {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 8},
		watermill.NopLogger{},
	)
	return &IndexerService{
		pubSub: pubSub,
		engine: engine,
		log:    log,
	}
}

// Start subscribes the rebuild worker and enqueues the initial build.
// If the vector table already holds chunks the in-memory side is
// restored from it instead of re-embedding everything.
func (s *IndexerService) Start(ctx context.Context) error {
	msgs, err := s.pubSub.Subscribe(ctx, reindexTopic)
	if err != nil {
		return err
	}

	go s.consume(ctx, msgs)

	if err := s.engine.Restore(ctx); err != nil {
		s.log.Info("indexer", "no restorable index, scheduling full build", map[string]interface{}{"reason": err.Error()})
		return s.TriggerReindex()
	}
	return nil
}

func (s *IndexerService) consume(ctx context.Context, msgs <-chan *message.Message) {
	for msg := range msgs {
		s.log.Info("indexer", "reindex started", map[string]interface{}{"message_id": msg.UUID})
		if err := s.engine.Initialize(ctx); err != nil {
			s.log.Error("indexer", "reindex failed", map[string]interface{}{"error": err.Error()})
			// Ack anyway: retrying the same broken document in a loop
			// helps nobody, the next trigger will try again.
		}
		msg.Ack()
	}
}

// TriggerReindex enqueues a full rebuild.
func (s *IndexerService) TriggerReindex() error {
	msg := message.NewMessage(watermill.NewUUID(), nil)
	return s.pubSub.Publish(reindexTopic, msg)
}

func (s *IndexerService) Close() error {
	return s.pubSub.Close()
}
