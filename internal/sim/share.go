package sim

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShareDelay is how long a simulated share takes.
const ShareDelay = 2 * time.Second

// ShareReceipt describes a completed share.
type ShareReceipt struct {
	ID        string
	Recipient string
	Bytes     int
	SentAt    time.Time
}

// Sharer delivers a secret to a recipient.
type Sharer interface {
	Share(ctx context.Context, recipient, secret string) (ShareReceipt, error)
}

// MockSharer logs the steps a hybrid-encryption share would take and waits
// ShareDelay. Nothing is encrypted or sent.
type MockSharer struct {
	Engine *Engine
	Logger *zap.Logger
}

func (s MockSharer) Share(ctx context.Context, recipient, secret string) (ShareReceipt, error) {
	log := s.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("recipient", recipient), zap.Int("secret_len", len(secret)))
	log.Debug("share step 1: generate one-time symmetric key")
	log.Debug("share step 2: encrypt secret with symmetric key (AES-256 GCM)")
	log.Debug("share step 3: wrap symmetric key with recipient public key")
	log.Debug("share step 4: send package over decentralized channel")

	if err := s.Engine.Wait(ctx, ShareDelay); err != nil {
		return ShareReceipt{}, err
	}
	return ShareReceipt{
		ID:        uuid.NewString(),
		Recipient: recipient,
		Bytes:     len(secret),
		SentAt:    s.Engine.Now(),
	}, nil
}
