package vision

import (
	"context"
	"errors"
	"time"

	"github.com/apex/log"

	"plant-id/api/internal/metrics"
	"plant-id/api/internal/vision/types"
)

var errEmptyImage = errors.New("empty image payload")

// Identify runs one identification. Without a configured engine it answers
// with Demo and performs no I/O. A failed provider call is an
// *UpstreamError, an unusable reply a *ParseError.
func Identify(ctx context.Context, eng Engine, image string) (*types.Identification, error) {
	if image == "" {
		return nil, errEmptyImage
	}
	if !Available(eng) {
		return Demo(), nil
	}

	logger := log.WithFields(log.Fields{
		"provider": eng.Name(),
		"model":    eng.GetModel(),
	})

	start := time.Now()
	reply, err := eng.Identify(ctx, image)
	metrics.ObserveProvider(eng.Name(), time.Since(start), err)
	if err != nil {
		return nil, NewUpstreamError(err)
	}
	logger.WithField("reply_len", len(reply)).Debug("provider replied")

	out, err := ParseReply(reply)
	if err != nil {
		return nil, err
	}
	return out, nil
}
