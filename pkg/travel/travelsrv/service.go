package travelsrv

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Abraxas-365/traveldocs/pkg/errx"
	"github.com/Abraxas-365/traveldocs/pkg/logx"
	"github.com/Abraxas-365/traveldocs/pkg/travel"
)

type TravelService struct {
	store   travel.ConversationStore
	gateway travel.Gateway
}

func NewTravelService(store travel.ConversationStore, gateway travel.Gateway) *TravelService {
	return &TravelService{
		store:   store,
		gateway: gateway,
	}
}

// GetTravelInfo runs one turn of the conversation named in req.
//
// Turns on the same conversation are serialized. The user message is appended
// before the gateway is called and stays in the history if the call fails.
func (s *TravelService) GetTravelInfo(ctx context.Context, req travel.TravelInfoRequest) (*travel.TravelInfoResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	conv, err := s.store.GetOrCreate(ctx, req.ConversationID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load conversation", errx.TypeInternal)
	}

	if !conv.IsActive() {
		return nil, travel.ErrSessionEnded()
	}

	if err := conv.Acquire(ctx); err != nil {
		return nil, errx.Wrap(err, "request cancelled while waiting for conversation", errx.TypeInternal)
	}
	defer conv.Release()

	if err := conv.AppendUser(req.Prompt()); err != nil {
		return nil, errx.Wrap(err, "failed to append user message", errx.TypeInternal)
	}

	history, err := conv.Messages()
	if err != nil {
		return nil, errx.Wrap(err, "failed to read conversation history", errx.TypeInternal)
	}

	log := logx.WithFields(logx.Fields{
		"conversation_id": req.ConversationID,
		"history_len":     len(history),
	})

	start := time.Now()
	requirements, err := s.gateway.Complete(ctx, history)
	if err != nil {
		log.Warnf("gateway call failed after %s: %v", time.Since(start), err)
		return nil, err
	}

	rendered, err := json.Marshal(requirements)
	if err != nil {
		return nil, errx.Wrap(err, "failed to render assistant reply", errx.TypeInternal)
	}
	if err := conv.AppendAssistant(string(rendered)); err != nil {
		return nil, errx.Wrap(err, "failed to append assistant message", errx.TypeInternal)
	}

	log.Infof("turn completed in %s", time.Since(start))

	return &travel.TravelInfoResponse{
		DestinationCountry: req.DestinationCountry,
		Nationality:        req.Nationality,
		Requirements:       requirements,
		ConversationID:     req.ConversationID,
	}, nil
}

// ConversationCount reports how many conversations the store holds
func (s *TravelService) ConversationCount() int {
	return s.store.Count()
}
