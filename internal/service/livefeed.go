package service

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/clubpulse/clubpulse-api/internal/dto"
)

const liveFeedBufferSize = 16

// LiveFeed fans submission events out to dashboards watching a meeting.
// Subscribers that fall behind have events dropped rather than blocking the
// submitting request.
type LiveFeed struct {
	mu          sync.RWMutex
	subscribers map[uint]map[chan dto.LiveEvent]struct{}
	logger      zerolog.Logger
}

// NewLiveFeed creates an empty feed hub.
func NewLiveFeed(logger zerolog.Logger) *LiveFeed {
	return &LiveFeed{
		subscribers: make(map[uint]map[chan dto.LiveEvent]struct{}),
		logger:      logger.With().Str("component", "live_feed").Logger(),
	}
}

// Subscribe registers a listener for one meeting and returns its event channel.
func (f *LiveFeed) Subscribe(meetingID uint) chan dto.LiveEvent {
	events := make(chan dto.LiveEvent, liveFeedBufferSize)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.subscribers[meetingID] == nil {
		f.subscribers[meetingID] = make(map[chan dto.LiveEvent]struct{})
	}
	f.subscribers[meetingID][events] = struct{}{}

	return events
}

// Unsubscribe removes a listener and closes its channel.
func (f *LiveFeed) Unsubscribe(meetingID uint, events chan dto.LiveEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()

	listeners, ok := f.subscribers[meetingID]
	if !ok {
		return
	}
	if _, subscribed := listeners[events]; !subscribed {
		return
	}

	delete(listeners, events)
	if len(listeners) == 0 {
		delete(f.subscribers, meetingID)
	}
	close(events)
}

// Publish delivers an event to every listener of its meeting without blocking.
func (f *LiveFeed) Publish(event dto.LiveEvent) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for events := range f.subscribers[event.MeetingID] {
		select {
		case events <- event:
		default:
			f.logger.Warn().
				Uint("meeting_id", event.MeetingID).
				Str("event", event.Type).
				Msg("slow live feed subscriber, event dropped")
		}
	}
}

// SubscriberCount returns the number of listeners for a meeting.
func (f *LiveFeed) SubscriberCount(meetingID uint) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subscribers[meetingID])
}
