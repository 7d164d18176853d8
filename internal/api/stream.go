package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/smazurov/openlogger/internal/events"
)

// registerStreamRoutes registers the SSE tail of log activity.
func (s *Server) registerStreamRoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "logs-stream",
		Method:      http.MethodGet,
		Path:        "/api/logs/stream",
		Summary:     "Log Stream",
		Description: "Entries written by this process via Server-Sent Events. Recent entries are sent first, then new activity as it happens.",
		Tags:        []string{"logfile"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"entry":    events.EntryWrittenEvent{},
		"filtered": events.EntryFilteredEvent{},
		"failure":  events.WriteFailedEvent{},
		"reload":   events.OptionsReloadedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		// Written entries come from the history when there is one, so the
		// replay and the live feed do not overlap.
		eventCh := make(chan any, 100)
		var replay []events.EntryWrittenEvent
		if s.history != nil {
			var stop func()
			replay, stop = s.history.Follow(eventCh)
			defer stop()
		}

		if s.eventBus != nil {
			unsubscribers := []func(){
				events.SubscribeToChannel[events.EntryFilteredEvent](s.eventBus, eventCh),
				events.SubscribeToChannel[events.WriteFailedEvent](s.eventBus, eventCh),
				events.SubscribeToChannel[events.OptionsReloadedEvent](s.eventBus, eventCh),
			}
			if s.history == nil {
				unsubscribers = append(unsubscribers,
					events.SubscribeToChannel[events.EntryWrittenEvent](s.eventBus, eventCh))
			}
			defer func() {
				for _, unsub := range unsubscribers {
					unsub()
				}
			}()
		}

		for _, entry := range replay {
			if err := send.Data(entry); err != nil {
				return
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					return
				}
			}
		}
	})
}
