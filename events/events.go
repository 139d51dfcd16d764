package events

import (
	"context"
	"encoding/json"
	"log"

	"banquet/rdx"
)

// Channel carries layout-change notifications between instances.
const Channel = "layout-events"

// Event describes one layout change.
type Event struct {
	Type    string `json:"type"`               // "reserve" or "seed"
	TableID string `json:"table_id,omitempty"` // empty for collection-wide changes
}

// Emitter publishes layout events. With redis configured, events go through
// pub/sub so every instance (this one included) reacts via its worker; without
// redis they are handed straight to the local sink.
type Emitter struct {
	conn *rdx.Conn
	sink func(Event)
}

// NewEmitter wires an emitter to a redis connection and a local sink. The sink
// is what actually reacts to an event (cache invalidation, websocket fan-out).
func NewEmitter(conn *rdx.Conn, sink func(Event)) *Emitter {
	return &Emitter{conn: conn, sink: sink}
}

func (e *Emitter) Emit(ctx context.Context, ev Event) {
	if !e.conn.Enabled() {
		e.sink(ev)
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("events: marshal %+v: %v", ev, err)
		return
	}
	if err := e.conn.Publish(ctx, Channel, data); err != nil {
		log.Printf("events: publish failed, delivering locally: %v", err)
		e.sink(ev)
	}
}

// StartWorker subscribes to the event channel and feeds the sink until ctx is
// cancelled. No-op without redis (Emit already delivers locally then).
func (e *Emitter) StartWorker(ctx context.Context) {
	sub := e.conn.Subscribe(ctx, Channel)
	if sub == nil {
		return
	}
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					log.Printf("events: bad payload on %s: %v", Channel, err)
					continue
				}
				e.sink(ev)
			}
		}
	}()
}
