// Package stream publishes live per-step records over a nanomsg pub/sub
// socket so external consumers can watch a run in progress.
package stream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/pub"
	"go.nanomsg.org/mangos/v3/protocol/sub"

	// Register all transports (tcp, ipc, inproc, ...).
	_ "go.nanomsg.org/mangos/v3/transport/all"

	"github.com/dd0wney/cluso-seiz/pkg/seiz"
)

// StepTopic prefixes every published step record.
const StepTopic = "seiz.step|"

// Publisher broadcasts step records to any number of subscribers. Slow or
// absent subscribers never block a run; pub sockets drop on backpressure.
type Publisher struct {
	sock mangos.Socket
}

// NewPublisher creates a publisher listening on addr
// (e.g. "tcp://127.0.0.1:40899" or "inproc://run").
func NewPublisher(addr string) (*Publisher, error) {
	sock, err := pub.NewSocket()
	if err != nil {
		return nil, fmt.Errorf("creating pub socket: %w", err)
	}
	if err := sock.Listen(addr); err != nil {
		sock.Close()
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}
	return &Publisher{sock: sock}, nil
}

// PublishStep broadcasts one step record as topic-prefixed JSON.
func (p *Publisher) PublishStep(rec seiz.HistoryRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling step record: %w", err)
	}
	msg := append([]byte(StepTopic), payload...)
	if err := p.sock.Send(msg); err != nil {
		return fmt.Errorf("publishing step %d: %w", rec.Step, err)
	}
	return nil
}

// Close shuts the socket down.
func (p *Publisher) Close() error {
	return p.sock.Close()
}

// Subscriber receives step records from a Publisher.
type Subscriber struct {
	sock mangos.Socket
}

// NewSubscriber dials addr and subscribes to the step topic.
func NewSubscriber(addr string) (*Subscriber, error) {
	sock, err := sub.NewSocket()
	if err != nil {
		return nil, fmt.Errorf("creating sub socket: %w", err)
	}
	if err := sock.SetOption(mangos.OptionSubscribe, []byte(StepTopic)); err != nil {
		sock.Close()
		return nil, fmt.Errorf("subscribing: %w", err)
	}
	if err := sock.Dial(addr); err != nil {
		sock.Close()
		return nil, fmt.Errorf("dialing %s: %w", addr, err)
	}
	return &Subscriber{sock: sock}, nil
}

// SetDeadline bounds how long Next blocks waiting for a record.
func (s *Subscriber) SetDeadline(d time.Duration) error {
	return s.sock.SetOption(mangos.OptionRecvDeadline, d)
}

// Next blocks until the next step record arrives.
func (s *Subscriber) Next() (seiz.HistoryRecord, error) {
	var rec seiz.HistoryRecord
	msg, err := s.sock.Recv()
	if err != nil {
		return rec, fmt.Errorf("receiving step record: %w", err)
	}
	payload := bytes.TrimPrefix(msg, []byte(StepTopic))
	if err := json.Unmarshal(payload, &rec); err != nil {
		return rec, fmt.Errorf("decoding step record: %w", err)
	}
	return rec, nil
}

// Close shuts the socket down.
func (s *Subscriber) Close() error {
	return s.sock.Close()
}
