package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Mr-XX23/quiz-agentic/internal/schema"
	"github.com/Mr-XX23/quiz-agentic/internal/types"
)

// Handler processes one incoming message of a registered kind and may
// return a reply envelope for the sender.
type Handler func(ctx context.Context, msg *Message) (*Message, error)

// Protocol is the peer protocol engine: it creates and validates
// envelopes, sends them to registered endpoints, and dispatches incoming
// messages to kind handlers.
type Protocol struct {
	config   Config
	logger   *slog.Logger
	registry *EndpointRegistry
	client   *http.Client

	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewProtocol creates a peer protocol engine with the built-in ping,
// pong, status and response handlers installed.
func NewProtocol(cfg Config, logger *slog.Logger) *Protocol {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Protocol{
		config:   cfg,
		logger:   logger.With("protocol", "a2a", "agent_id", cfg.AgentID),
		registry: NewEndpointRegistry(),
		client:   &http.Client{Timeout: cfg.Timeout},
		handlers: make(map[string]Handler),
	}
	p.registerBuiltins()
	return p
}

// Config returns the protocol configuration.
func (p *Protocol) Config() Config {
	return p.config
}

// Registry returns the endpoint registry.
func (p *Protocol) Registry() *EndpointRegistry {
	return p.registry
}

// RegisterHandler binds a handler to a message kind. Re-registering a kind
// replaces the previous handler.
func (p *Protocol) RegisterHandler(kind string, handler Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[kind] = handler
}

func (p *Protocol) handler(kind string) (Handler, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	h, ok := p.handlers[kind]
	return h, ok
}

// Kinds returns the registered handler kinds.
func (p *Protocol) Kinds() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	kinds := make([]string, 0, len(p.handlers))
	for kind := range p.handlers {
		kinds = append(kinds, kind)
	}
	return kinds
}

// CreateMessage builds a fully-populated envelope from this agent to
// receiverID. Envelopes built here always pass schema validation for the
// built-in kinds.
func (p *Protocol) CreateMessage(receiverID, kind string, payload map[string]any) *Message {
	if payload == nil {
		payload = map[string]any{}
	}
	return &Message{
		MessageID:  types.NewID(),
		SenderID:   p.config.AgentID,
		ReceiverID: receiverID,
		Kind:       kind,
		Payload:    payload,
		Timestamp:  time.Now().UTC(),
	}
}

// validate checks an envelope against the peer message schema, returning
// kind violations separately from structural ones.
func validate(msg *Message) (structural, kind []schema.Violation) {
	violations, err := schema.ValidateDocument(msg, schema.SchemaPeerMessage)
	if err != nil {
		structural = append(structural, schema.Violation{Message: err.Error(), Path: "$"})
		return structural, nil
	}
	for _, v := range violations {
		if v.Path == "$.message_type" {
			kind = append(kind, v)
		} else {
			structural = append(structural, v)
		}
	}
	return structural, kind
}

// Send delivers an envelope to its receiver's registered endpoint and
// reports success. A disabled protocol never delivers. Delivery failures
// degrade silently to false: they are logged, and a transport failure
// marks the endpoint inactive, but nothing propagates to the caller's
// turn.
func (p *Protocol) Send(ctx context.Context, msg *Message) bool {
	if !p.config.Enabled {
		p.logger.Warn("protocol disabled, dropping outbound message",
			"message_type", msg.Kind,
			"receiver_id", msg.ReceiverID)
		return false
	}

	if structural, kindViolations := validate(msg); len(structural) > 0 || len(kindViolations) > 0 {
		p.logger.Warn("refusing to send invalid message",
			"message_id", msg.MessageID.String(),
			"message_type", msg.Kind,
			"violations", len(structural)+len(kindViolations))
		return false
	}

	endpoint, ok := p.registry.Get(msg.ReceiverID)
	if !ok {
		p.logger.Warn("receiver has no registered endpoint", "receiver_id", msg.ReceiverID)
		return false
	}
	if !endpoint.Active {
		p.logger.Warn("receiver endpoint is inactive", "receiver_id", msg.ReceiverID)
		return false
	}

	body, err := json.Marshal(msg)
	if err != nil {
		p.logger.Error("marshaling message", "message_id", msg.MessageID.String(), "error", err)
		return false
	}

	url := fmt.Sprintf("http://%s/a2a/message", endpoint.Address())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		p.logger.Error("building send request", "receiver_id", msg.ReceiverID, "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("send failed, marking endpoint inactive",
			"receiver_id", msg.ReceiverID,
			"endpoint", endpoint.Address(),
			"error", err)
		p.registry.MarkInactive(msg.ReceiverID)
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.logger.Warn("peer rejected message",
			"receiver_id", msg.ReceiverID,
			"message_type", msg.Kind,
			"status", resp.StatusCode)
		return false
	}

	p.registry.Touch(msg.ReceiverID)
	return true
}

// Broadcast sends one message of the given kind to every active endpoint
// concurrently and returns how many deliveries succeeded. It joins all
// sends before returning.
func (p *Protocol) Broadcast(ctx context.Context, kind string, payload map[string]any) int {
	endpoints := p.registry.Active()

	var wg sync.WaitGroup
	var delivered atomic.Int64
	for _, endpoint := range endpoints {
		wg.Add(1)
		go func(agentID string) {
			defer wg.Done()
			if p.Send(ctx, p.CreateMessage(agentID, kind, payload)) {
				delivered.Add(1)
			}
		}(endpoint.AgentID)
	}
	wg.Wait()

	return int(delivered.Load())
}

// PingAll pings every active endpoint and returns the number of peers
// that accepted the ping.
func (p *Protocol) PingAll(ctx context.Context) int {
	return p.Broadcast(ctx, KindPing, map[string]any{"agent_id": p.config.AgentID})
}

// HandleIncoming validates and dispatches one raw incoming message. A
// structurally invalid message returns an error (the transport replies
// with a client error). An unknown kind or a handler fault produces an
// error envelope addressed to the sender; dispatch faults never crash the
// receiver.
func (p *Protocol) HandleIncoming(ctx context.Context, data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, types.WrapError(types.MESSAGE_INVALID, "decoding peer message", err)
	}

	structural, kindViolations := validate(&msg)
	if len(structural) > 0 {
		return nil, types.NewError(types.MESSAGE_INVALID,
			fmt.Sprintf("peer message failed validation: %s", structural[0].Error()))
	}

	handler, known := p.handler(msg.Kind)
	if len(kindViolations) > 0 && !known {
		p.logger.Warn("unknown message kind", "message_type", msg.Kind, "sender_id", msg.SenderID)
		return p.errorReply(&msg, fmt.Sprintf("unknown message type: %s", msg.Kind)), nil
	}
	if !known {
		p.logger.Warn("no handler for message kind", "message_type", msg.Kind, "sender_id", msg.SenderID)
		return p.errorReply(&msg, fmt.Sprintf("unsupported message type: %s", msg.Kind)), nil
	}

	p.logger.Debug("dispatching peer message",
		"message_id", msg.MessageID.String(),
		"message_type", msg.Kind,
		"sender_id", msg.SenderID)

	reply, err := handler(ctx, &msg)
	if err != nil {
		p.logger.Error("peer message handler failed",
			"message_type", msg.Kind,
			"sender_id", msg.SenderID,
			"error", err)
		return p.errorReply(&msg, err.Error()), nil
	}

	p.registry.Touch(msg.SenderID)
	return reply, nil
}

// errorReply wraps a handler fault into an error envelope for the sender.
func (p *Protocol) errorReply(msg *Message, detail string) *Message {
	return msg.Reply(p.config.AgentID, KindError, map[string]any{
		"error":               detail,
		"original_message_id": msg.MessageID.String(),
	})
}

// registerBuiltins installs the protocol's own vocabulary: ping answers
// with pong, status reports the agent's view of its peers, and pong and
// the response kinds are acknowledged by logging.
func (p *Protocol) registerBuiltins() {
	p.RegisterHandler(KindPing, func(ctx context.Context, msg *Message) (*Message, error) {
		p.registry.Touch(msg.SenderID)
		return msg.Reply(p.config.AgentID, KindPong, map[string]any{
			"agent_id": p.config.AgentID,
		}), nil
	})
	p.RegisterHandler(KindPong, func(ctx context.Context, msg *Message) (*Message, error) {
		p.registry.Touch(msg.SenderID)
		return nil, nil
	})
	p.RegisterHandler(KindStatus, func(ctx context.Context, msg *Message) (*Message, error) {
		return msg.Reply(p.config.AgentID, KindStatus, map[string]any{
			"agent_id":  p.config.AgentID,
			"endpoints": p.registry.Len(),
		}), nil
	})
	p.RegisterHandler(KindError, func(ctx context.Context, msg *Message) (*Message, error) {
		p.logger.Warn("peer reported an error",
			"sender_id", msg.SenderID,
			"payload", msg.Payload)
		return nil, nil
	})
	p.RegisterHandler(KindQuizResponse, func(ctx context.Context, msg *Message) (*Message, error) {
		p.logger.Info("received quiz response", "sender_id", msg.SenderID)
		return nil, nil
	})
	p.RegisterHandler(KindQuestionResponse, func(ctx context.Context, msg *Message) (*Message, error) {
		p.logger.Info("received question response", "sender_id", msg.SenderID)
		return nil, nil
	})
}

// ServerInfo summarizes the protocol's runtime surface for status output.
type ServerInfo struct {
	AgentID   string `json:"agent_id"`
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Enabled   bool   `json:"enabled"`
	Endpoints int    `json:"endpoints"`
}

// Info reports the protocol's current surface.
func (p *Protocol) Info() ServerInfo {
	return ServerInfo{
		AgentID:   p.config.AgentID,
		Host:      p.config.Host,
		Port:      p.config.Port,
		Enabled:   p.config.Enabled,
		Endpoints: p.registry.Len(),
	}
}
