package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/Mr-XX23/quiz-agentic/internal/schema"
)

// ProtocolVersion is advertised by the initialize method.
const ProtocolVersion = "2.0"

// Protocol is the JSON-RPC engine: it validates requests, dispatches them
// to registered methods, and keeps the capability catalogue describing the
// advertised surface.
type Protocol struct {
	config Config
	logger *slog.Logger

	mu           sync.RWMutex
	methods      map[string]MethodFunc
	capabilities map[string]Capability
}

// NewProtocol creates a JSON-RPC engine with the core methods installed.
func NewProtocol(cfg Config, logger *slog.Logger) *Protocol {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Protocol{
		config:       cfg,
		logger:       logger.With("protocol", "mcp", "server_id", cfg.ServerID),
		methods:      make(map[string]MethodFunc),
		capabilities: make(map[string]Capability),
	}
	p.registerCore()
	return p
}

// Config returns the protocol configuration.
func (p *Protocol) Config() Config {
	return p.config
}

// Register binds a method and its capability entry in one step so the
// executable surface and the advertised surface stay in lockstep.
// Re-registering a name replaces both.
func (p *Protocol) Register(cap Capability, fn MethodFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.methods[cap.Name] = fn
	p.capabilities[cap.Name] = cap
}

// Methods returns the sorted names of all registered methods.
func (p *Protocol) Methods() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.methods))
	for name := range p.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Capabilities returns the catalogue sorted by method name.
func (p *Protocol) Capabilities() []Capability {
	p.mu.RLock()
	defer p.mu.RUnlock()

	caps := make([]Capability, 0, len(p.capabilities))
	for _, c := range p.capabilities {
		caps = append(caps, c)
	}
	sort.Slice(caps, func(i, j int) bool { return caps[i].Name < caps[j].Name })
	return caps
}

func (p *Protocol) method(name string) (MethodFunc, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	fn, ok := p.methods[name]
	return fn, ok
}

// HandleRequest processes one raw JSON-RPC request and returns the
// response, or nil for a notification. Every failure mode maps to a
// structured JSON-RPC error; nothing panics out of the dispatcher.
func (p *Protocol) HandleRequest(ctx context.Context, data []byte) *Response {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return NewError(scanID(data), CodeParseError, "Parse error", map[string]any{
			"detail": err.Error(),
		})
	}
	if violations, err := schema.ValidateDocument(doc, schema.SchemaRPCRequest); err == nil && len(violations) > 0 {
		return NewError(scanID(data), CodeInvalidRequest, "Invalid Request", map[string]any{
			"detail": violations[0].Error(),
		})
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return NewError(scanID(data), CodeInvalidRequest, "Invalid Request", map[string]any{
			"detail": err.Error(),
		})
	}

	fn, ok := p.method(req.Method)
	if !ok {
		p.logger.Warn("method not found", "method", req.Method)
		return NewError(req.ID, CodeMethodNotFound, "Method not found", map[string]any{
			"method": req.Method,
		})
	}

	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	p.logger.Debug("dispatching rpc method", "method", req.Method, "notification", req.IsNotification())

	result, err := fn(ctx, req.Params)
	if req.IsNotification() {
		if err != nil {
			p.logger.Warn("notification handler failed", "method", req.Method, "error", err)
		}
		return nil
	}
	if err != nil {
		p.logger.Error("rpc method failed", "method", req.Method, "error", err)
		return NewError(req.ID, CodeInternalError, "Internal error", map[string]any{
			"detail": err.Error(),
		})
	}
	return NewResult(req.ID, result)
}

// scanID makes a best-effort attempt to recover the request id from a
// payload that failed to parse as a request. Returns nil (marshaled as
// null) when the id cannot be determined.
func scanID(data []byte) json.RawMessage {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil
	}
	return probe["id"]
}

// registerCore installs the protocol's own methods: initialize, ping and
// get_capabilities.
func (p *Protocol) registerCore() {
	p.Register(Capability{
		Name:        "initialize",
		Description: "Handshake returning server identity and protocol version",
		Returns: schema.Object(map[string]*schema.Schema{
			"server_id":        schema.String("Server identifier"),
			"protocol_version": schema.String("JSON-RPC protocol version"),
		}, "server_id", "protocol_version"),
	}, func(ctx context.Context, params map[string]any) (map[string]any, error) {
		return map[string]any{
			"server_id":        p.config.ServerID,
			"protocol_version": ProtocolVersion,
		}, nil
	})

	p.Register(Capability{
		Name:        "ping",
		Description: "Liveness check",
	}, func(ctx context.Context, params map[string]any) (map[string]any, error) {
		return map[string]any{"status": "ok"}, nil
	})

	p.Register(Capability{
		Name:        "get_capabilities",
		Description: "List every advertised method with its parameter and result shapes",
	}, func(ctx context.Context, params map[string]any) (map[string]any, error) {
		caps := p.Capabilities()
		entries := make([]map[string]any, 0, len(caps))
		for _, c := range caps {
			entry := map[string]any{
				"name":        c.Name,
				"description": c.Description,
			}
			if c.Parameters != nil {
				entry["parameters"] = c.Parameters
			}
			if c.Returns != nil {
				entry["returns"] = c.Returns
			}
			entries = append(entries, entry)
		}
		return map[string]any{"capabilities": entries}, nil
	})
}

// ServerInfo summarizes the protocol's runtime surface for status output.
type ServerInfo struct {
	ServerID string   `json:"server_id"`
	Host     string   `json:"host"`
	Port     int      `json:"port"`
	Enabled  bool     `json:"enabled"`
	Methods  []string `json:"methods"`
}

// Info reports the protocol's current surface.
func (p *Protocol) Info() ServerInfo {
	return ServerInfo{
		ServerID: p.config.ServerID,
		Host:     p.config.Host,
		Port:     p.config.Port,
		Enabled:  p.config.Enabled,
		Methods:  p.Methods(),
	}
}

// Address returns the listen address.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
