package clickzetta

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/leapstack-labs/clickzetta/pkg/adapter"
	"github.com/leapstack-labs/clickzetta/pkg/session"
)

// DialectName is the SQL dialect reported by the connector.
const DialectName = "clickzetta"

// State is the connector lifecycle state.
type State int

// Lifecycle states.
const (
	StateUnconnected State = iota
	StateConnected
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ErrConnectorClosed is the cause of errors from operations on a closed
// connector. Those errors also match adapter.ErrConnectionFailed.
var ErrConnectorClosed = errors.New("clickzetta connector is closed")

// Option configures a Connector.
type Option func(*Connector)

// WithOpener sets the session opener. The default opens sessions through
// the configured database/sql driver.
func WithOpener(o session.Opener) Option {
	return func(c *Connector) { c.opener = o }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Connector) {
		if l != nil {
			c.logger = l
		}
	}
}

// Connector is the ClickZetta adapter. It owns at most one session.
// All methods are safe for concurrent use; operations are serialized.
type Connector struct {
	mu sync.Mutex

	cfg    Config
	opener session.Opener
	logger *slog.Logger

	state     State
	sess      session.Session
	sessionID string
	schema    string

	warnedTags map[string]struct{}
}

// New validates cfg and connects.
//
// The opener's backing driver is probed first so a missing driver is
// reported as a missing dependency before anything else.
func New(ctx context.Context, cfg Config, opts ...Option) (*Connector, error) {
	c := &Connector{
		logger:     slog.New(slog.DiscardHandler),
		warnedTags: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	cfg = cfg.clone()
	cfg.ApplyDefaults()
	if c.opener == nil {
		c.opener = session.NewDriverOpener(cfg.Driver, c.logger)
	}

	if p, ok := c.opener.(session.Prober); ok {
		if err := p.Available(); err != nil {
			return nil, adapter.WrapError(adapter.CodeMissingDependency, err,
				"ClickZetta connector requires the "+cfg.Driver+" driver")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c.cfg = cfg
	c.schema = cfg.Schema

	if err := c.Connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Connect opens a session. It is a no-op when already connected.
// Reconnecting after Close starts over in the configured schema.
func (c *Connector) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked(ctx)
}

func (c *Connector) connectLocked(ctx context.Context) error {
	if c.state == StateConnected && c.sess != nil {
		return nil
	}

	schema := c.cfg.Schema

	c.logger.Debug("connecting to clickzetta",
		slog.String("service", c.cfg.Service),
		slog.String("workspace", c.cfg.Workspace),
		slog.String("schema", schema),
		slog.String("vcluster", c.cfg.VCluster))

	sess, err := c.opener.Open(ctx, c.cfg.sessionOptions(schema))
	if err != nil {
		return adapter.WrapError(adapter.CodeConnectionFailed, err, "failed to create ClickZetta session")
	}

	c.sess = sess
	c.state = StateConnected
	c.schema = schema
	c.sessionID = uuid.NewString()
	c.logger.Info("clickzetta session opened",
		slog.String("session_id", c.sessionID),
		slog.String("workspace", c.cfg.Workspace),
		slog.String("schema", schema))
	return nil
}

// Close releases the session. Closing twice is a no-op.
// The connector is closed even when releasing the session fails.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateClosed {
		return nil
	}
	sess := c.sess
	c.sess = nil
	c.state = StateClosed
	c.schema = c.cfg.Schema

	if sess == nil {
		return nil
	}
	if err := sess.Close(); err != nil {
		c.logger.Warn("failed to close clickzetta session",
			slog.String("session_id", c.sessionID),
			slog.String("error", err.Error()))
		return adapter.WrapError(adapter.CodeConnectionFailed, err, "failed to close ClickZetta session")
	}
	c.logger.Debug("clickzetta session closed", slog.String("session_id", c.sessionID))
	return nil
}

// active returns the live session. Caller must hold c.mu.
func (c *Connector) active() (session.Session, error) {
	if c.state != StateConnected || c.sess == nil {
		return nil, adapter.WrapError(adapter.CodeConnectionFailed, ErrConnectorClosed, "")
	}
	return c.sess, nil
}

// State returns the lifecycle state.
func (c *Connector) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dialect returns "clickzetta".
func (c *Connector) Dialect() string {
	return DialectName
}

// Workspace returns the configured workspace.
func (c *Connector) Workspace() string {
	return c.cfg.Workspace
}

// CurrentSchema returns the schema subsequent statements run in.
func (c *Connector) CurrentSchema() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.schema
}

// Config returns a copy of the effective configuration.
func (c *Connector) Config() Config {
	return c.cfg.clone()
}

var _ adapter.Adapter = (*Connector)(nil)
