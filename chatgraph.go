package chatgraph

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/chatgraph/internal/logging"
	"github.com/aretw0/chatgraph/pkg/builder"
	"github.com/aretw0/chatgraph/pkg/definition"
	"github.com/aretw0/chatgraph/pkg/domain"
	"github.com/aretw0/chatgraph/pkg/matcher"
	"github.com/aretw0/chatgraph/pkg/ports"
)

// ErrNotInitialized is returned when the Controller is used before a
// successful Initialize.
var ErrNotInitialized = errors.New("controller is not initialized")

// Controller is the façade between the presentation layer and the core.
// It owns one Graph and the Agent living in it.
//
// It implements domain.Responder itself: the Agent notifies the Controller,
// which forwards to the responder registered with WithResponder.
type Controller struct {
	mu sync.Mutex

	name      string
	logger    *slog.Logger
	responder domain.Responder
	hooks     domain.LifecycleHooks
	matcher   matcher.Config
	newPicker func() (domain.AnswerPicker, error)
	fallback  string
	greet     bool

	def   *definition.Definition
	graph *domain.Graph
	agent *domain.Agent
}

// New creates an uninitialized Controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		matcher: matcher.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	if c.name != "" {
		c.logger = c.logger.With("graph", c.name)
	}
	return c
}

// Initialize reads the definition and the avatar, builds the graph and
// places the agent at its root. Construction errors are returned unchanged
// and wrap one of the domain construction sentinels.
//
// Calling Initialize again replaces the graph; the previous agent is closed.
func (c *Controller) Initialize(defSrc ports.DefinitionSource, avatarSrc ports.AvatarSource) error {
	def, err := ReadDefinition(defSrc)
	if err != nil {
		return err
	}
	return c.install(def, func() (*domain.Avatar, error) { return LoadAvatar(avatarSrc) })
}

// InitializeFrom is Initialize for an already parsed definition and loaded avatar.
func (c *Controller) InitializeFrom(def *definition.Definition, avatar *domain.Avatar) error {
	return c.install(def, func() (*domain.Avatar, error) {
		if avatar == nil {
			return nil, fmt.Errorf("%w: no avatar", domain.ErrAvatarLoad)
		}
		return avatar, nil
	})
}

func (c *Controller) install(def *definition.Definition, loadAvatar func() (*domain.Avatar, error)) error {
	graph, err := builder.BuildGraph(def)
	if err != nil {
		c.logger.Error("graph construction failed", "err", err)
		return err
	}
	avatar, err := loadAvatar()
	if err != nil {
		c.logger.Error("avatar load failed", "err", err)
		return err
	}

	var picker domain.AnswerPicker
	if c.newPicker != nil {
		if picker, err = c.newPicker(); err != nil {
			return err
		}
	}

	agent := domain.NewAgent(avatar, domain.AgentConfig{
		Selector:        matcher.New(c.matcher),
		Picker:          picker,
		Responder:       c,
		Hooks:           c.hooks,
		DefaultResponse: c.fallback,
	})
	if err := graph.Place(agent); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.agent != nil {
		c.agent.Close()
	}
	c.def, c.graph, c.agent = def, graph, agent

	c.logger.Debug("graph initialized",
		"nodes", graph.NodeCount(),
		"edges", graph.EdgeCount(),
		"root", graph.Root().ID(),
	)

	if c.greet && graph.Root().AnswerCount() > 0 {
		agent.Greet()
	}
	return nil
}

// RouteUserMessage forwards text to the agent. The response is delivered
// through the responder; the only error is ErrNotInitialized.
func (c *Controller) RouteUserMessage(text string) error {
	_, err := c.Send(text)
	return err
}

// Send is RouteUserMessage returning the full turn.
func (c *Controller) Send(text string) (domain.Turn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.agent == nil {
		return domain.Turn{}, ErrNotInitialized
	}
	turn := c.agent.ReceiveMessage(text)
	c.logger.Debug("message routed",
		"from", turn.From,
		"to", turn.To,
		"match", turn.Match.Kind,
		"distance", turn.Match.Distance,
	)
	return turn, nil
}

// Greet emits the current node's answer without reading input.
func (c *Controller) Greet() (domain.Turn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.agent == nil {
		return domain.Turn{}, ErrNotInitialized
	}
	return c.agent.Greet(), nil
}

// Reset moves the agent back to the root and emits the root's answer.
func (c *Controller) Reset() (domain.Turn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.agent == nil {
		return domain.Turn{}, ErrNotInitialized
	}
	return c.agent.Reset(), nil
}

// Restore silently moves the agent to node id.
func (c *Controller) Restore(id domain.NodeID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.agent == nil {
		return ErrNotInitialized
	}
	return c.agent.Restore(id)
}

// CurrentNode returns the ID of the node holding the agent.
func (c *Controller) CurrentNode() (domain.NodeID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.agent == nil {
		return 0, ErrNotInitialized
	}
	return c.agent.Current().ID(), nil
}

// Graph returns the graph, or nil before Initialize.
func (c *Controller) Graph() *domain.Graph {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.graph
}

// Definition returns the definition the graph was built from.
func (c *Controller) Definition() *definition.Definition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.def
}

// Avatar returns the agent's avatar, or nil before Initialize.
func (c *Controller) Avatar() *domain.Avatar {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.agent == nil {
		return nil
	}
	return c.agent.Avatar()
}

// Close discards the agent. The Controller must be initialized again before reuse.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.agent != nil {
		c.agent.Close()
	}
	c.agent = nil
	c.graph = nil
}

// OnResponseReady implements domain.Responder.
func (c *Controller) OnResponseReady(text string) {
	if c.responder != nil {
		c.responder.OnResponseReady(text)
	}
}

// OnAvatarReady implements domain.Responder.
func (c *Controller) OnAvatarReady(avatar *domain.Avatar) {
	if c.responder != nil {
		c.responder.OnAvatarReady(avatar)
	}
}

// ReadDefinition reads and parses a definition source. Read failures are
// reported as malformed definitions.
func ReadDefinition(src ports.DefinitionSource) (*definition.Definition, error) {
	if src == nil {
		return nil, &domain.DefinitionError{Kind: domain.ErrMalformedDefinition, Detail: "no definition source"}
	}
	raw, err := src.ReadDefinition()
	if err != nil {
		return nil, &domain.DefinitionError{
			Kind:   domain.ErrMalformedDefinition,
			Detail: fmt.Sprintf("read definition: %v", err),
		}
	}
	return definition.Parse(bytes.NewReader(raw))
}

// LoadAvatar loads an avatar source, making sure failures wrap domain.ErrAvatarLoad.
func LoadAvatar(src ports.AvatarSource) (*domain.Avatar, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: no avatar source", domain.ErrAvatarLoad)
	}
	avatar, err := src.LoadAvatar()
	if err != nil {
		if errors.Is(err, domain.ErrAvatarLoad) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrAvatarLoad, err)
	}
	if avatar == nil {
		return nil, fmt.Errorf("%w: source returned no avatar", domain.ErrAvatarLoad)
	}
	return avatar, nil
}
