package chatgraph

import (
	"log/slog"

	"github.com/aretw0/chatgraph/pkg/domain"
	"github.com/aretw0/chatgraph/pkg/matcher"
	"github.com/aretw0/chatgraph/pkg/policy"
)

// Option defines a functional option for configuring the Controller.
type Option func(*Controller)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithName labels the graph in logs.
func WithName(name string) Option {
	return func(c *Controller) {
		c.name = name
	}
}

// WithResponder registers the presentation layer that receives every
// response and avatar notification.
func WithResponder(r domain.Responder) Option {
	return func(c *Controller) {
		c.responder = r
	}
}

// WithLifecycleHooks registers observability hooks. Multiple calls compose.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = domain.ComposeHooks(c.hooks, hooks)
	}
}

// WithMatcherConfig tunes fuzzy matching.
func WithMatcherConfig(cfg matcher.Config) Option {
	return func(c *Controller) {
		c.matcher = cfg
	}
}

// WithAnswerPicker sets the strategy used when a node has several answers.
// The picker is shared by every Controller spawned with this option.
func WithAnswerPicker(p domain.AnswerPicker) Option {
	return func(c *Controller) {
		c.newPicker = func() (domain.AnswerPicker, error) { return p, nil }
	}
}

// WithPolicy selects a named answer policy (see package policy). A fresh
// picker is created for each Controller, so sessions do not share cursors.
func WithPolicy(name string, seed uint64) Option {
	return func(c *Controller) {
		c.newPicker = func() (domain.AnswerPicker, error) { return policy.New(name, seed) }
	}
}

// WithDefaultResponse sets the text emitted from nodes without answers.
func WithDefaultResponse(text string) Option {
	return func(c *Controller) {
		c.fallback = text
	}
}

// WithGreeting makes Initialize emit the root's answer once the agent is placed.
// Roots without answers stay silent.
func WithGreeting(enabled bool) Option {
	return func(c *Controller) {
		c.greet = enabled
	}
}
