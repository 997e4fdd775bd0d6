// Package policy provides answer pickers for nodes that carry several
// candidate answers.
package policy

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/aretw0/chatgraph/pkg/domain"
)

// Names accepted by New.
const (
	NameFirst      = "first"
	NameRoundRobin = "round_robin"
	NameRandom     = "random"
)

// New returns the picker registered under name. Seed only affects "random".
func New(name string, seed uint64) (domain.AnswerPicker, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameFirst:
		return First{}, nil
	case NameRoundRobin, "roundrobin":
		return NewRoundRobin(), nil
	case NameRandom:
		return NewRandom(seed), nil
	default:
		return nil, fmt.Errorf("unknown response policy %q", name)
	}
}

// First always answers with the first candidate.
type First struct{}

func (First) PickAnswer(n *domain.Node) string { return n.Answer(0) }

// RoundRobin cycles through the answers of each node independently.
type RoundRobin struct {
	mu     sync.Mutex
	cursor map[domain.NodeID]int
}

func NewRoundRobin() *RoundRobin {
	return &RoundRobin{cursor: make(map[domain.NodeID]int)}
}

func (p *RoundRobin) PickAnswer(n *domain.Node) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.cursor[n.ID()] % n.AnswerCount()
	p.cursor[n.ID()] = i + 1
	return n.Answer(i)
}

// Random picks uniformly with a seeded PCG source, so runs are reproducible.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *Random) PickAnswer(n *domain.Node) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return n.Answer(p.rng.IntN(n.AnswerCount()))
}
