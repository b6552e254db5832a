// Package analysis turns job profiles into risk scores and category insights
// by way of the prompt builder and an inference gateway.
package analysis

import (
	"github.com/BerylCAtieno/career-risk-agent/internal/gateway"
)

type Analyzer struct {
	gw      gateway.Gateway
	pathway gateway.Gateway
}

type Option func(*Analyzer)

// WithPathwayGateway routes structured pathway requests through gw, usually
// the threaded assistant gateway.
func WithPathwayGateway(gw gateway.Gateway) Option {
	return func(a *Analyzer) {
		a.pathway = gw
	}
}

func New(gw gateway.Gateway, opts ...Option) *Analyzer {
	a := &Analyzer{gw: gw}
	for _, opt := range opts {
		opt(a)
	}
	if a.pathway == nil {
		a.pathway = gw
	}
	return a
}
