// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package yptest starts phonebook providers and clients in-process for tests,
// and provides GoMock mocks of the phonebook backend contract.
package yptest

//go:generate mockgen -destination=mocks.go -package=yptest github.com/ypservice/yp/yp Phonebook,Backend

import (
	"context"
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"github.com/ypservice/yp/yp"
	"go.uber.org/net/metrics"
	"go.uber.org/yarpc"
	"go.uber.org/yarpc/api/transport"
	"go.uber.org/yarpc/transport/http"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// ServerConfig configures a test server.
type ServerConfig struct {
	// Providers to register. Defaults to a single provider with id 42
	// and no token.
	Providers []yp.ProviderConfig

	// Logger defaults to a zaptest logger at info level.
	Logger *zap.Logger
	Scope  tally.Scope
	Tracer opentracing.Tracer

	// Metrics receives the dispatcher's own call metrics.
	Metrics *metrics.Scope
}

// Server is a started dispatcher serving phonebook providers over HTTP on
// a loopback port.
type Server struct {
	Dispatcher *yarpc.Dispatcher
	Providers  []*yp.Provider
	// Addr is the host:port of the HTTP inbound.
	Addr string
}

// Provider returns the provider with the given id, or nil.
func (s *Server) Provider(id uint16) *yp.Provider {
	for _, p := range s.Providers {
		if p.ID() == id {
			return p
		}
	}
	return nil
}

// NewServer starts a Server. It is stopped, and its providers destroyed,
// when the test finishes.
func NewServer(t testing.TB, cfg ServerConfig) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zaptest.NewLogger(t, zaptest.Level(zapcore.InfoLevel))
	}
	providers := cfg.Providers
	if len(providers) == 0 {
		providers = []yp.ProviderConfig{{ID: 42}}
	}

	inbound := http.NewTransport().NewInbound("127.0.0.1:0")
	d := yarpc.NewDispatcher(yarpc.Config{
		Name:     "yp",
		Inbounds: yarpc.Inbounds{inbound},
		Logging:  yarpc.LoggingConfig{Zap: logger},
		Metrics:  yarpc.MetricsConfig{Metrics: cfg.Metrics},
	})

	s := &Server{Dispatcher: d}
	for _, pcfg := range providers {
		if pcfg.Logger == nil {
			pcfg.Logger = logger
		}
		if pcfg.Scope == nil {
			pcfg.Scope = cfg.Scope
		}
		if pcfg.Tracer == nil {
			pcfg.Tracer = cfg.Tracer
		}
		p, err := yp.Register(d, pcfg)
		require.NoError(t, err, "could not register provider %d", pcfg.ID)
		s.Providers = append(s.Providers, p)
	}

	require.NoError(t, d.Start(), "could not start dispatcher")
	t.Cleanup(func() {
		assert.NoError(t, d.Stop(), "could not stop dispatcher")
		for _, p := range s.Providers {
			assert.NoError(t, p.Destroy(context.Background()), "could not destroy provider %d", p.ID())
		}
	})

	s.Addr = inbound.Addr().String()
	return s
}

// ClientOption customizes NewClientConfig.
type ClientOption func(*clientOptions)

type clientOptions struct {
	unaryOnly bool
}

// UnaryOnly leaves the client without a oneway outbound, as with TChannel
// or gRPC outbounds.
func UnaryOnly() ClientOption {
	return func(o *clientOptions) {
		o.unaryOnly = true
	}
}

// NewClientConfig starts a client dispatcher with an HTTP outbound to addr
// and returns its client configuration for the phonebook service.
func NewClientConfig(t testing.TB, addr string, opts ...ClientOption) transport.ClientConfig {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	out := http.NewTransport().NewSingleOutbound("http://" + addr)
	outbounds := transport.Outbounds{ServiceName: yp.Names.Service, Unary: out}
	if !o.unaryOnly {
		outbounds.Oneway = out
	}

	d := yarpc.NewDispatcher(yarpc.Config{
		Name:      "yp-client",
		Outbounds: yarpc.Outbounds{yp.Names.Service: outbounds},
	})
	require.NoError(t, d.Start(), "could not start client dispatcher")
	t.Cleanup(func() {
		assert.NoError(t, d.Stop(), "could not stop client dispatcher")
	})
	return d.ClientConfig(yp.Names.Service)
}
