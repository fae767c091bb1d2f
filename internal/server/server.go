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

// Package server assembles a phonebook server from its configuration.
package server

import (
	"context"
	"net"
	"net/http"

	"github.com/opentracing/opentracing-go"
	"github.com/ypservice/yp/internal/requestlog"
	"github.com/ypservice/yp/yp"
	"github.com/ypservice/yp/ypconfig"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/yarpc"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"
)

// Prometheus scrapers hold at most this many connections at once.
const _maxMetricsConns = 16

// Module provides a dispatcher serving the configured phonebook providers.
// It requires a ypconfig.Config.
var Module = fx.Options(
	fx.Provide(
		NewLogger,
		NewMetrics,
		NewTracer,
		NewDispatcher,
		NewProviders,
	),
	fx.Invoke(Run),
)

// NewLogger builds the logger from the logging configuration.
func NewLogger(cfg ypconfig.Config, lc fx.Lifecycle) (*zap.Logger, error) {
	logger, err := cfg.Logging.Build()
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			// Sync returns an error for stderr on some platforms.
			_ = logger.Sync()
			return nil
		},
	})
	return logger, nil
}

// NewMetrics builds the metrics scope, and serves it to Prometheus when an
// address is configured.
func NewMetrics(cfg ypconfig.Config, logger *zap.Logger, lc fx.Lifecycle) ypconfig.Metrics {
	m := cfg.Metrics.Build(logger)

	var srv *http.Server
	if m.Handler != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler)
		srv = &http.Server{Addr: cfg.Metrics.Address, Handler: mux}
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if srv == nil {
				return nil
			}
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			ln = netutil.LimitListener(ln, _maxMetricsConns)
			logger.Info("serving metrics", zap.Stringer("address", ln.Addr()))
			go func() {
				if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
					logger.Error("metrics server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			var err error
			if srv != nil {
				err = srv.Shutdown(ctx)
			}
			return multierr.Append(err, m.Closer.Close())
		},
	})
	return m
}

// NewTracer builds the tracer.
func NewTracer(cfg ypconfig.Config, logger *zap.Logger, lc fx.Lifecycle) (opentracing.Tracer, error) {
	tracer, closer, err := cfg.Tracing.Build(cfg.Name, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return closer.Close()
		},
	})
	return tracer, nil
}

// DispatcherParams are the inputs of NewDispatcher.
type DispatcherParams struct {
	fx.In

	Config  ypconfig.Config
	Logger  *zap.Logger
	Metrics ypconfig.Metrics
	Tracer  opentracing.Tracer
}

// NewDispatcher builds the dispatcher. Run starts it.
func NewDispatcher(p DispatcherParams) *yarpc.Dispatcher {
	cfg := p.Config.Yarpc
	cfg.Logging.Zap = p.Logger
	cfg.Metrics.Tally = p.Metrics.Scope.SubScope("yarpc")
	cfg.Tracer = p.Tracer

	mw := requestlog.NewInbound(p.Logger)
	cfg.InboundMiddleware = yarpc.InboundMiddleware{Unary: mw, Oneway: mw}
	return yarpc.NewDispatcher(cfg)
}

// ProvidersParams are the inputs of NewProviders.
type ProvidersParams struct {
	fx.In

	Config   ypconfig.Config
	Logger   *zap.Logger
	Metrics  ypconfig.Metrics
	Tracer   opentracing.Tracer
	Backends []yp.Backend `optional:"true"`
}

// NewProviders builds the configured providers. Run registers them.
func NewProviders(p ProvidersParams) ([]*yp.Provider, error) {
	scope := p.Metrics.Scope.SubScope("provider")
	providers := make([]*yp.Provider, 0, len(p.Config.Providers))
	for _, pc := range p.Config.Providers {
		provider, err := yp.NewProvider(yp.ProviderConfig{
			ID:       pc.ID,
			Token:    pc.Token,
			JSON:     pc.JSON,
			Backends: p.Backends,
			Logger:   p.Logger,
			Scope:    scope,
			Tracer:   p.Tracer,
		})
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}
	return providers, nil
}

// RunParams are the inputs of Run.
type RunParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Logger     *zap.Logger
	Dispatcher *yarpc.Dispatcher
	Providers  []*yp.Provider
}

// Run registers the providers and starts the dispatcher when the
// application starts. On stop, the dispatcher stops accepting requests
// before the providers are destroyed.
func Run(p RunParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			for _, provider := range p.Providers {
				if err := provider.Register(p.Dispatcher, yp.Procedures(provider)...); err != nil {
					return multierr.Append(err, destroy(ctx, p.Providers))
				}
			}
			if err := p.Dispatcher.Start(); err != nil {
				return multierr.Append(err, destroy(ctx, p.Providers))
			}
			p.Logger.Info("started", zap.String("name", p.Dispatcher.Name()), zap.Int("providers", len(p.Providers)))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return multierr.Append(p.Dispatcher.Stop(), destroy(ctx, p.Providers))
		},
	})
}

func destroy(ctx context.Context, providers []*yp.Provider) error {
	var err error
	for _, provider := range providers {
		err = multierr.Append(err, provider.Destroy(ctx))
	}
	return err
}
