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

// Package provider serves a family of named resources over YARPC.
//
// A Provider owns a registry of backends and a table of live resources. It
// registers admin procedures (create, open, close, destroy, list and
// get_config) on a dispatcher under the service "<base>-<provider id>", next
// to whatever procedures the resource family adds on top.
//
// Application failures are reported in the "ret" field of responses with
// the codes of package yperrors. Requests reaching a provider that is not
// running fail at the YARPC level with CodeUnavailable.
package provider

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"sync"

	"github.com/opentracing/opentracing-go"
	"github.com/ypservice/yp/protocol"
	"github.com/ypservice/yp/resource"
	"github.com/ypservice/yp/yperrors"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/yarpc"
	"go.uber.org/yarpc/api/transport"
	"go.uber.org/yarpc/pkg/lifecycle"
	"go.uber.org/yarpc/yarpcerrors"
	"go.uber.org/zap"
)

const (
	_opCreate  = "create"
	_opOpen    = "open"
	_opClose   = "close"
	_opDestroy = "destroy"
)

// Provider manages the resources of one provider id.
type Provider[R resource.Resource] struct {
	names   protocol.Names
	id      uint16
	service string
	token   string

	logger  *zap.Logger
	authLog *authLogger
	metrics *metrics
	tracer  opentracing.Tracer

	backends  *resource.Registry[R]
	table     *resource.Table[R]
	bootstrap []bootstrapResource

	once       *lifecycle.Once
	registered atomic.Bool
	// mu is held for reading by every operation and for writing by
	// Destroy, so that teardown waits for operations in flight.
	mu sync.RWMutex
}

// New builds a Provider. The resources listed in the configuration are
// created when the provider is registered.
func New[R resource.Resource](cfg Config[R]) (*Provider[R], error) {
	if cfg.Names.Service == "" || cfg.Names.Kind == "" {
		return nil, yperrors.InvalidArgsErrorf("provider names are required")
	}

	service := cfg.Names.ServiceName(cfg.ID)
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("provider").With(
		zap.String("service", service),
		zap.Uint16("providerID", cfg.ID),
	)
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = opentracing.GlobalTracer()
	}

	bootstrap, err := parseProviderConfig(cfg.JSON, logger)
	if err != nil {
		logger.Error("could not parse provider configuration", zap.Error(err))
		return nil, err
	}

	p := &Provider[R]{
		names:     cfg.Names,
		id:        cfg.ID,
		service:   service,
		token:     cfg.Token,
		logger:    logger,
		authLog:   newAuthLogger(logger),
		metrics:   newMetrics(cfg.Scope, service),
		tracer:    tracer,
		backends:  resource.NewRegistry[R](),
		table:     resource.NewTable[R](),
		bootstrap: bootstrap,
		once:      lifecycle.NewOnce(),
	}
	for _, b := range cfg.Backends {
		if err := p.RegisterBackend(b); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ID returns the provider id.
func (p *Provider[R]) ID() uint16 {
	return p.id
}

// ServiceName returns the YARPC service the provider serves.
func (p *Provider[R]) ServiceName() string {
	return p.service
}

// Names returns the names of the resource family.
func (p *Provider[R]) Names() protocol.Names {
	return p.names
}

// Logger returns the provider's logger.
func (p *Provider[R]) Logger() *zap.Logger {
	return p.logger
}

// RegisterBackend makes a backend available to create and open.
func (p *Provider[R]) RegisterBackend(b resource.Backend[R]) error {
	if err := p.backends.Register(b); err != nil {
		p.logger.Error("could not register backend", zap.Error(err))
		return err
	}
	p.logger.Debug("registered backend", zap.String("backend", b.Name()))
	return nil
}

// Backends returns the names of the registered backends.
func (p *Provider[R]) Backends() []string {
	return p.backends.Names()
}

// Register registers the provider's procedures, followed by the given
// family procedures, on the dispatcher, then creates the resources listed
// in the provider configuration. The procedures are bound to the provider's
// service.
//
// Register fails with CodeInvalidArgs if the dispatcher accepts no incoming
// requests and with CodeInvalidProvider if the dispatcher already serves a
// provider with the same service name. A provider is registered at most
// once; later calls return the result of the first.
func (p *Provider[R]) Register(d *yarpc.Dispatcher, procedures ...transport.Procedure) error {
	return p.once.Start(func() error {
		if len(d.Inbounds()) == 0 {
			p.logger.Error("dispatcher does not accept incoming requests", zap.String("dispatcher", d.Name()))
			return yperrors.InvalidArgsErrorf("dispatcher %q has no inbounds", d.Name())
		}
		for _, proc := range d.Router().Procedures() {
			if proc.Service == p.service {
				p.logger.Error("a provider with the same id is already registered")
				return yperrors.InvalidProviderErrorf("service %q is already registered on dispatcher %q", p.service, d.Name())
			}
		}

		ctx := context.Background()
		for _, r := range p.bootstrap {
			if _, err := p.create(ctx, _opCreate, r.Type, r.Config); err != nil {
				p.logger.Warn("skipping resource in provider configuration",
					zap.String("backend", r.Type), zap.Error(err))
			}
		}
		p.bootstrap = nil

		all := append(p.procedures(), procedures...)
		for i := range all {
			all[i].Service = p.service
		}
		d.Register(all)

		p.registered.Store(true)
		p.logger.Info("provider registered", zap.Int("resources", p.table.Len()))
		return nil
	})
}

// Destroy closes every remaining resource and stops the provider. Its
// procedures stay registered on the dispatcher but fail with
// CodeUnavailable. Destroy tears the provider down once; later calls return
// the result of the first.
func (p *Provider[R]) Destroy(ctx context.Context) error {
	if !p.registered.Load() && p.once.State() == lifecycle.Errored {
		// Registration failed, so there is nothing to tear down.
		return nil
	}
	return p.once.Stop(func() error {
		p.mu.Lock()
		defer p.mu.Unlock()

		var err error
		for _, e := range p.table.Drain() {
			err = multierr.Append(err, p.closeEntry(ctx, e))
		}
		p.metrics.tableSize(0)
		if err != nil {
			p.logger.Error("could not close every resource", zap.Error(err))
			return err
		}
		p.logger.Info("provider destroyed")
		return nil
	})
}

// Lookup returns the resource with the given id.
func (p *Provider[R]) Lookup(id resource.ID) (R, error) {
	e, err := p.table.Get(id)
	if err != nil {
		var zero R
		return zero, err
	}
	return e.Resource, nil
}

// Do runs f on the resource with the given id, inside a span named
// "backend.<op>". The provider is not torn down while f runs.
//
// Do fails with a YARPC CodeUnavailable error if the provider is not running
// and with CodeInvalidResource if there is no such resource.
func (p *Provider[R]) Do(ctx context.Context, op string, id resource.ID, f func(context.Context, R) error) error {
	release, err := p.enter()
	if err != nil {
		return err
	}
	defer release()

	e, err := p.table.Get(id)
	if err != nil {
		return err
	}
	span, ctx := startBackendSpan(ctx, p.tracer, op, e.Backend.Name())
	err = backendError(f(ctx, e.Resource))
	finishBackendSpan(span, id, err)
	return err
}

// RecordCall records the outcome of a procedure in the provider's metrics.
func (p *Provider[R]) RecordCall(procedure string, err error) {
	p.metrics.call(procedure, err)
}

// CreateResource creates a resource with the named backend and returns its
// id. An empty configuration stands for "{}".
func (p *Provider[R]) CreateResource(ctx context.Context, token, backend, config string) (resource.ID, error) {
	return p.createOrOpen(ctx, _opCreate, token, backend, config)
}

// OpenResource opens a resource with the named backend and returns its id.
func (p *Provider[R]) OpenResource(ctx context.Context, token, backend, config string) (resource.ID, error) {
	return p.createOrOpen(ctx, _opOpen, token, backend, config)
}

// CloseResource removes a resource and closes it. It returns the error of
// the backend's close.
func (p *Provider[R]) CloseResource(ctx context.Context, token string, id resource.ID) error {
	release, err := p.enter()
	if err != nil {
		return err
	}
	defer release()

	if err := p.checkToken(token, p.names.Close()); err != nil {
		return err
	}
	e, err := p.table.Remove(id)
	if err != nil {
		return err
	}
	p.metrics.tableSize(p.table.Len())
	return p.closeEntry(ctx, e)
}

// DestroyResource removes a resource and destroys it.
//
// The resource is removed whatever the backend's destroy returns. A failed
// destroy is logged but not reported, and may leak whatever the backend
// failed to release.
func (p *Provider[R]) DestroyResource(ctx context.Context, token string, id resource.ID) error {
	release, err := p.enter()
	if err != nil {
		return err
	}
	defer release()

	if err := p.checkToken(token, p.names.Destroy()); err != nil {
		return err
	}
	e, err := p.table.Remove(id)
	if err != nil {
		return err
	}
	p.metrics.tableSize(p.table.Len())

	span, ctx := startBackendSpan(ctx, p.tracer, _opDestroy, e.Backend.Name())
	err = backendError(e.Resource.Destroy(ctx))
	finishBackendSpan(span, id, err)
	if err != nil {
		p.logger.Error("backend could not destroy resource; its state may have leaked",
			zap.Stringer("resourceID", id),
			zap.String("backend", e.Backend.Name()),
			zap.Error(err))
		return nil
	}
	p.logger.Debug("destroyed resource", zap.Stringer("resourceID", id))
	return nil
}

// ListResources returns up to max resource ids, in no particular order.
func (p *Provider[R]) ListResources(_ context.Context, token string, max uint64) ([]resource.ID, error) {
	release, err := p.enter()
	if err != nil {
		return nil, err
	}
	defer release()

	if err := p.checkToken(token, p.names.List()); err != nil {
		return nil, err
	}
	return p.table.IDs(max), nil
}

// GetConfig returns the provider configuration, see Config.
func (p *Provider[R]) GetConfig(_ context.Context, token string) (string, error) {
	release, err := p.enter()
	if err != nil {
		return "", err
	}
	defer release()

	if err := p.checkToken(token, protocol.GetConfig); err != nil {
		return "", err
	}
	return p.Config(), nil
}

type configEntry struct {
	ID     resource.ID     `json:"__id__"`
	Type   string          `json:"type"`
	Config json.RawMessage `json:"config"`
}

type configDocument struct {
	Resources []configEntry `json:"resources"`
}

// Config returns the provider configuration in the format New accepts, each
// resource annotated with its "__id__". A backend configuration that is not
// a JSON object is reported as {}:
//
//	{"resources": [{"__id__": "...", "type": "dummy", "config": {}}]}
func (p *Provider[R]) Config() string {
	entries := p.table.Entries()
	doc := configDocument{Resources: make([]configEntry, 0, len(entries))}
	for _, e := range entries {
		config := json.RawMessage(e.Resource.Config())
		if !isObject(config) {
			config = json.RawMessage(`{}`)
		}
		doc.Resources = append(doc.Resources, configEntry{
			ID:     e.ID,
			Type:   e.Backend.Name(),
			Config: config,
		})
	}
	b, err := json.Marshal(doc)
	if err != nil {
		p.logger.Error("could not encode provider configuration", zap.Error(err))
		return `{"resources":[]}`
	}
	return string(b)
}

func (p *Provider[R]) createOrOpen(ctx context.Context, op, token, backend, config string) (resource.ID, error) {
	release, err := p.enter()
	if err != nil {
		return resource.Nil, err
	}
	defer release()

	procedure := p.names.Create()
	if op == _opOpen {
		procedure = p.names.Open()
	}
	if err := p.checkToken(token, procedure); err != nil {
		return resource.Nil, err
	}
	raw, err := resourceConfig(config)
	if err != nil {
		p.logger.Error("could not parse resource configuration", zap.String("backend", backend), zap.Error(err))
		return resource.Nil, err
	}
	return p.create(ctx, op, backend, raw)
}

func (p *Provider[R]) create(ctx context.Context, op, backend string, config json.RawMessage) (resource.ID, error) {
	b, err := p.backends.Find(backend)
	if err != nil {
		p.logger.Error("could not find backend", zap.String("backend", backend))
		return resource.Nil, err
	}
	id, err := resource.NewID()
	if err != nil {
		return resource.Nil, err
	}

	span, ctx := startBackendSpan(ctx, p.tracer, op, backend)
	var r R
	if op == _opOpen {
		r, err = b.Open(ctx, config)
	} else {
		r, err = b.Create(ctx, config)
	}
	err = backendError(err)
	finishBackendSpan(span, id, err)
	if err != nil {
		p.logger.Error("backend failed", zap.String("backend", backend), zap.String("op", op), zap.Error(err))
		return resource.Nil, err
	}

	if err := p.table.Insert(&resource.Entry[R]{ID: id, Backend: b, Resource: r}); err != nil {
		_ = r.Close(ctx)
		return resource.Nil, err
	}
	p.metrics.tableSize(p.table.Len())
	p.logger.Debug("added resource",
		zap.Stringer("resourceID", id), zap.String("backend", backend), zap.String("op", op))
	return id, nil
}

func (p *Provider[R]) closeEntry(ctx context.Context, e *resource.Entry[R]) error {
	span, ctx := startBackendSpan(ctx, p.tracer, _opClose, e.Backend.Name())
	err := backendError(e.Resource.Close(ctx))
	finishBackendSpan(span, e.ID, err)
	if err != nil {
		p.logger.Error("backend could not close resource",
			zap.Stringer("resourceID", e.ID),
			zap.String("backend", e.Backend.Name()),
			zap.Error(err))
		return err
	}
	p.logger.Debug("closed resource", zap.Stringer("resourceID", e.ID))
	return nil
}

// enter fails unless the provider is running. Until release is called,
// Destroy waits.
func (p *Provider[R]) enter() (release func(), err error) {
	p.mu.RLock()
	if !p.once.IsRunning() {
		p.mu.RUnlock()
		return nil, yarpcerrors.UnavailableErrorf("provider %q is not running", p.service)
	}
	return p.mu.RUnlock, nil
}

func (p *Provider[R]) checkToken(token, procedure string) error {
	if p.token == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(p.token), []byte(token)) == 1 {
		return nil
	}
	p.authLog.invalidToken(procedure)
	return yperrors.InvalidTokenErrorf("invalid token")
}

// backendError gives errors returned by backends a code.
func backendError(err error) error {
	if err == nil || yperrors.IsStatus(err) {
		return err
	}
	return yperrors.OtherErrorf("%v", err)
}
