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

package yp

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally"
	"github.com/ypservice/yp/provider"
	"github.com/ypservice/yp/yperrors"
	"go.uber.org/yarpc"
	"go.uber.org/yarpc/api/transport"
	"go.uber.org/yarpc/encoding/json"
	"go.uber.org/zap"
)

// ProviderConfig configures a phonebook provider.
type ProviderConfig struct {
	// ID of the provider, unique within the dispatcher.
	ID uint16

	// Token gates the admin procedures. Empty disables authentication.
	Token string

	// JSON provider configuration, listing the phonebooks to create when
	// the provider is registered:
	//
	//  {"resources": [{"type": "dummy", "config": {}}]}
	JSON string

	// Backends in addition to the dummy backend, which every phonebook
	// provider has.
	Backends []Backend

	Logger *zap.Logger
	Scope  tally.Scope
	Tracer opentracing.Tracer
}

// NewProvider builds a phonebook provider.
func NewProvider(cfg ProviderConfig) (*Provider, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	backends := append([]Backend{NewDummyBackend(logger)}, cfg.Backends...)
	return provider.New(provider.Config[Phonebook]{
		Names:    Names,
		ID:       cfg.ID,
		Token:    cfg.Token,
		JSON:     cfg.JSON,
		Backends: backends,
		Logger:   logger,
		Scope:    cfg.Scope,
		Tracer:   cfg.Tracer,
	})
}

// Register builds a phonebook provider and registers it on the dispatcher.
func Register(d *yarpc.Dispatcher, cfg ProviderConfig) (*Provider, error) {
	p, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	if err := p.Register(d, Procedures(p)...); err != nil {
		return nil, err
	}
	return p, nil
}

// Procedures returns the phonebook procedures served by p: hello and sum.
// Register adds them to the provider's admin procedures.
func Procedures(p *Provider) []transport.Procedure {
	h := handler{p: p}
	hello := json.OnewayProcedure(_procHello, h.hello)[0]
	hello.Signature = `hello({"resource_id": "..."})`
	sum := json.Procedure(_procSum, h.sum)[0]
	sum.Signature = `sum({"resource_id": "...", "x": 0, "y": 0}) -> {"result": 0, "ret": 0}`
	return []transport.Procedure{hello, sum}
}

type handler struct {
	p *Provider
}

func (h handler) hello(ctx context.Context, req *helloRequest) error {
	err := h.p.Do(ctx, _procHello, req.ResourceID, func(ctx context.Context, pb Phonebook) error {
		pb.Hello(ctx)
		return nil
	})
	h.p.RecordCall(_procHello, err)
	if yperrors.IsStatus(err) {
		// hello has no response to carry the error.
		h.p.Logger().Warn("dropping hello for unknown phonebook",
			zap.Stringer("resourceID", req.ResourceID), zap.Error(err))
		return nil
	}
	return err
}

func (h handler) sum(ctx context.Context, req *sumRequest) (*sumResponse, error) {
	var result int32
	err := h.p.Do(ctx, _procSum, req.ResourceID, func(ctx context.Context, pb Phonebook) error {
		result = pb.Sum(ctx, req.X, req.Y)
		return nil
	})
	h.p.RecordCall(_procSum, err)
	ret, err := provider.Result(err)
	if err != nil {
		return nil, err
	}
	return &sumResponse{Result: result, Ret: ret}, nil
}
