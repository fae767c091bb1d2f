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

package provider

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ypservice/yp/protocol"
	"github.com/ypservice/yp/yperrors"
	"go.uber.org/yarpc"
	"go.uber.org/yarpc/transport/http"
	"go.uber.org/zap/zaptest"
)

const (
	_token      = "ABCDEFGH"
	_wrongToken = "HGFEDCBA"
)

var _testNames = protocol.Names{Service: "test", Kind: "thing"}

// thing is the resource served by the providers under test.
type thing struct {
	config string

	mu         sync.Mutex
	closed     int
	destroyed  int
	closeErr   error
	destroyErr error
}

func (r *thing) Close(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
	return r.closeErr
}

func (r *thing) Destroy(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destroyed++
	return r.destroyErr
}

func (r *thing) Config() string { return r.config }

func (r *thing) counts() (closed, destroyed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed, r.destroyed
}

// thingBackend records every thing it creates.
type thingBackend struct {
	name string

	mu      sync.Mutex
	created []*thing
	// configure, if set, is applied to each new thing.
	configure func(*thing)
}

func (b *thingBackend) Name() string { return b.name }

func (b *thingBackend) Create(_ context.Context, config json.RawMessage) (*thing, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal(config, &obj); err != nil || obj == nil {
		return nil, yperrors.InvalidConfigErrorf("config must be an object")
	}
	t := &thing{config: string(config)}
	if b.configure != nil {
		b.configure(t)
	}
	b.mu.Lock()
	b.created = append(b.created, t)
	b.mu.Unlock()
	return t, nil
}

func (b *thingBackend) Open(context.Context, json.RawMessage) (*thing, error) {
	return nil, errors.New("nothing to open")
}

func (b *thingBackend) things() []*thing {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*thing(nil), b.created...)
}

func newDispatcher(t *testing.T) *yarpc.Dispatcher {
	return yarpc.NewDispatcher(yarpc.Config{
		Name:     "test",
		Inbounds: yarpc.Inbounds{http.NewTransport().NewInbound("127.0.0.1:0")},
	})
}

// newProvider builds and registers a provider on a dispatcher that is not
// started.
func newProvider(t *testing.T, cfg Config[*thing]) *Provider[*thing] {
	if cfg.Names == (protocol.Names{}) {
		cfg.Names = _testNames
	}
	if cfg.Logger == nil {
		cfg.Logger = zaptest.NewLogger(t)
	}
	p, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, p.Register(newDispatcher(t)))
	t.Cleanup(func() { _ = p.Destroy(context.Background()) })
	return p
}
