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

// Package resource holds the pieces of a provider that do not depend on the
// RPC layer: resource identifiers, the backend contract, the backend
// registry and the resource table.
package resource

import (
	"context"
	"encoding/json"

	"github.com/ypservice/yp/yperrors"
)

// Resource is the state a backend keeps for one created or opened resource.
// Entity packages extend it with their own operations.
type Resource interface {
	// Close releases the resource. It is called by the close operation
	// and when the provider is destroyed.
	Close(ctx context.Context) error

	// Destroy releases the resource and whatever backs it.
	Destroy(ctx context.Context) error

	// Config returns the resource configuration as JSON text.
	Config() string
}

// Backend creates resources of one type.
type Backend[R Resource] interface {
	// Name is the type name clients pass to create and open.
	Name() string

	// Create creates a new resource from its JSON configuration.
	Create(ctx context.Context, config json.RawMessage) (R, error)

	// Open attaches to an existing resource described by its JSON
	// configuration.
	Open(ctx context.Context, config json.RawMessage) (R, error)
}

// BackendFuncs adapts plain functions to the Backend interface.
//
// OpenFunc may be nil, in which case Open fails with CodeOpUnsupported.
type BackendFuncs[R Resource] struct {
	BackendName string
	CreateFunc  func(context.Context, json.RawMessage) (R, error)
	OpenFunc    func(context.Context, json.RawMessage) (R, error)
}

var _ Backend[Resource] = BackendFuncs[Resource]{}

// Name returns BackendName.
func (b BackendFuncs[R]) Name() string {
	return b.BackendName
}

// Create calls CreateFunc.
func (b BackendFuncs[R]) Create(ctx context.Context, config json.RawMessage) (R, error) {
	if b.CreateFunc == nil {
		var zero R
		return zero, yperrors.OpUnsupportedErrorf("backend %q does not support create", b.BackendName)
	}
	return b.CreateFunc(ctx, config)
}

// Open calls OpenFunc.
func (b BackendFuncs[R]) Open(ctx context.Context, config json.RawMessage) (R, error) {
	if b.OpenFunc == nil {
		var zero R
		return zero, yperrors.OpUnsupportedErrorf("backend %q does not support open", b.BackendName)
	}
	return b.OpenFunc(ctx, config)
}
