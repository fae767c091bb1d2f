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

package resource

import (
	"sync"

	"github.com/ypservice/yp/yperrors"
)

// Registry maps type names to backends. Names are unique; the registry only
// grows for the lifetime of its provider.
type Registry[R Resource] struct {
	mu       sync.RWMutex
	backends []Backend[R]
	byName   map[string]Backend[R]
}

// NewRegistry builds an empty Registry.
func NewRegistry[R Resource]() *Registry[R] {
	return &Registry[R]{byName: make(map[string]Backend[R])}
}

// Register adds a backend to the registry.
//
// It fails with CodeInvalidArgs if the backend is nil or has no name, and
// with CodeInvalidBackend if a backend with the same name is already
// registered.
func (r *Registry[R]) Register(b Backend[R]) error {
	if b == nil {
		return yperrors.InvalidArgsErrorf("cannot register a nil backend")
	}
	name := b.Name()
	if name == "" {
		return yperrors.InvalidArgsErrorf("cannot register a backend without a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[name]; ok {
		return yperrors.InvalidBackendErrorf("backend %q is already registered", name)
	}
	r.backends = append(r.backends, b)
	r.byName[name] = b
	return nil
}

// Find returns the backend registered under name.
func (r *Registry[R]) Find(name string) (Backend[R], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byName[name]
	if !ok {
		return nil, yperrors.InvalidBackendErrorf("unknown backend type %q", name)
	}
	return b, nil
}

// Names returns the names of the registered backends in registration order.
func (r *Registry[R]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.backends))
	for i, b := range r.backends {
		names[i] = b.Name()
	}
	return names
}
