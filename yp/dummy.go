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
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/ypservice/yp/yperrors"
	"go.uber.org/zap"
)

// DummyBackendName is the type name of the dummy backend.
const DummyBackendName = "dummy"

// NewDummyBackend returns the demonstration backend. Its phonebooks keep
// their configuration in memory, log a greeting on hello and add numbers.
func NewDummyBackend(logger *zap.Logger) Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return dummyBackend{logger: logger.Named(DummyBackendName)}
}

type dummyBackend struct {
	logger *zap.Logger
}

func (b dummyBackend) Name() string {
	return DummyBackendName
}

func (b dummyBackend) Create(_ context.Context, config json.RawMessage) (Phonebook, error) {
	return b.newPhonebook(config)
}

func (b dummyBackend) Open(_ context.Context, config json.RawMessage) (Phonebook, error) {
	return b.newPhonebook(config)
}

func (b dummyBackend) newPhonebook(config json.RawMessage) (Phonebook, error) {
	fields := make(map[string]interface{})
	if len(bytes.TrimSpace(config)) > 0 {
		var parsed map[string]interface{}
		if err := json.Unmarshal(config, &parsed); err != nil || parsed == nil {
			b.logger.Error("could not parse phonebook configuration", zap.ByteString("config", config))
			return nil, yperrors.InvalidConfigErrorf("dummy phonebook configuration must be a JSON object")
		}
		fields = parsed
	}
	return &dummyPhonebook{logger: b.logger, config: fields}, nil
}

type dummyPhonebook struct {
	logger *zap.Logger

	mu     sync.Mutex
	config map[string]interface{}
}

func (p *dummyPhonebook) Close(context.Context) error {
	p.release()
	return nil
}

func (p *dummyPhonebook) Destroy(context.Context) error {
	p.release()
	return nil
}

func (p *dummyPhonebook) release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.config = nil
}

func (p *dummyPhonebook) Config() string {
	return "{}"
}

func (p *dummyPhonebook) Hello(context.Context) {
	p.logger.Info("Hello World from Dummy phonebook")
}

func (p *dummyPhonebook) Sum(_ context.Context, x, y int32) int32 {
	return x + y
}
