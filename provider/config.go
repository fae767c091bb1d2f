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
	"bytes"
	"encoding/json"

	"github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally"
	"github.com/ypservice/yp/protocol"
	"github.com/ypservice/yp/resource"
	"github.com/ypservice/yp/yperrors"
	"go.uber.org/zap"
)

// Config configures a Provider.
type Config[R resource.Resource] struct {
	// Names of the resource family. Required.
	Names protocol.Names

	// ID distinguishes providers of the same family within a process.
	ID uint16

	// Token gates the admin procedures. An empty token disables
	// authentication.
	Token string

	// JSON is the provider configuration, e.g.
	//
	//  {"resources": [{"type": "dummy", "config": {}}]}
	//
	// Every entry of "resources" is created when the provider is
	// registered. Defaults to "{}".
	JSON string

	// Backends available to create and open, in addition to those added
	// with RegisterBackend.
	Backends []resource.Backend[R]

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// Scope receives the provider's metrics. Defaults to tally.NoopScope.
	Scope tally.Scope

	// Tracer traces backend calls. Defaults to the global tracer.
	Tracer opentracing.Tracer
}

// bootstrapResource is one entry of the "resources" list.
type bootstrapResource struct {
	Type   string
	Config json.RawMessage
}

// parseProviderConfig parses the provider configuration and returns the
// resources it lists. Entries that cannot be used are skipped with a
// warning; only a document that is not a JSON object is an error.
func parseProviderConfig(text string, logger *zap.Logger) ([]bootstrapResource, error) {
	if len(bytes.TrimSpace([]byte(text))) == 0 {
		return nil, nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &doc); err != nil || doc == nil {
		return nil, yperrors.InvalidConfigErrorf("provider configuration is not a JSON object")
	}

	raw, ok := doc["resources"]
	if !ok {
		return nil, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		logger.Warn(`ignoring "resources": not an array`, zap.Error(err))
		return nil, nil
	}

	resources := make([]bootstrapResource, 0, len(entries))
	for i, entry := range entries {
		r, err := parseBootstrapResource(entry)
		if err != nil {
			logger.Warn("skipping resource in provider configuration", zap.Int("index", i), zap.Error(err))
			continue
		}
		resources = append(resources, r)
	}
	return resources, nil
}

func parseBootstrapResource(entry json.RawMessage) (bootstrapResource, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry, &fields); err != nil || fields == nil {
		return bootstrapResource{}, yperrors.InvalidConfigErrorf("resource entry is not an object")
	}

	var r bootstrapResource
	rawType, ok := fields["type"]
	if !ok {
		return bootstrapResource{}, yperrors.InvalidConfigErrorf(`resource entry has no "type"`)
	}
	if err := json.Unmarshal(rawType, &r.Type); err != nil {
		return bootstrapResource{}, yperrors.InvalidConfigErrorf(`resource "type" is not a string`)
	}

	r.Config = json.RawMessage(`{}`)
	if rawConfig, ok := fields["config"]; ok {
		if !isObject(rawConfig) {
			return bootstrapResource{}, yperrors.InvalidConfigErrorf(`"config" of %q resource is not an object`, r.Type)
		}
		r.Config = rawConfig
	}
	return r, nil
}

// resourceConfig validates the configuration passed to create or open.
// Empty text stands for an empty object.
func resourceConfig(text string) (json.RawMessage, error) {
	b := bytes.TrimSpace([]byte(text))
	if len(b) == 0 {
		return json.RawMessage(`{}`), nil
	}
	if !json.Valid(b) {
		return nil, yperrors.InvalidConfigErrorf("resource configuration is not valid JSON")
	}
	return json.RawMessage(b), nil
}

func isObject(raw json.RawMessage) bool {
	var obj map[string]json.RawMessage
	return json.Unmarshal(raw, &obj) == nil && obj != nil
}
