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

package protocol

import (
	"sync"

	"go.uber.org/yarpc/api/transport"
	"go.uber.org/yarpc/encoding/json"
)

// Clients hands out JSON clients addressed to individual providers. All
// clients share the outbounds of one ClientConfig; only the service name
// differs.
type Clients struct {
	cc    transport.ClientConfig
	names Names

	mu      sync.Mutex
	clients map[uint16]json.Client
}

// NewClients builds a Clients for the given outbounds.
func NewClients(cc transport.ClientConfig, names Names) *Clients {
	return &Clients{
		cc:      cc,
		names:   names,
		clients: make(map[uint16]json.Client),
	}
}

// Names returns the names the clients are addressed with.
func (c *Clients) Names() Names {
	return c.names
}

// Get returns the JSON client for the provider with the given id.
func (c *Clients) Get(providerID uint16) json.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	client, ok := c.clients[providerID]
	if !ok {
		client = json.New(providerClientConfig{
			ClientConfig: c.cc,
			service:      c.names.ServiceName(providerID),
		})
		c.clients[providerID] = client
	}
	return client
}

// SupportsOneway reports whether the outbounds can carry oneway calls.
// YARPC panics when a oneway call is made without a oneway outbound, and so
// may GetOnewayOutbound on other ClientConfig implementations; such a panic
// means no.
func (c *Clients) SupportsOneway() (supported bool) {
	if oc, ok := c.cc.(*transport.OutboundConfig); ok {
		return oc.Outbounds.Oneway != nil
	}
	defer func() {
		if recover() != nil {
			supported = false
		}
	}()
	return c.cc.GetOnewayOutbound() != nil
}

// providerClientConfig addresses requests to one provider's service.
type providerClientConfig struct {
	transport.ClientConfig

	service string
}

func (c providerClientConfig) Service() string {
	return c.service
}
