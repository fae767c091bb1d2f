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

	"github.com/ypservice/yp/admin"
	"github.com/ypservice/yp/protocol"
	"github.com/ypservice/yp/resource"
	"github.com/ypservice/yp/yperrors"
	"go.uber.org/yarpc/api/transport"
)

// NewAdmin returns a client of the admin procedures of phonebook providers.
func NewAdmin(cc transport.ClientConfig) *admin.Client {
	return admin.New(cc, Names)
}

// Client calls the phonebooks of the providers reachable through one set
// of outbounds.
type Client struct {
	clients *protocol.Clients
}

// NewClient builds a Client.
func NewClient(cc transport.ClientConfig) *Client {
	return &Client{clients: protocol.NewClients(cc, Names)}
}

// Handle returns a handle on the phonebook id of the given provider. No
// request is made: a handle on a phonebook that does not exist fails on
// use.
func (c *Client) Handle(providerID uint16, id resource.ID) *PhonebookHandle {
	return &PhonebookHandle{
		client:     c,
		providerID: providerID,
		id:         id,
	}
}

// PhonebookHandle calls one phonebook. Handles are safe for concurrent use.
type PhonebookHandle struct {
	client     *Client
	providerID uint16
	id         resource.ID
}

// ProviderID returns the id of the provider holding the phonebook.
func (h *PhonebookHandle) ProviderID() uint16 {
	return h.providerID
}

// ID returns the id of the phonebook.
func (h *PhonebookHandle) ID() resource.ID {
	return h.id
}

// Hello asks the phonebook to say hello. The call is oneway: a nil error
// means the request was delivered, not that the phonebook exists.
//
// Hello fails with CodeOpUnsupported if the outbounds cannot carry oneway
// calls.
func (h *PhonebookHandle) Hello(ctx context.Context) error {
	if !h.client.clients.SupportsOneway() {
		return yperrors.OpUnsupportedErrorf("hello needs a oneway outbound for %q", Names.ServiceName(h.providerID))
	}
	req := &helloRequest{ResourceID: h.id}
	if _, err := h.client.clients.Get(h.providerID).CallOneway(ctx, _procHello, req); err != nil {
		return yperrors.FromTransport(err)
	}
	return nil
}

// Sum asks the phonebook to add x and y.
func (h *PhonebookHandle) Sum(ctx context.Context, x, y int32) (int32, error) {
	var res sumResponse
	req := &sumRequest{ResourceID: h.id, X: x, Y: y}
	if err := h.client.clients.Get(h.providerID).Call(ctx, _procSum, req, &res); err != nil {
		return 0, yperrors.FromTransport(err)
	}
	if err := yperrors.FromRet(res.Ret, _procSum); err != nil {
		return 0, err
	}
	return res.Result, nil
}
