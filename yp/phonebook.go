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

// Package yp serves phonebooks.
//
// A phonebook is a resource that can say hello and add numbers. Phonebook
// providers are registered on a YARPC dispatcher with Register, administered
// with the client returned by NewAdmin, and used through the handles of a
// Client.
//
//	p, err := yp.Register(dispatcher, yp.ProviderConfig{ID: 42, Token: token})
//	...
//	id, err := yp.NewAdmin(cc).Create(ctx, 42, token, "dummy", `{}`)
//	...
//	sum, err := yp.NewClient(cc).Handle(42, id).Sum(ctx, 45, 55)
package yp

import (
	"context"

	"github.com/ypservice/yp/protocol"
	"github.com/ypservice/yp/provider"
	"github.com/ypservice/yp/resource"
)

// Names of the phonebook procedures. Provider 42 serves them as "yp-42".
var Names = protocol.Names{Service: "yp", Kind: "phonebook"}

const (
	_procHello = "hello"
	_procSum   = "sum"
)

// Phonebook is the resource served by phonebook providers.
type Phonebook interface {
	resource.Resource

	// Hello greets whoever is listening.
	Hello(ctx context.Context)

	// Sum returns x+y. Overflow wraps around.
	Sum(ctx context.Context, x, y int32) int32
}

// Backend creates phonebooks.
type Backend = resource.Backend[Phonebook]

// Provider serves phonebooks.
type Provider = provider.Provider[Phonebook]

type helloRequest struct {
	ResourceID resource.ID `json:"resource_id"`
}

type sumRequest struct {
	ResourceID resource.ID `json:"resource_id"`
	X          int32       `json:"x"`
	Y          int32       `json:"y"`
}

type sumResponse struct {
	Result int32 `json:"result"`
	Ret    int32 `json:"ret"`
}
