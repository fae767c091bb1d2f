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

// Package protocol defines the procedures a provider serves and the JSON
// bodies they exchange.
package protocol

import "strconv"

// GetConfig is the procedure returning a provider's configuration.
const GetConfig = "get_config"

// Names identifies a family of resources served by providers.
type Names struct {
	// Service is the base of the YARPC service name. The provider id is
	// appended to it, so a "yp" provider with id 42 serves "yp-42".
	Service string

	// Kind names one resource in procedure names, e.g. "phonebook".
	Kind string
}

// ServiceName returns the YARPC service served by the provider with the
// given id.
func (n Names) ServiceName(providerID uint16) string {
	return n.Service + "-" + strconv.Itoa(int(providerID))
}

// Create returns the name of the create procedure.
func (n Names) Create() string { return "create_" + n.Kind }

// Open returns the name of the open procedure.
func (n Names) Open() string { return "open_" + n.Kind }

// Close returns the name of the close procedure.
func (n Names) Close() string { return "close_" + n.Kind }

// Destroy returns the name of the destroy procedure.
func (n Names) Destroy() string { return "destroy_" + n.Kind }

// List returns the name of the list procedure.
func (n Names) List() string { return "list_" + n.Kind + "s" }
