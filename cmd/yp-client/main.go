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

// yp-client calls a phonebook.
//
//	yp-client [flags] hello <id>
//	yp-client [flags] sum <id> <x> <y>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/ypservice/yp/internal/cli"
	"github.com/ypservice/yp/resource"
	"github.com/ypservice/yp/yp"
	"github.com/ypservice/yp/ypconfig"
	"go.uber.org/zap"
)

var errUsage = errors.New("usage: yp-client [flags] hello <id> | sum <id> <x> <y>")

func main() {
	if err := do(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func do(args []string, stdout io.Writer) error {
	var (
		outbound cli.Outbound
		flagSet  = flag.NewFlagSet("yp-client", flag.ContinueOnError)

		providerID = flagSet.Uint("provider", 42, "id of the provider")
		timeout    = flagSet.Duration("timeout", time.Second, "timeout of the request")
		verbose    = flagSet.Bool("v", false, "log requests")
	)
	outbound.RegisterFlags(flagSet)
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if *providerID > 0xffff {
		return fmt.Errorf("invalid provider id: %d", *providerID)
	}
	args = flagSet.Args()
	if len(args) < 2 {
		return errUsage
	}
	id, err := resource.ParseID(args[1])
	if err != nil {
		return err
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger, err := ypconfig.LoggingConfig{Level: level, Development: true}.Build()
	if err != nil {
		return err
	}
	defer logger.Sync()

	d, err := cli.NewDispatcher("yp-client", yp.Names.Service, outbound, logger)
	if err != nil {
		return err
	}
	if err := d.Start(); err != nil {
		return fmt.Errorf("failed to start Dispatcher: %v", err)
	}
	defer d.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	phonebook := yp.NewClient(d.ClientConfig(yp.Names.Service)).Handle(uint16(*providerID), id)
	switch args[0] {
	case "hello":
		if len(args) != 2 {
			return errUsage
		}
		if err := phonebook.Hello(ctx); err != nil {
			return err
		}
		logger.Debug("sent hello", zap.Stringer("resourceID", id))
		return nil

	case "sum":
		if len(args) != 4 {
			return errUsage
		}
		x, err := strconv.ParseInt(args[2], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid x: %v", err)
		}
		y, err := strconv.ParseInt(args[3], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid y: %v", err)
		}
		sum, err := phonebook.Sum(ctx, int32(x), int32(y))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, sum)
		return err

	default:
		return errUsage
	}
}
