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

// yp-admin manages the phonebooks of a provider.
//
//	yp-admin [flags] create <backend> [config]
//	yp-admin [flags] open <backend> [config]
//	yp-admin [flags] close <id>
//	yp-admin [flags] destroy <id>
//	yp-admin [flags] list [max]
//	yp-admin [flags] config
//	yp-admin [flags] shell
//
// The shell command reads commands from stdin, one per line, with shell
// quoting:
//
//	create dummy '{"name": "work"}'
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-shellwords"
	"github.com/ypservice/yp/admin"
	"github.com/ypservice/yp/internal/cli"
	"github.com/ypservice/yp/resource"
	"github.com/ypservice/yp/yp"
	"github.com/ypservice/yp/ypconfig"
	"go.uber.org/zap"
)

const _defaultMaxIDs = 100

var errUsage = errors.New("usage: yp-admin [flags] create|open|close|destroy|list|config|shell [args]")

func main() {
	if err := do(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func do(args []string, stdin io.Reader, stdout io.Writer) error {
	var (
		outbound cli.Outbound
		flagSet  = flag.NewFlagSet("yp-admin", flag.ContinueOnError)

		providerID = flagSet.Uint("provider", 42, "id of the provider")
		token      = flagSet.String("token", "", "provider token")
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
	if len(args) == 0 {
		return errUsage
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

	d, err := cli.NewDispatcher("yp-admin", yp.Names.Service, outbound, logger)
	if err != nil {
		return err
	}
	if err := d.Start(); err != nil {
		return fmt.Errorf("failed to start Dispatcher: %v", err)
	}
	defer d.Stop()

	c := command{
		client:     yp.NewAdmin(d.ClientConfig(yp.Names.Service)),
		providerID: uint16(*providerID),
		token:      *token,
		timeout:    *timeout,
		stdout:     stdout,
		logger:     logger,
	}
	if args[0] == "shell" {
		return c.shell(stdin)
	}
	return c.run(args[0], args[1:])
}

type command struct {
	client     *admin.Client
	providerID uint16
	token      string
	timeout    time.Duration
	stdout     io.Writer
	logger     *zap.Logger
}

// shell runs commands read from r until it is exhausted or reads "exit".
// A failed command is reported and does not stop the shell.
func (c command) shell(r io.Reader) error {
	parser := shellwords.NewParser()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		args, err := parser.Parse(scanner.Text())
		if err != nil {
			fmt.Fprintln(c.stdout, "error:", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			return nil
		}
		if args[0] == "shell" {
			fmt.Fprintln(c.stdout, "error: already in a shell")
			continue
		}
		if err := c.run(args[0], args[1:]); err != nil {
			fmt.Fprintln(c.stdout, "error:", err)
		}
	}
	return scanner.Err()
}

func (c command) run(name string, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	err := c.do(ctx, name, args)
	if err != nil {
		c.logger.Debug("command failed", zap.String("command", name), zap.Error(err))
	}
	return err
}

func (c command) do(ctx context.Context, name string, args []string) error {
	switch name {
	case "create", "open":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("usage: yp-admin %s <backend> [config]", name)
		}
		config := ""
		if len(args) == 2 {
			config = args[1]
		}
		create := c.client.Create
		if name == "open" {
			create = c.client.Open
		}
		id, err := create(ctx, c.providerID, c.token, args[0], config)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.stdout, id)
		return err

	case "close", "destroy":
		if len(args) != 1 {
			return fmt.Errorf("usage: yp-admin %s <id>", name)
		}
		id, err := resource.ParseID(args[0])
		if err != nil {
			return err
		}
		if name == "close" {
			return c.client.Close(ctx, c.providerID, c.token, id)
		}
		return c.client.Destroy(ctx, c.providerID, c.token, id)

	case "list":
		max := uint64(_defaultMaxIDs)
		if len(args) > 1 {
			return errors.New("usage: yp-admin list [max]")
		}
		if len(args) == 1 {
			var err error
			if max, err = strconv.ParseUint(args[0], 10, 64); err != nil {
				return fmt.Errorf("invalid max: %v", err)
			}
		}
		ids, err := c.client.List(ctx, c.providerID, c.token, max)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if _, err := fmt.Fprintln(c.stdout, id); err != nil {
				return err
			}
		}
		return nil

	case "config":
		config, err := c.client.Config(ctx, c.providerID, c.token)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.stdout, config)
		return err

	default:
		return errUsage
	}
}
