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

// yp-server serves phonebook providers.
//
//	yp-server -config yp.yaml
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ypservice/yp/internal/server"
	"github.com/ypservice/yp/ypconfig"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	if err := do(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func do(args []string) error {
	flagSet := flag.NewFlagSet("yp-server", flag.ContinueOnError)
	configPath := flagSet.String("config", "yp.yaml", "path to the YAML configuration")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	f, err := os.Open(*configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	cfg, err := ypconfig.New().LoadFromYAML(f)
	if err != nil {
		return fmt.Errorf("could not load %q: %v", *configPath, err)
	}

	app := fx.New(
		fx.Supply(cfg),
		server.Module,
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
	)
	if err := app.Err(); err != nil {
		return err
	}
	app.Run()
	return nil
}
