/*
Command svgserve runs the txt2svg HTTP service.

	svgserve -config txt2svg.toml

The service answers GET /service?text=...&font=...&color=... with an SVG document.
If the configuration names a font directory with watching enabled, fonts dropped into
or removed from that directory are picked up without a restart.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/txt2svg/config"
	"github.com/npillmayer/txt2svg/internal/fontload"
	"github.com/npillmayer/txt2svg/server"
	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"
)

// tracer traces with key 'txt2svg.server'
func tracer() tracing.Trace {
	return tracing.Select("txt2svg.server")
}

func main() {
	conffile := flag.String("config", "", "Configuration file (TOML or YAML)")
	addr := flag.String("addr", "", "Listen address, overrides configuration")
	flag.Parse()

	conf := config.Default()
	if *conffile != "" {
		var err error
		if conf, err = config.Load(*conffile); err != nil {
			pterm.Error.Println(err)
			os.Exit(2)
		}
	}
	if *addr != "" {
		conf.Server.Addr = *addr
	}
	if err := conf.SetupTracing(); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, conf); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
}

func run(ctx context.Context, conf *config.Config) error {
	fonts := fontload.NewRegistry()
	for key, path := range conf.Fonts.Files {
		if err := fonts.AddFile(key, path); err != nil {
			return err
		}
	}
	dir := conf.Fonts.Dir
	if dir != "" {
		if _, err := fonts.ScanDir(dir); err != nil {
			return err
		}
	}
	if _, err := fonts.Lookup(conf.Render.Font); err != nil {
		return fmt.Errorf("default font: %w", err)
	}
	g, ctx := errgroup.WithContext(ctx)
	if dir != "" && conf.Fonts.Watch {
		w, err := fonts.Watch(dir)
		if err != nil {
			return err
		}
		g.Go(func() error {
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		})
	}
	srv := &http.Server{
		Addr:              conf.Server.Addr,
		Handler:           server.New(fonts, conf).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		pterm.Info.Printf("txt2svg service listening on %s\n", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	})
	return g.Wait()
}
