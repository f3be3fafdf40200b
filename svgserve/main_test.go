package main

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/txt2svg/config"
	"github.com/npillmayer/txt2svg/internal/fontload"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/font/gofont/gomono"
)

func TestRunUnknownDefaultFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg.server")
	defer teardown()
	//
	conf := config.Default()
	conf.Render.Font = "roboto"
	err := run(context.Background(), conf)
	assert.ErrorIs(t, err, fontload.ErrUnknownFont)
}

func TestRunUnknownDefaultFontStartsNoWatcher(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg.server")
	defer teardown()
	//
	before := runtime.NumGoroutine()
	conf := config.Default()
	conf.Render.Font = "roboto"
	conf.Fonts.Dir = t.TempDir()
	conf.Fonts.Watch = true
	err := run(context.Background(), conf)
	assert.ErrorIs(t, err, fontload.ErrUnknownFont)
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 20*time.Millisecond, "no goroutine may outlive a failed start")
}

func TestRunStopsOnCancel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "txt2svg.server")
	defer teardown()
	//
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "Roboto.ttf"), gomono.TTF, 0o644))
	conf := config.Default()
	conf.Server.Addr = "127.0.0.1:0"
	conf.Render.Font = "roboto"
	conf.Fonts.Dir = dir
	conf.Fonts.Watch = true
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	assert.NoError(t, run(ctx, conf))
}
