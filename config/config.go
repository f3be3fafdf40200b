/*
Package config holds the configuration of the txt2svg commands.

Configuration files are TOML or YAML, selected by file extension. Every setting has a
default, so configuration files need only contain what differs from it. Sizes may be
given with units ("64KB"), paths may start with '~'.

Example (TOML):

	[server]
	addr = ":8080"

	[render]
	font = "roboto"
	buffer_size = "128KB"

	[fonts]
	dir = "~/fonts"
	watch = true

	[trace]
	"txt2svg.server" = "Debug"

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/mitchellh/go-homedir"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'txt2svg'
func tracer() tracing.Trace {
	return tracing.Select("txt2svg")
}

// ErrFormat is returned for configuration files of unknown format.
var ErrFormat = errors.New("config: unknown configuration format")

// Config is the complete configuration.
type Config struct {
	Server ServerConfig      `toml:"server" yaml:"server"`
	Render RenderConfig      `toml:"render" yaml:"render"`
	Fonts  FontsConfig       `toml:"fonts" yaml:"fonts"`
	Trace  map[string]string `toml:"trace" yaml:"trace"` // trace key → level
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr         string            `toml:"addr" yaml:"addr"`
	CacheControl string            `toml:"cache_control" yaml:"cache_control"`
	MaxText      datasize.ByteSize `toml:"max_text" yaml:"max_text"` // longer input is rejected
}

// RenderConfig holds rendering defaults.
type RenderConfig struct {
	Text        string            `toml:"text" yaml:"text"`
	Font        string            `toml:"font" yaml:"font"` // registry key
	Color       string            `toml:"color" yaml:"color"`
	BufferSize  datasize.ByteSize `toml:"buffer_size" yaml:"buffer_size"`
	PixelHeight float32           `toml:"pixel_height" yaml:"pixel_height"`
	Flatness    float32           `toml:"flatness" yaml:"flatness"`
	Backend     string            `toml:"backend" yaml:"backend"`
	Approx      bool              `toml:"approx" yaml:"approx"` // use freestanding numerics
}

// FontsConfig tells where to find fonts besides the built-in ones.
type FontsConfig struct {
	Dir   string            `toml:"dir" yaml:"dir"`
	Watch bool              `toml:"watch" yaml:"watch"`
	Files map[string]string `toml:"files" yaml:"files"` // key → font file
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8787",
			CacheControl: "public, max-age=31536000",
			MaxText:      4 * datasize.KB,
		},
		Render: RenderConfig{
			Text:        "Hello World",
			Font:        "goregular",
			Color:       "#000000",
			BufferSize:  64 * datasize.KB,
			PixelHeight: 64,
			Backend:     "sfnt",
		},
		Trace: map[string]string{
			"txt2svg": "Info",
		},
	}
}

// Load reads a configuration file. Settings missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c, err := Decode(bytes.NewReader(data), filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	tracer().Infof("configuration loaded from %s", path)
	return c, nil
}

// Decode reads a configuration in the given format, which is "toml", "yaml" or "yml",
// optionally with a leading dot.
func Decode(r io.Reader, format string) (*Config, error) {
	c := Default()
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "toml":
		if err := toml.NewDecoder(r).Decode(c); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(c); err != nil && err != io.EOF {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	if err := c.expandPaths(); err != nil {
		return nil, err
	}
	return c, c.Validate()
}

func (c *Config) expandPaths() (err error) {
	if c.Fonts.Dir, err = homedir.Expand(c.Fonts.Dir); err != nil {
		return
	}
	for key, path := range c.Fonts.Files {
		if c.Fonts.Files[key], err = homedir.Expand(path); err != nil {
			return
		}
	}
	return
}

// Validate checks settings which have no sensible fallback.
func (c *Config) Validate() error {
	if c.Render.BufferSize < 512 {
		return fmt.Errorf("config: buffer size %s too small", c.Render.BufferSize.HumanReadable())
	}
	if c.Render.PixelHeight <= 0 {
		return errors.New("config: pixel height must be positive")
	}
	if c.Render.Flatness < 0 {
		return errors.New("config: flatness must not be negative")
	}
	for key, level := range c.Trace {
		switch level {
		case "Debug", "Info", "Error":
		default:
			return fmt.Errorf("config: invalid trace level %q for %s", level, key)
		}
	}
	return nil
}
