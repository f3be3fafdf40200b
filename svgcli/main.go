/*
Command svgcli renders text to SVG on the command line.

	svgcli -font lmroman -text "Hello World" -color 336699 -o hello.svg

Fonts are given by registry key (see -fonts) or by file path. With -png, a raster
preview of the same layout is written as well. With -i, svgcli enters interactive
mode: every line typed is rendered, lines starting with ':' are commands (try :help).
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/txt2svg"
	"github.com/npillmayer/txt2svg/config"
	"github.com/npillmayer/txt2svg/fpmath"
	"github.com/npillmayer/txt2svg/internal/fontload"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/norm"
)

// tracer traces with key 'txt2svg.cli'
func tracer() tracing.Trace {
	return tracing.Select("txt2svg.cli")
}

func main() {
	initDisplay()

	// command line flags
	conffile := flag.String("config", "", "Configuration file (TOML or YAML)")
	tlevel := flag.String("trace", "", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to use: registry key or font file")
	text := flag.String("text", "", "Text to render")
	color := flag.String("color", "", "Fill color, hex RGB (default #ffffff)")
	outfile := flag.String("o", "", "Output file, default is stdout")
	pngfile := flag.String("png", "", "Write a PNG preview to this file")
	backend := flag.String("backend", "", "Font parser [sfnt|gotext]")
	approx := flag.Bool("approx", false, "Use freestanding numerics for curve flattening")
	flatness := flag.Float64("flatness", -1, "Flatten curves to lines with this tolerance (pixels)")
	height := flag.Float64("height", 0, "Text height in pixels")
	listFonts := flag.Bool("fonts", false, "List available fonts and exit")
	interactive := flag.Bool("i", false, "Interactive mode")
	flag.Parse()

	conf := config.Default()
	if *conffile != "" {
		var err error
		if conf, err = config.Load(*conffile); err != nil {
			pterm.Error.Println(err)
			os.Exit(2)
		}
	}
	// set up logging
	if err := conf.SetupTracing(); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	if *tlevel != "" && !config.SetLevel(tracer(), *tlevel) {
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	// command line flags override configuration
	rc := &conf.Render
	setIf(&rc.Font, *fontname)
	setIf(&rc.Text, *text)
	setIf(&rc.Backend, *backend)
	if *conffile == "" {
		rc.Color = "#ffffff"
	}
	setIf(&rc.Color, *color)
	rc.Approx = rc.Approx || *approx
	if *flatness >= 0 {
		rc.Flatness = float32(*flatness)
	}
	if *height > 0 {
		rc.PixelHeight = float32(*height)
	}
	//
	intp := &Intp{conf: conf, fonts: fontload.NewRegistry(), outfile: *outfile, pngfile: *pngfile}
	if err := intp.loadFonts(); err != nil {
		pterm.Error.Println(err)
		os.Exit(3)
	}
	if *listFonts {
		intp.printFonts()
		return
	}
	if err := intp.selectFont(rc.Font); err != nil {
		pterm.Error.Println(err)
		os.Exit(4)
	}
	if err := intp.setColor(rc.Color); err != nil {
		pterm.Error.Println(err)
		os.Exit(4)
	}
	if !*interactive {
		if err := intp.render(rc.Text); err != nil {
			pterm.Error.Println(err)
			os.Exit(6)
		}
		return
	}
	//
	// set up REPL
	repl, err := readline.New("svg > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp.repl = repl
	pterm.Info.Println("Welcome to txt2svg CLI")
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                             // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setIf(s *string, value string) {
	if value != "" {
		*s = value
	}
}

// options translates the render configuration into rendering options.
func (intp *Intp) options() []txt2svg.Option {
	rc := intp.conf.Render
	opts := []txt2svg.Option{
		txt2svg.WithPixelHeight(rc.PixelHeight),
		txt2svg.WithFlatness(rc.Flatness),
		txt2svg.WithBufferSize(int(rc.BufferSize.Bytes())),
	}
	if rc.Approx {
		opts = append(opts, txt2svg.WithNumeric(fpmath.Approx{}))
	}
	return opts
}

// normalize prepares user input for rendering.
func normalize(text string) string {
	return norm.NFC.String(text)
}
