package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/txt2svg"
	"github.com/npillmayer/txt2svg/config"
	"github.com/npillmayer/txt2svg/face"
	"github.com/npillmayer/txt2svg/internal/fontload"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object
type Intp struct {
	conf    *config.Config
	fonts   *fontload.Registry
	font    face.Font
	fontkey string
	color   string
	outfile string
	pngfile string
	repl    *readline.Instance
}

func (intp *Intp) String() string {
	out := intp.outfile
	if out == "" {
		out = "stdout"
	}
	return fmt.Sprintf("( font=%s color=%s out=%s )", intp.fontkey, intp.color, out)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			if err := intp.render(line); err != nil {
				pterm.Error.Println(err)
			}
			continue
		}
		err, quit := intp.execute(strings.Fields(line[1:]))
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

var commandFn = map[string]func(*Intp, []string) (error, bool){
	"quit":  quitOp,
	"help":  helpOp,
	"font":  fontOp,
	"fonts": fontsOp,
	"color": colorOp,
	"out":   outOp,
	"png":   pngOp,
	"trace": traceOp,
}

func (intp *Intp) execute(words []string) (err error, stop bool) {
	if len(words) == 0 {
		return nil, false
	}
	tracer().Debugf("cmd = %v", words)
	f, ok := commandFn[strings.ToLower(words[0])]
	if !ok {
		help("")
		return fmt.Errorf("unknown command: %s", words[0]), false
	}
	return f(intp, words[1:])
}

func quitOp(intp *Intp, args []string) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

var errArgMissing = errors.New("argument missing")

func fontOp(intp *Intp, args []string) (error, bool) {
	if len(args) == 0 {
		return errArgMissing, false
	}
	return intp.selectFont(args[0]), false
}

func fontsOp(intp *Intp, args []string) (error, bool) {
	intp.printFonts()
	return nil, false
}

func colorOp(intp *Intp, args []string) (error, bool) {
	if len(args) == 0 {
		return errArgMissing, false
	}
	return intp.setColor(args[0]), false
}

func outOp(intp *Intp, args []string) (error, bool) {
	intp.outfile = ""
	if len(args) > 0 && args[0] != "-" {
		intp.outfile = args[0]
	}
	return nil, false
}

func pngOp(intp *Intp, args []string) (error, bool) {
	intp.pngfile = ""
	if len(args) > 0 {
		intp.pngfile = args[0]
	}
	return nil, false
}

func traceOp(intp *Intp, args []string) (error, bool) {
	if len(args) == 0 {
		return errArgMissing, false
	}
	if !config.SetLevel(tracer(), args[0]) {
		return fmt.Errorf("invalid trace level: %s", args[0]), false
	}
	return nil, false
}

// --- Fonts and colors -------------------------------------------------

func (intp *Intp) loadFonts() error {
	fc := intp.conf.Fonts
	if fc.Dir != "" {
		if _, err := intp.fonts.ScanDir(fc.Dir); err != nil {
			return err
		}
	}
	for key, path := range fc.Files {
		if err := intp.fonts.AddFile(key, path); err != nil {
			return err
		}
	}
	return nil
}

func (intp *Intp) selectFont(name string) error {
	data, err := intp.fonts.Resolve(name)
	if err != nil {
		return err
	}
	f, err := fontload.ParseOpenTypeFont(data, intp.conf.Render.Backend)
	if err != nil {
		return fmt.Errorf("cannot parse font %s: %w", name, err)
	}
	intp.font, intp.fontkey = f, name
	tracer().Infof("using font %s", name)
	return nil
}

func (intp *Intp) setColor(c string) error {
	color, err := txt2svg.NormalizeColor(c)
	if err != nil {
		return err
	}
	intp.color = color
	return nil
}

func (intp *Intp) printFonts() {
	data := [][]string{
		{"Key", "Source"},
	}
	for _, key := range intp.fonts.Keys() {
		data = append(data, []string{key, intp.fonts.Source(key)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// --- Output -----------------------------------------------------------

func (intp *Intp) render(text string) error {
	text = normalize(text)
	svg, err := txt2svg.Render(text, intp.font, intp.color, intp.options()...)
	if err != nil {
		return err
	}
	if intp.outfile == "" {
		os.Stdout.Write(svg)
		os.Stdout.WriteString("\n")
	} else if err := os.WriteFile(intp.outfile, svg, 0o644); err != nil {
		return err
	} else {
		pterm.Printf("wrote %s (%d bytes)\n", intp.outfile, len(svg))
	}
	if intp.pngfile != "" {
		if err := writePNG(intp.pngfile, text, intp.font, intp.color, intp.conf.Render); err != nil {
			return err
		}
		pterm.Printf("wrote %s\n", intp.pngfile)
	}
	return nil
}
