package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, args []string) (error, bool) {
	topic := ""
	if len(args) > 0 {
		topic = args[0]
	}
	help(topic)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	switch strings.ToLower(topic) {
	case "font", "fonts":
		pterm.Info.Println("Fonts")
		pterm.Println(`
	:fonts          lists the fonts known by key
	:font KEY       switches to the font registered as KEY
	:font PATH      switches to the font in file PATH (.ttf or .otf)
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	Every line not starting with ':' is rendered with the current settings.

	:font KEY|PATH  select a font
	:fonts          list fonts
	:color HEX      set the fill color
	:out FILE|-     write SVG to FILE, or to stdout
	:png FILE       write a PNG preview to FILE, no argument switches it off
	:trace LEVEL    set trace level [Debug|Info|Error]
	:help [TOPIC]   show help
	:quit           leave
	`)
	}
}
