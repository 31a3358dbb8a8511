// Package font implements the font preview, printing glyphs as they are
// rasterized for the display.
package font

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/clktmr/bui/fonts"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

const usageString = `TrueType or OpenType font to display glyph previewer.

Usage: %s [flags] [fontfile]

Without a font file the 7x13 basic font is shown. The glyphs are printed in
the ASCII art format of the icons package.

`

// LoadFace opens a TrueType or OpenType font.
func LoadFace(fontfile string, size, dpi float64, hinting string) (font.Face, error) {
	if fontfile == "" {
		return basicfont.Face7x13, nil
	}
	data, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, fmt.Errorf("reading font: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	options := &opentype.FaceOptions{Size: size, DPI: dpi}
	switch hinting {
	default:
		options.Hinting = font.HintingNone
	case "vertical":
		options.Hinting = font.HintingVertical
	case "full":
		options.Hinting = font.HintingFull
	}
	return opentype.NewFace(f, options)
}

// Preview prints the cells of the runes first to last of face.
func Preview(w io.Writer, face *fonts.Face, first, last rune) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "height %d ascent %d\n", face.Height, face.Ascent)
	for r := first; r <= last; r++ {
		cell, advance := face.Cell(r)
		fmt.Fprintf(bw, "\nU+%04X %s advance %d\n", r, strconv.QuoteRune(r), advance)
		if cell == nil {
			continue
		}
		for y := 0; y < cell.H; y++ {
			for x := 0; x < cell.W; x++ {
				c := byte('.')
				if cell.Index(x, y) != 0 {
					c = '#'
				}
				bw.WriteByte(c)
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

func Main(args []string, w io.Writer, logger *log.Logger) error {
	flags := flag.NewFlagSet("font", flag.ExitOnError)
	dpi := flags.Float64("dpi", 72, "screen resolution in Dots Per Inch")
	hinting := flags.String("hinting", "full", "none | vertical | full")
	size := flags.Float64("size", 8, "font size in points")
	start := flags.Uint("start", 0x20, "Unicode value of first character")
	end := flags.Uint("end", 0x7e, "Unicode value of last character")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), usageString, "font")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	var fontfile string
	switch flags.NArg() {
	case 0:
	case 1:
		fontfile = flags.Arg(0)
	default:
		flags.Usage()
		return flag.ErrHelp
	}
	if *end < *start {
		return fmt.Errorf("last character %#x before first %#x", *end, *start)
	}

	face, err := LoadFace(fontfile, *size, *dpi, *hinting)
	if err != nil {
		return err
	}
	defer face.Close()

	logger.Debug("Previewing font",
		log.String("file", fontfile),
		log.Int("first", int(*start)),
		log.Int("last", int(*end)))
	return Preview(w, fonts.NewFace(face, rune(*end)), rune(*start), rune(*end))
}
