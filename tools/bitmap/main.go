// Package bitmap implements the image to Go bitmap source converter.
package bitmap

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/clktmr/bui/bitmap"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const usageString = `Image to bitmap source converter.

Usage: %s [flags] <image>

`

const bitmapGoTemplate = `// Code generated by buitool bitmap from {{ .Source }}; DO NOT EDIT.

package {{ .Package }}

import "github.com/clktmr/bui/bitmap"

var {{ .Name }} = &bitmap.Bitmap{
	W:   {{ .Bitmap.W }},
	H:   {{ .Bitmap.H }},
	BPP: {{ .Bitmap.BPP }},
	Palette: bitmap.Palette{ {{- range .Bitmap.Palette }}{{ printf "0x%08x" (uint32 .) }}, {{ end -}} },
	Bits: []byte{
{{- range $i, $b := .Bitmap.Bits }}{{ if eq (mod $i 12) 0 }}
	{{ end }}{{ printf "0x%02x" $b }}, {{ end }}
	},
}
`

var tmpl = template.Must(template.New("bitmapGoTemplate").Funcs(template.FuncMap{
	"mod":    func(a, b int) int { return a % b },
	"uint32": func(c bitmap.Color) uint32 { return uint32(c) },
}).Parse(bitmapGoTemplate))

// Generate writes formatted Go source declaring bm as the variable name.
func Generate(w io.Writer, pkg, name, source string, bm *bitmap.Bitmap) error {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Package, Name, Source string
		Bitmap                *bitmap.Bitmap
	}{pkg, name, source, bm})
	if err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("formatting source: %w", err)
	}
	_, err = w.Write(src)
	return err
}

// VarName derives an exported identifier from a file name, "check-mark.png"
// becomes "CheckMark".
func VarName(file string) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	words := strings.FieldsFunc(base, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
	})
	title := cases.Title(language.Und)
	name := ""
	for _, w := range words {
		name += title.String(w)
	}
	if name == "" || '0' <= name[0] && name[0] <= '9' {
		name = "Bitmap" + name
	}
	return name
}

func Main(args []string, logger *log.Logger) error {
	flags := flag.NewFlagSet("bitmap", flag.ExitOnError)
	colors := flags.Int("colors", 2, "maximum number of colors, 1 to 16")
	dither := flags.Bool("dither", false, "enable Floyd-Steinberg error diffusion")
	pkg := flags.String("pkg", "main", "package of the generated source")
	name := flags.String("name", "", "variable name, derived from the image file name if empty")
	output := flags.String("o", "", "output file, the image file name with .go extension if empty")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), usageString, "bitmap")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return flag.ErrHelp
	}
	imagefile := flags.Arg(0)

	r, err := os.Open(imagefile)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	defer r.Close()
	src, _, err := image.Decode(r)
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}

	bm, err := bitmap.FromImage(src, *colors, *dither)
	if err != nil {
		return fmt.Errorf("converting image: %w", err)
	}

	if *name == "" {
		*name = VarName(imagefile)
	}
	if *output == "" {
		*output = strings.TrimSuffix(imagefile, filepath.Ext(imagefile)) + ".go"
	}
	w, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer w.Close()
	if err := Generate(w, *pkg, *name, filepath.Base(imagefile), bm); err != nil {
		return err
	}

	logger.Info("Generated bitmap",
		log.String("file", *output),
		log.String("name", *name),
		log.Int("width", bm.W),
		log.Int("height", bm.H),
		log.Int("bpp", bm.BPP))
	return w.Close()
}
