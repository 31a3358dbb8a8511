package bitmap

import (
	"bytes"
	"go/parser"
	"go/token"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/clktmr/bui/bitmap"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestVarName(t *testing.T) {
	tests := map[string]string{
		"check.png":             "Check",
		"dir/check-mark.png":    "CheckMark",
		"left_arrow.filled.gif": "LeftArrowFilled",
		"---.png":               "Bitmap",
	}
	for file, want := range tests {
		t.Run(file, func(t *testing.T) {
			assert.Equal(t, want, VarName(file))
		})
	}
}

func TestGenerate(t *testing.T) {
	bm := bitmap.New(13, 2, 1, bitmap.Mono)
	bm.SetIndex(0, 0, 1)

	var buf bytes.Buffer
	assert.NoError(t, Generate(&buf, "icons", "Dot", "dot.png", bm))
	src := buf.String()
	assert.Contains(t, src, "package icons")
	assert.Contains(t, src, "var Dot = &bitmap.Bitmap{")
	assert.Contains(t, src, "0xff000000, 0xffffffff")
	assert.Contains(t, src, "0x00, 0x00, 0x00, 0x40,")

	_, err := parser.ParseFile(token.NewFileSet(), "dot.go", src, 0)
	assert.NoError(t, err)
}

func TestMainWritesSource(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.Black)
		}
	}
	img.Set(1, 1, color.White)
	file := filepath.Join(dir, "dot-icon.png")
	f, err := os.Create(file)
	assert.NoError(t, err)
	assert.NoError(t, png.Encode(f, img))
	assert.NoError(t, f.Close())

	err = Main([]string{"bitmap", "-pkg", "icons", file}, log.NewTestLogger(t))
	assert.NoError(t, err)

	src, err := os.ReadFile(filepath.Join(dir, "dot-icon.go"))
	assert.NoError(t, err)
	assert.Contains(t, string(src), "var DotIcon = &bitmap.Bitmap{")
	_, err = parser.ParseFile(token.NewFileSet(), "dot-icon.go", src, 0)
	assert.NoError(t, err)
}
