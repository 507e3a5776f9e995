// Package avatar renders a deterministic initials-on-circle PNG for an
// account name. It is a pure side-effecting helper: the core never depends
// on its output.
package avatar

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const size = 120

// palette is fixed so existing avatars keep their colors.
var palette = []color.RGBA{
	{0xF4, 0x43, 0x36, 0xFF},
	{0x21, 0x96, 0xF3, 0xFF},
	{0x4C, 0xAF, 0x50, 0xFF},
	{0xFF, 0x98, 0x00, 0xFF},
	{0x9C, 0x27, 0xB0, 0xFF},
	{0x3F, 0x51, 0xB5, 0xFF},
	{0x79, 0x55, 0x48, 0xFF},
}

// ColorFor picks a palette color from the byte sum of the name, so the same
// name always renders the same avatar.
func ColorFor(name string) color.RGBA {
	sum := 0
	for _, b := range []byte(name) {
		sum += int(b)
	}
	return palette[sum%len(palette)]
}

// Initials extracts the uppercased first letter of each name part.
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		b.WriteRune(unicode.ToUpper([]rune(part)[0]))
	}
	if b.Len() == 0 {
		return "U"
	}
	return b.String()
}

// FileName is the on-disk name for an account's avatar.
func FileName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_")) + ".png"
}

// Generate writes the avatar PNG under dir and returns its path.
func Generate(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create avatar dir: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fill := ColorFor(name)

	// Filled circle centered in the square.
	r := size / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-r, y-r
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, fill)
			}
		}
	}

	initials := Initials(name)
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
	}
	width := d.MeasureString(initials)
	d.Dot = fixed.Point26_6{
		X: fixed.I(size/2) - width/2,
		Y: fixed.I(size/2 + face.Height/2 - face.Descent),
	}
	d.DrawString(initials)

	path := filepath.Join(dir, FileName(name))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create avatar: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encode avatar: %w", err)
	}
	return path, nil
}
