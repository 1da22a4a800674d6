package viz

import (
	"image"
	"image/color"
	"image/gif"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/helixviz/internal/scene"
)

type GIFOptions struct {
	Every      int // keep every n-th frame
	Cols, Rows int
	DotSize    int // pixels per braille dot
	Camera     *Camera
	Background color.Color
}

func DefaultGIFOptions() GIFOptions {
	return GIFOptions{Every: 5, Cols: 80, Rows: 40, DotSize: 3, Background: color.Black}
}

// GIFFrames lists the frame indices that EncodeGIF captures: every n-th
// frame starting at 1, always ending on the last frame.
func GIFFrames(total, every int) []int {
	if every < 1 {
		every = 1
	}
	var ks []int
	for k := 1; k <= total; k += every {
		ks = append(ks, k)
	}
	if len(ks) > 0 && ks[len(ks)-1] != total {
		ks = append(ks, total)
	}
	return ks
}

// EncodeGIF writes the scene's frames as a looping animated GIF. The
// delay per image is the scene's frame duration times opts.Every.
func EncodeGIF(w io.Writer, sc *scene.Scene, opts GIFOptions) error {
	if opts.Cols <= 0 || opts.Rows <= 0 {
		d := DefaultGIFOptions()
		opts.Cols, opts.Rows = d.Cols, d.Rows
	}
	if opts.DotSize <= 0 {
		opts.DotSize = 1
	}
	if opts.Every < 1 {
		opts.Every = 1
	}
	cam := opts.Camera
	if cam == nil {
		cam = NewCamera()
	}
	bg := opts.Background
	if bg == nil {
		bg = color.Black
	}

	pal := color.Palette{bg, NamedColor(sc.FullPath().Line.Color), NamedColor(sc.CurrentPoint().Marker.Color)}

	delay := int(sc.FrameDuration().Milliseconds()) * opts.Every / 10
	if delay < 1 {
		delay = 1
	}

	canvas := NewCanvas(opts.Cols, opts.Rows)
	proj := Projector{Box: NewBox(sc.Layout.Scene), Camera: cam, Canvas: canvas}
	anim := gif.GIF{LoopCount: 0}

	for _, k := range GIFFrames(len(sc.Frames), opts.Every) {
		path, marker := Traces(sc, k)

		canvas.Clear()
		proj.Polyline(path)
		img := image.NewPaletted(image.Rect(0, 0, canvas.SubWidth()*opts.DotSize, canvas.SubHeight()*opts.DotSize), pal)
		rasterize(img, canvas, opts.DotSize, 1)

		canvas.Clear()
		proj.Markers(marker, 1)
		rasterize(img, canvas, opts.DotSize, 2)

		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, delay)
	}

	return gif.EncodeAll(w, &anim)
}

func rasterize(img *image.Paletted, c *Canvas, dot int, idx uint8) {
	for y := 0; y < c.SubHeight(); y++ {
		for x := 0; x < c.SubWidth(); x++ {
			if !c.Lit(x, y) {
				continue
			}
			for py := 0; py < dot; py++ {
				for px := 0; px < dot; px++ {
					img.SetColorIndex(x*dot+px, y*dot+py, idx)
				}
			}
		}
	}
}

var namedColors = map[string]color.RGBA{
	"black":     {0, 0, 0, 255},
	"white":     {255, 255, 255, 255},
	"blue":      {0, 0, 255, 255},
	"red":       {255, 0, 0, 255},
	"green":     {0, 128, 0, 255},
	"orange":    {255, 165, 0, 255},
	"purple":    {128, 0, 128, 255},
	"gray":      {128, 128, 128, 255},
	"lightgray": {211, 211, 211, 255},
}

// NamedColor resolves a CSS color name or #rrggbb string. Unknown values
// fall back to white.
func NamedColor(s string) color.RGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c
	}
	if len(s) == 7 && s[0] == '#' {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err == nil {
			return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
		}
	}
	return namedColors["white"]
}
