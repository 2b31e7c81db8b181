// Package tesseract implements bookvox.Extractor with a local Tesseract
// installation, for offline use when no vision API is configured.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"strings"

	"github.com/fwojciec/bookvox"
	"github.com/otiai10/gosseract/v2"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultLanguages are the Tesseract language packs used when none are set.
var DefaultLanguages = []string{"fra", "eng"}

// MaxDimension bounds the longest side of the image handed to Tesseract.
// Phone photos are larger than OCR needs.
const MaxDimension = 2400

// Client is the subset of *gosseract.Client the extractor uses.
type Client interface {
	SetImageFromBytes(data []byte) error
	SetLanguage(langs ...string) error
	Text() (string, error)
	Close() error
}

var _ bookvox.Extractor = (*Extractor)(nil)

// Extractor implements bookvox.Extractor using Tesseract.
type Extractor struct {
	Languages    []string
	MaxDimension int

	clientFactory func() Client
}

// NewExtractor returns an Extractor backed by gosseract.
func NewExtractor() *Extractor {
	return NewExtractorWithClient(func() Client { return gosseract.NewClient() })
}

// NewExtractorWithClient returns an Extractor creating its OCR clients with
// factory.
func NewExtractorWithClient(factory func() Client) *Extractor {
	return &Extractor{
		Languages:     DefaultLanguages,
		MaxDimension:  MaxDimension,
		clientFactory: factory,
	}
}

// Extract recognizes the text of img. A double page is split down the middle
// and each half recognized on its own, so the result keeps the left page
// before the right one with PageBoundaryMarker in between.
func (e *Extractor) Extract(ctx context.Context, img *bookvox.Image) (string, error) {
	if img == nil || len(img.Data) == 0 {
		return "", bookvox.Errorf(bookvox.EINVALID, "image required")
	}
	pages, err := PreparePages(img, e.MaxDimension)
	if err != nil {
		return "", err
	}

	texts := make([]string, 0, len(pages))
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := e.recognize(page)
		if err != nil {
			return "", fmt.Errorf("recognize page %d: %w", i+1, err)
		}
		texts = append(texts, text)
	}
	return strings.Join(texts, "\n"+bookvox.PageBoundaryMarker+"\n"), nil
}

func (e *Extractor) recognize(data []byte) (string, error) {
	c := e.clientFactory()
	defer c.Close()

	if len(e.Languages) > 0 {
		if err := c.SetLanguage(e.Languages...); err != nil {
			return "", bookvox.Errorf(bookvox.EUNAVAILABLE, "set languages: %v", err)
		}
	}
	if err := c.SetImageFromBytes(data); err != nil {
		return "", bookvox.Errorf(bookvox.EINVALID, "set image: %v", err)
	}
	text, err := c.Text()
	if err != nil {
		return "", bookvox.Errorf(bookvox.EUPSTREAM, "recognize text: %v", err)
	}
	return strings.TrimSpace(text), nil
}

// PreparePages decodes img, shrinks it so its longest side is at most
// maxDim pixels, and returns PNG encodings of the pages to recognize: one
// for a single page, left then right for a double page. A maxDim of zero
// disables scaling.
func PreparePages(img *bookvox.Image, maxDim int) ([][]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, bookvox.Errorf(bookvox.EINVALID, "decode image: %v", err)
	}
	src = downscale(src, maxDim)

	regions := []image.Rectangle{src.Bounds()}
	if img.IsDoublePage {
		b := src.Bounds()
		mid := b.Min.X + b.Dx()/2
		regions = []image.Rectangle{
			image.Rect(b.Min.X, b.Min.Y, mid, b.Max.Y),
			image.Rect(mid, b.Min.Y, b.Max.X, b.Max.Y),
		}
	}

	pages := make([][]byte, 0, len(regions))
	for _, r := range regions {
		page := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
		draw.Draw(page, page.Bounds(), src, r.Min, draw.Src)
		var buf bytes.Buffer
		if err := png.Encode(&buf, page); err != nil {
			return nil, fmt.Errorf("encode page: %w", err)
		}
		pages = append(pages, buf.Bytes())
	}
	return pages, nil
}

func downscale(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	longest := max(b.Dx(), b.Dy())
	if maxDim <= 0 || longest <= maxDim {
		return src
	}
	w := b.Dx() * maxDim / longest
	h := b.Dy() * maxDim / longest
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
