// Package texture decodes images and uploads them as GL textures.
package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// DecodeTGA decodes a TGA image. Only true-color images are supported,
// uncompressed (type 2) or RLE compressed (type 10), at 24 or 32 bits.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		width:       width,
		height:      height,
		bpp:         bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	if imageType == TGATypeUncompressed {
		if len(d.src) < width*height*d.bpp {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for i := 0; i < width*height; i++ {
			d.put(i, d.read(i*d.bpp))
		}
		return d.img, nil
	}

	if err := d.decodeRLE(); err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img           *image.RGBA
	src           []byte
	width, height int
	bpp           int
	topToBottom   bool
}

// read returns the BGR(A) pixel at byte offset off.
func (d *tgaDecoder) read(off int) color.RGBA {
	c := color.RGBA{B: d.src[off], G: d.src[off+1], R: d.src[off+2], A: 255}
	if d.bpp == 4 {
		c.A = d.src[off+3]
	}
	return c
}

// put stores the n-th pixel in file order, flipping bottom-up images.
func (d *tgaDecoder) put(n int, c color.RGBA) {
	x, y := n%d.width, n/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

func (d *tgaDecoder) decodeRLE() error {
	total := d.width * d.height
	pixel, off := 0, 0

	for pixel < total {
		if off >= len(d.src) {
			return fmt.Errorf("TGA RLE data truncated at pixel %d of %d", pixel, total)
		}
		packet := d.src[off]
		off++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if off+d.bpp > len(d.src) {
				return fmt.Errorf("TGA RLE data truncated at pixel %d of %d", pixel, total)
			}
			c := d.read(off)
			off += d.bpp
			for i := 0; i < count && pixel < total; i++ {
				d.put(pixel, c)
				pixel++
			}
			continue
		}

		for i := 0; i < count && pixel < total; i++ {
			if off+d.bpp > len(d.src) {
				return fmt.Errorf("TGA RLE data truncated at pixel %d of %d", pixel, total)
			}
			d.put(pixel, d.read(off))
			off += d.bpp
			pixel++
		}
	}

	return nil
}
