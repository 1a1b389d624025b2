package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

const (
	tgaHeaderSize = 18

	tgaTrueColor    = 2
	tgaGray         = 3
	tgaTrueColorRLE = 10
	tgaGrayRLE      = 11

	tgaRightToLeft = 0x10
	tgaTopToBottom = 0x20
)

var ErrUnsupportedTGA = errors.New("unsupported tga image")

func init() {
	// tga has no magic number; match on the colour map and image type bytes
	for _, t := range []byte{tgaTrueColor, tgaGray, tgaTrueColorRLE, tgaGrayRLE} {
		image.RegisterFormat("tga", "?\x00"+string([]byte{t}), decodeTGA, decodeTGAConfig)
	}
}

type tgaHeader struct {
	idLength   int
	imageType  byte
	width      int
	height     int
	depth      int
	descriptor byte
}

func (h tgaHeader) rle() bool {
	return h.imageType == tgaTrueColorRLE || h.imageType == tgaGrayRLE
}

func (h tgaHeader) channels() int { return h.depth / 8 }

func readTGAHeader(r io.Reader) (tgaHeader, error) {
	var b [tgaHeaderSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return tgaHeader{}, err
	}
	h := tgaHeader{
		idLength:   int(b[0]),
		imageType:  b[2],
		width:      int(binary.LittleEndian.Uint16(b[12:14])),
		height:     int(binary.LittleEndian.Uint16(b[14:16])),
		depth:      int(b[16]),
		descriptor: b[17],
	}
	if b[1] != 0 {
		return h, fmt.Errorf("%w: colour mapped", ErrUnsupportedTGA)
	}
	if h.width == 0 || h.height == 0 {
		return h, fmt.Errorf("%w: size %dx%d", ErrUnsupportedTGA, h.width, h.height)
	}
	switch h.imageType {
	case tgaTrueColor, tgaTrueColorRLE:
		if h.depth != 24 && h.depth != 32 {
			return h, fmt.Errorf("%w: %d bits per true colour pixel", ErrUnsupportedTGA, h.depth)
		}
	case tgaGray, tgaGrayRLE:
		if h.depth != 8 {
			return h, fmt.Errorf("%w: %d bits per grey pixel", ErrUnsupportedTGA, h.depth)
		}
	default:
		return h, fmt.Errorf("%w: image type %d", ErrUnsupportedTGA, h.imageType)
	}
	return h, nil
}

func decodeTGAConfig(r io.Reader) (image.Config, error) {
	h, err := readTGAHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	model := color.NRGBAModel
	if h.channels() == 1 {
		model = color.GrayModel
	}
	return image.Config{ColorModel: model, Width: h.width, Height: h.height}, nil
}

/**
 * @brief Decodes uncompressed and run-length encoded 8-bit grey, 24-bit and
 * 32-bit true colour tga images. Rows are stored bottom up unless the
 * descriptor says otherwise.
 */
func decodeTGA(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	h, err := readTGAHeader(br)
	if err != nil {
		return nil, err
	}
	if _, err := br.Discard(h.idLength); err != nil {
		return nil, err
	}

	ch := h.channels()
	raw := make([]byte, h.width*h.height*ch)
	if h.rle() {
		err = readTGARLE(br, raw, ch)
	} else {
		_, err = io.ReadFull(br, raw)
	}
	if err != nil {
		return nil, fmt.Errorf("tga pixel data: %w", err)
	}

	bounds := image.Rect(0, 0, h.width, h.height)
	var gray *image.Gray
	var rgba *image.NRGBA
	if ch == 1 {
		gray = image.NewGray(bounds)
	} else {
		rgba = image.NewNRGBA(bounds)
	}

	for sy := 0; sy < h.height; sy++ {
		y := h.height - 1 - sy
		if h.descriptor&tgaTopToBottom != 0 {
			y = sy
		}
		for sx := 0; sx < h.width; sx++ {
			x := sx
			if h.descriptor&tgaRightToLeft != 0 {
				x = h.width - 1 - sx
			}
			src := raw[(sy*h.width+sx)*ch:]
			if gray != nil {
				gray.Pix[gray.PixOffset(x, y)] = src[0]
				continue
			}
			// stored blue, green, red, alpha
			d := rgba.Pix[rgba.PixOffset(x, y):]
			d[0], d[1], d[2], d[3] = src[2], src[1], src[0], 0xff
			if ch == 4 {
				d[3] = src[3]
			}
		}
	}

	if gray != nil {
		return gray, nil
	}
	return rgba, nil
}

// readTGARLE expands run-length packets into raw. A packet header's top bit
// selects a repeated pixel over a literal run; the low 7 bits hold count-1.
func readTGARLE(br *bufio.Reader, raw []byte, ch int) error {
	for n := 0; n < len(raw); {
		hdr, err := br.ReadByte()
		if err != nil {
			return err
		}
		count := int(hdr&0x7f) + 1
		if n+count*ch > len(raw) {
			return fmt.Errorf("%w: run overflows the image", ErrUnsupportedTGA)
		}
		if hdr&0x80 == 0 {
			if _, err := io.ReadFull(br, raw[n:n+count*ch]); err != nil {
				return err
			}
			n += count * ch
			continue
		}
		if _, err := io.ReadFull(br, raw[n:n+ch]); err != nil {
			return err
		}
		for i := 1; i < count; i++ {
			copy(raw[n+i*ch:n+(i+1)*ch], raw[n:n+ch])
		}
		n += count * ch
	}
	return nil
}
