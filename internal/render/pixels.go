package render

import "image/color"

// fillPaletteRGBA converts cell values into RGBA pixels using a palette.
// Values past the end of the palette use its last entry. An empty palette
// clears the buffer to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		col := palette[idx]
		px := buf[i*4 : i*4+4 : i*4+4]
		px[0], px[1], px[2], px[3] = col.R, col.G, col.B, col.A
	}
}

// fillMaskRGBA tints buf with col, using each mask value in [0,1] as the
// pixel's share of maxAlpha. Values outside the range are clamped.
func fillMaskRGBA(buf []byte, mask []float32, col color.RGBA, maxAlpha uint8) {
	for i, v := range mask {
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		a := uint8(float32(maxAlpha)*v + 0.5)
		px := buf[i*4 : i*4+4 : i*4+4]
		if a == 0 {
			px[0], px[1], px[2], px[3] = 0, 0, 0, 0
			continue
		}
		// Premultiplied, as ebiten expects.
		px[0] = uint8(uint16(col.R) * uint16(a) / 255)
		px[1] = uint8(uint16(col.G) * uint16(a) / 255)
		px[2] = uint8(uint16(col.B) * uint16(a) / 255)
		px[3] = a
	}
}
