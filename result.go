package pixhist

import (
	"strconv"
	"strings"
)

// RGB defines structure of Color. Memory representation is 0x00RRGGBB.
type RGB uint32

// String returns string representation of color like #RRGGBB.
func (rgb RGB) String() string {
	rgb = (rgb & 0x00FFFFFF) | 0x0F000000
	buf := []byte{'0', '0', '0', '0', '0', '0', '0': 0}
	buf = strconv.AppendUint(buf[:0], uint64(rgb), 16)
	buf[0] = '#'
	return string(buf)
}

// ToRGB converts separate R, G, B colors into RGB type.
func ToRGB(r, g, b uint32) RGB {
	return RGB((r&0x00FF)<<16 | (g&0x00FF)<<8 | (b & 0x00FF))
}

// Components returns red, green and blue parts of the color.
func (rgb RGB) Components() (r, g, b uint8) {
	return uint8(rgb >> 16), uint8(rgb >> 8), uint8(rgb)
}

// Header returns the CSV header: bucket followed by every channel name.
func (hs *HistogramSet) Header() string {
	var sb strings.Builder
	sb.WriteString("bucket")
	for _, c := range Channels {
		sb.WriteByte(',')
		sb.WriteString(c.String())
	}
	sb.WriteByte('\n')
	return sb.String()
}

// Result returns 256 CSV lines, one per intensity level, with the count of
// every channel in Channels order.
func (hs *HistogramSet) Result() string {
	// ~9 columns of up to 7 digits per line.
	buf := make([]byte, 0, 256*64)
	for i := 0; i < 256; i++ {
		buf = strconv.AppendInt(buf, int64(i), 10)
		for c := range hs.Channels {
			buf = append(buf, ',')
			buf = strconv.AppendInt(buf, int64(hs.Channels[c][i]), 10)
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
