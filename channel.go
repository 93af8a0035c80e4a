package pixhist

import (
	"fmt"
	"strings"
)

// Channel identifies one of the eight tracked intensity dimensions.
type Channel uint8

// Primary channels are counted from pixels, secondary channels are derived
// from the red, green and blue frequency curves.
const (
	Grayscale Channel = iota
	Red
	Green
	Blue
	Yellow
	Cyan
	Magenta
	White
)

// NumChannels is the amount of channels held by a HistogramSet.
const NumChannels = 8

// Channels lists every channel in index order.
var Channels = [NumChannels]Channel{Grayscale, Red, Green, Blue, Yellow, Cyan, Magenta, White}

var channelNames = [NumChannels]string{"grayscale", "red", "green", "blue", "yellow", "cyan", "magenta", "white"}

// String returns the lower case channel name.
func (c Channel) String() string {
	if int(c) < len(channelNames) {
		return channelNames[c]
	}
	return fmt.Sprintf("channel(%d)", uint8(c))
}

// IsPrimary reports whether the channel is counted directly from pixels.
func (c Channel) IsPrimary() bool {
	return c <= Blue
}

// IsSecondary reports whether the channel is derived from the color primaries.
func (c Channel) IsSecondary() bool {
	return c >= Yellow && c <= White
}

// ParseChannel returns the channel named s. Matching ignores case and
// surrounding spaces.
func ParseChannel(s string) (Channel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range channelNames {
		if n == name {
			return Channel(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChannel, s)
}

// SelectAll is the selection keyword that expands to every channel except grayscale.
const SelectAll = "all"

// Selection is an ordered list of channels requested for display.
type Selection []Channel

// AllColors is the expansion of SelectAll: the color primaries followed by
// the secondary channels.
var AllColors = Selection{Red, Green, Blue, Yellow, Cyan, Magenta, White}

// ParseSelection converts a selection request into channels. "all" expands to
// AllColors, anything else must name exactly one channel.
func ParseSelection(s string) (Selection, error) {
	if strings.EqualFold(strings.TrimSpace(s), SelectAll) {
		sel := make(Selection, len(AllColors))
		copy(sel, AllColors)
		return sel, nil
	}
	c, err := ParseChannel(s)
	if err != nil {
		return nil, err
	}
	return Selection{c}, nil
}

// String returns "all" for the full color selection, otherwise the channel
// names joined with commas.
func (sel Selection) String() string {
	if len(sel) == len(AllColors) {
		same := true
		for i := range sel {
			if sel[i] != AllColors[i] {
				same = false
				break
			}
		}
		if same {
			return SelectAll
		}
	}
	names := make([]string, len(sel))
	for i, c := range sel {
		names[i] = c.String()
	}
	return strings.Join(names, ",")
}
