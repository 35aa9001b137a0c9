package pdf

const (
	defaultFontSize = 8
	minFontSize     = 6
	fontSizeStep    = 0.25
	defaultPad      = 2
	ellipsis        = ".."
	minKeptRunes    = 3
)

// TextOptions styling for a single DrawText call. Zero values mean the
// defaults: size 8pt shrinking down to 6pt, regular style, black, left
// aligned, 2pt horizontal padding.
type TextOptions struct {
	Size    float64
	MinSize float64
	Style   string // "", "B", "I", "BI"
	Color   *RGB
	Align   Align
	Pad     float64
}

func (o TextOptions) withDefaults() TextOptions {
	if o.Size <= 0 {
		o.Size = defaultFontSize
	}
	if o.MinSize <= 0 {
		o.MinSize = minFontSize
	}
	if o.MinSize > o.Size {
		o.MinSize = o.Size
	}
	if o.Pad <= 0 {
		o.Pad = defaultPad
	}
	if o.Color == nil {
		o.Color = &colorBlack
	}
	return o
}

// fitText makes text fit maxW: first the font size steps down from size
// towards minSize, then the tail is cut and replaced with ".." until the
// result fits. At least minKeptRunes runes are always kept, so very narrow
// boxes may still overflow slightly rather than produce an empty cell.
//
// measure reports the rendered width of a string at a font size.
func fitText(text string, maxW, size, minSize float64, measure func(string, float64) float64) (string, float64) {
	if maxW <= 0 || text == "" {
		return text, size
	}
	for measure(text, size) > maxW && size-fontSizeStep >= minSize {
		size -= fontSizeStep
	}
	if measure(text, size) <= maxW {
		return text, size
	}
	r := []rune(text)
	for len(r) > minKeptRunes && measure(string(r)+ellipsis, size) > maxW {
		r = r[:len(r)-1]
	}
	return string(r) + ellipsis, size
}
