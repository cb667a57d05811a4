package pixed

// Format identifies the pixel layout of a Buffer. Buffers are treated as
// opaque format-tagged arrays; no color-space math happens here beyond the
// minimal conversion needed to copy between formats.
type Format int

const (
	// FormatRGBA8 is 8-bit-per-channel RGBA with straight alpha.
	FormatRGBA8 Format = iota
	// FormatGray8 is 8-bit single-channel grayscale without alpha.
	FormatGray8
)

// BytesPerPixel returns the storage size of one pixel in this format.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatGray8:
		return 1
	default:
		return 4
	}
}

// HasAlpha reports whether the format carries an alpha channel.
func (f Format) HasAlpha() bool {
	return f == FormatRGBA8
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "rgba8"
	case FormatGray8:
		return "gray8"
	default:
		return "unknown"
	}
}
