package pixed

// BlendMode selects how a compose node combines its auxiliary input with
// its base input. Only the modes the compositing core actually needs are
// defined; the full catalog of paint modes is out of scope.
type BlendMode int

const (
	// BlendNormal is standard source-over alpha compositing.
	BlendNormal BlendMode = iota
	// BlendReplace overwrites the base with the auxiliary input, weighted
	// only by opacity. At full opacity the base contributes nothing.
	BlendReplace
	// BlendMultiply multiplies base and auxiliary colors.
	BlendMultiply
	// BlendScreen inverts, multiplies, and inverts again.
	BlendScreen
)

// String returns the mode name.
func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "normal"
	case BlendReplace:
		return "replace"
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	default:
		return "unknown"
	}
}
