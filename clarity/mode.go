package clarity

// Mode is the display mode of one run.
type Mode string

// Display modes, in precedence order.
const (
	ModeRaw     Mode = "raw"
	ModeFull    Mode = "full"
	ModeDetails Mode = "details"
	ModeCalm    Mode = "calm"
)

// Options are the caller's per-run choices.
type Options struct {
	Raw     bool // stream live, skip the summary
	Full    bool // print captured output unsummarized
	Details bool // summary plus a truncated preview
	Profile string
}

// ResolveMode picks the display mode: raw > full > details > calm.
func ResolveMode(o Options) Mode {
	switch {
	case o.Raw:
		return ModeRaw
	case o.Full:
		return ModeFull
	case o.Details:
		return ModeDetails
	default:
		return ModeCalm
	}
}
