package hosts

// Strategy is the verification family a host belongs to
type Strategy int

const (
	StrategyUnknown Strategy = iota
	// StrategyCustom hosts need a body rule or a protocol handshake.
	StrategyCustom
	// StrategyStatusOnly hosts are alive whenever the GET returns 2xx.
	StrategyStatusOnly
	// StrategyPasteUnwrap hosts are paste sites whose content is re-extracted.
	StrategyPasteUnwrap
)

func (s Strategy) String() string {
	switch s {
	case StrategyCustom:
		return "custom"
	case StrategyStatusOnly:
		return "status_only"
	case StrategyPasteUnwrap:
		return "paste_unwrap"
	default:
		return "unknown"
	}
}

// Handshake names a secondary protocol exchange used to confirm liveness
type Handshake int

const (
	HandshakeNone Handshake = iota
	HandshakeMega
)

func (h Handshake) String() string {
	if h == HandshakeMega {
		return "mega"
	}
	return "none"
}

// Rule carries the custom-validation parameters of a host.
// A response matching DeadBodyLength or containing any DeadSignals entry
// means the file is gone.
type Rule struct {
	// DeadBodyLength is compared with the body length in characters; 0 disables it.
	DeadBodyLength int
	DeadSignals    []string
	Handshake      Handshake
}

// IsZero reports whether the rule has nothing to check
func (r Rule) IsZero() bool {
	return r.DeadBodyLength == 0 && len(r.DeadSignals) == 0 && r.Handshake == HandshakeNone
}
