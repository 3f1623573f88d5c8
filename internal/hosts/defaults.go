package hosts

// DefaultForbidden is the substring denylist applied before verification
var DefaultForbidden = []string{
	".exe",
	".msi",
	".mp4",
	"pixl.is",
	"redirect",
	"uploadbank.com",
	"filesfly.cc",
	"direct-link",
	"t.me",
}

// DefaultNegativeSignals mark a custom-host page as dead when its entry has no rule
var DefaultNegativeSignals = []string{
	"File Not Found",
	"file has been removed",
	"no longer available",
}

// DefaultEntries returns the reference host table. Order matters: the first
// contained key wins, so more specific keys come first.
func DefaultEntries() []Entry {
	mega := Rule{Handshake: HandshakeMega}
	return []Entry{
		{Key: "mega.nz", Strategy: StrategyCustom, Rule: mega, Rewrites: []RewriteFunc{MegaCanonical}},
		{Key: "mega.co.nz", Strategy: StrategyCustom, Rule: mega, Rewrites: []RewriteFunc{MegaCanonical}},
		{Key: "imgspice.com", Strategy: StrategyCustom, Rule: Rule{DeadBodyLength: 4924}},
		{Key: "imageporter.com", Strategy: StrategyCustom, Rule: Rule{DeadSignals: []string{"No file"}}},
		{Key: "4shared.com", Strategy: StrategyCustom, Rule: Rule{DeadSignals: []string{
			"You need owner's permission to access this folder.",
			"The file link that you requested is not valid.",
		}}},
		{Key: "bunkrr", Strategy: StrategyCustom, Rule: Rule{DeadSignals: []string{"a twerking taco"}},
			Rewrites: []RewriteFunc{ReplaceHost("bunkrr.su", "bunkrr.si")}},
		{Key: "gofile.io", Strategy: StrategyCustom, Rule: Rule{DeadBodyLength: 1158}},
		{Key: "cyberfile.me", Strategy: StrategyCustom, Rule: Rule{DeadBodyLength: 12094}},

		{Key: "ibb.co", Strategy: StrategyStatusOnly},
		{Key: "upfiles.com", Strategy: StrategyStatusOnly},
		{Key: "files.catbox.moe", Strategy: StrategyStatusOnly},
		{Key: "puu.sh", Strategy: StrategyStatusOnly},
		{Key: "pixeldrain.com", Strategy: StrategyStatusOnly},
		{Key: "mediafire.com", Strategy: StrategyStatusOnly},
		{Key: "stream.bunkr.is", Strategy: StrategyStatusOnly},
		{Key: "bunkr.is", Strategy: StrategyStatusOnly},
		{Key: "drive.google.com", Strategy: StrategyStatusOnly},
		{Key: "sendvid", Strategy: StrategyStatusOnly},
		{Key: "cyberdrop.me", Strategy: StrategyStatusOnly},

		{Key: "justpaste.it", Strategy: StrategyPasteUnwrap},
		{Key: "pastebin.com", Strategy: StrategyPasteUnwrap, Rewrites: []RewriteFunc{PastebinRaw}},
		{Key: "rentry.co", Strategy: StrategyPasteUnwrap, Rewrites: []RewriteFunc{RentryRaw}},
		{Key: "paste.ee", Strategy: StrategyPasteUnwrap},
		{Key: "bitbin.it", Strategy: StrategyPasteUnwrap},
		{Key: "anonpaste.io", Strategy: StrategyPasteUnwrap},
		{Key: "telegra.ph", Strategy: StrategyPasteUnwrap},
		{Key: "paste.gg", Strategy: StrategyPasteUnwrap},
		{Key: "paster.so", Strategy: StrategyPasteUnwrap},
	}
}

// Default builds the reference registry, adding extra negative signals
func Default(extraNegativeSignals ...string) *Registry {
	return NewRegistry(DefaultEntries(), DefaultForbidden,
		WithAliases(Alias{From: "mega.co.nz", To: "mega.nz"}),
		WithNegativeSignals(DefaultNegativeSignals...),
		WithNegativeSignals(extraNegativeSignals...),
	)
}
