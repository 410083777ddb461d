package domain

// CompileStats summarizes one compiled context.
type CompileStats struct {
	ItemCount int
	LinkCount int
	CharCount int // measured on the final trimmed output
}

// TokenEstimate approximates a token count as ceil(chars/4). The heuristic
// is deliberately crude: it only needs to rank depths for selection, not
// match any particular tokenizer.
func TokenEstimate(charCount int) int {
	return (charCount + 3) / 4
}

// DepthInfo is one entry of a per-depth scan.
type DepthInfo struct {
	Depth      int
	Label      string
	Tokens     int
	Stats      CompileStats
	Calculated bool // false when the scan stopped before this depth
}

// DepthCache holds per-depth compiled stats for one context, valid as long
// as the depth-0 fingerprint (its token estimate) is unchanged.
type DepthCache struct {
	Fingerprint int
	Depths      []DepthInfo
}
