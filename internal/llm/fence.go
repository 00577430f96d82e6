package llm

import "strings"

const codeFence = "```"

// StripCodeFence removes a markdown code fence wrapped around model output.
// The opening fence may be bare or tagged "json"; a missing closing fence is
// tolerated. Fences inside the content are left alone.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, codeFence) {
		rest := strings.TrimLeft(s[len(codeFence):], " \t")
		if len(rest) >= 4 && strings.EqualFold(rest[:4], "json") {
			rest = rest[4:]
		}
		s = rest
	}
	if strings.HasSuffix(s, codeFence) {
		s = s[:len(s)-len(codeFence)]
	}

	return strings.TrimSpace(s)
}
