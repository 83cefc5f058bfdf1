package api

// maxTitleRunes is the full length of a derived conversation title, ellipsis included.
const maxTitleRunes = 50

// DeriveTitle derives a conversation title from its first message. Messages of
// 50 runes or fewer become the title verbatim; longer ones are cut to the first
// 47 runes plus "...". The gateway applies this on the first turn; clients use
// the same function for the immediate placeholder so the two never disagree.
func DeriveTitle(firstMessage string) string {
	runes := []rune(firstMessage)
	if len(runes) <= maxTitleRunes {
		return firstMessage
	}
	return string(runes[:maxTitleRunes-3]) + "..."
}
