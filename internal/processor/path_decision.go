package processor

// ShouldSkip reports whether a text is too short to extract keywords from.
func ShouldSkip(numTokens int, minTextLength int) bool {
	return numTokens < minTextLength
}
