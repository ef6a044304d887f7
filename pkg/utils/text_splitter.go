package utils

// SplitText splits text into chunks of up to chunkSize runes with the
// given overlap between consecutive chunks. Boundaries are rune-based so
// multi-byte characters are never cut in half.
func SplitText(text string, chunkSize int, overlap int) []string {
	if chunkSize <= 0 {
		return nil
	}
	if overlap >= chunkSize {
		overlap = chunkSize - 1
	}
	if overlap < 0 {
		overlap = 0
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	step := chunkSize - overlap
	for start := 0; start < len(runes); start += step {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
