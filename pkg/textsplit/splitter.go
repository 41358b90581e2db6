package textsplit

import "strings"

// DefaultMaxWords keeps chunks comfortably below embedding input limits.
const DefaultMaxWords = 500

// SplitWords splits text on whitespace and groups consecutive words into
// chunks of at most maxWords, preserving order. The final chunk may be
// shorter. Empty or whitespace-only input yields no chunks.
func SplitWords(text string, maxWords int) []string {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(words)+maxWords-1)/maxWords)
	for i := 0; i < len(words); i += maxWords {
		end := i + maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}

	return chunks
}
