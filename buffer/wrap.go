package buffer

import "strings"

// Chunk is one display row of a logical line.
type Chunk struct {
	Text string
	// IsLast marks the final chunk of its logical line.
	IsLast bool
}

// Wrap splits text into logical lines and cuts each of them into chunks of
// at most width runes. An empty logical line becomes a single space so it
// still takes a row. A trailing line break ends the last line, it does not
// start a new one.
func Wrap(text string, width int) []Chunk {
	if text == "" {
		return nil
	}
	width = max(width, 1)

	var chunks []Chunk
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		chunks = append(chunks, splitLine(line, width)...)
	}
	return chunks
}

func splitLine(line string, width int) []Chunk {
	if line == "" {
		line = " "
	}
	runes := []rune(line)
	chunks := make([]Chunk, 0, (len(runes)+width-1)/width)
	for start := 0; start < len(runes); start += width {
		end := min(start+width, len(runes))
		chunks = append(chunks, Chunk{Text: string(runes[start:end])})
	}
	chunks[len(chunks)-1].IsLast = true
	return chunks
}
