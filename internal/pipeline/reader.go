package pipeline

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/litmap/litmap/internal/model"
)

// ReadSentences parses sentences from JSONL input, one object per line.
// Blank lines are skipped; a malformed line fails the whole read with its
// line number.
func ReadSentences(r io.Reader) ([]model.Sentence, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var sentences []model.Sentence
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var s model.Sentence
		if err := json.Unmarshal([]byte(line), &s); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if s.ID == "" {
			return nil, fmt.Errorf("line %d: missing sentence_id", lineNo)
		}
		if s.Text == "" {
			return nil, fmt.Errorf("line %d: missing text", lineNo)
		}
		sentences = append(sentences, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return sentences, nil
}

// ReadSentencesFile reads a JSONL sentence file from disk.
func ReadSentencesFile(path string) ([]model.Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadSentences(f)
}
