package chunker

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadDocuments reads all markdown and plain text files under root and
// returns their contents keyed by path relative to root.
func LoadDocuments(root string) (map[string]string, error) {
	docs := make(map[string]string)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".md" && ext != ".txt" {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}

		docs[relPath] = string(content)
		return nil
	})

	return docs, err
}

// SplitMarkdown splits a document into chunks at markdown headings. Each
// chunk carries its heading text as the first line so the retrieval
// context keeps the section title. A document without headings becomes a
// single chunk.
func SplitMarkdown(content string) []string {
	var chunks []string

	scanner := bufio.NewScanner(strings.NewReader(content))

	var currentHeading string
	var currentContent strings.Builder

	flushChunk := func() {
		body := strings.TrimSpace(currentContent.String())
		if body == "" {
			return
		}
		if currentHeading != "" {
			chunks = append(chunks, currentHeading+"\n"+body)
		} else {
			chunks = append(chunks, body)
		}
	}

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "#") {
			flushChunk()

			currentHeading = strings.TrimSpace(strings.TrimLeft(line, "#"))
			currentContent.Reset()
		} else {
			if currentContent.Len() > 0 {
				currentContent.WriteString("\n")
			}
			currentContent.WriteString(line)
		}
	}

	flushChunk()

	if len(chunks) == 0 {
		trimmed := strings.TrimSpace(content)
		if trimmed != "" {
			chunks = append(chunks, trimmed)
		}
	}

	return chunks
}
