package extract

import "strings"

// extractMarkdown scans a markdown document line by line for headings and
// fenced code blocks. A full CommonMark parse buys nothing here: the graph
// only needs the outline and the embedded code.
func extractMarkdown(rec *FileRecord) {
	lines := strings.Split(rec.Content, "\n")

	inFence := false
	fenceLang := ""
	fenceStart := 0
	var fenceBody []string

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if inFence {
			if strings.HasPrefix(trimmed, "```") {
				rec.CodeBlocks = append(rec.CodeBlocks, CodeBlock{
					Language: fenceLang,
					Content:  strings.Join(fenceBody, "\n"),
					Line:     fenceStart,
				})
				inFence = false
				fenceBody = nil
				continue
			}
			fenceBody = append(fenceBody, line)
			continue
		}

		if strings.HasPrefix(trimmed, "```") {
			inFence = true
			fenceLang = strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			fenceStart = i + 1
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			level := 0
			for level < len(trimmed) && trimmed[level] == '#' {
				level++
			}
			if level <= 6 && level < len(trimmed) && trimmed[level] == ' ' {
				rec.Headings = append(rec.Headings, Heading{
					Text:  strings.TrimSpace(trimmed[level:]),
					Level: level,
					Line:  i + 1,
				})
			}
		}
	}

	// Unterminated fence at EOF still yields a block.
	if inFence {
		rec.CodeBlocks = append(rec.CodeBlocks, CodeBlock{
			Language: fenceLang,
			Content:  strings.Join(fenceBody, "\n"),
			Line:     fenceStart,
		})
	}
}
