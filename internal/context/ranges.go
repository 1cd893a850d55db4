// Package context derives bounded, LLM-ready excerpts from ranked graph
// nodes. It expands a ranked node set through the graph, selects
// representative files, and reconstructs a minimal-but-complete excerpt
// per file: merged line ranges covering the import block, keyword windows,
// and whole function or class bodies, under a character budget.
package context

import (
	"sort"
	"strings"

	"github.com/hargabyte/scout/internal/query"
)

// windowRadius is the number of lines kept on each side of a line that
// contains a query keyword.
const windowRadius = 10

// mergeSlack coalesces ranges whose gap is at most this many lines, so the
// excerpt is not shredded into dozens of near-adjacent fragments.
const mergeSlack = 5

// importScanLimit bounds how deep into the file the import/export block may
// reach for the leading block to be kept whole.
const importScanLimit = 50

// lineRange is an inclusive range of zero-based line indexes.
type lineRange struct {
	start, end int
}

// mergeRanges sorts ranges by start line and coalesces any pair whose gap
// is within slack lines. Input ranges may overlap or be unsorted.
func mergeRanges(ranges []lineRange, slack int) []lineRange {
	if len(ranges) == 0 {
		return nil
	}
	sorted := make([]lineRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].start != sorted[j].start {
			return sorted[i].start < sorted[j].start
		}
		return sorted[i].end < sorted[j].end
	})

	merged := []lineRange{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.start <= last.end+slack {
			if r.end > last.end {
				last.end = r.end
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// clampRange clips a range to [0, lineCount-1].
func clampRange(r lineRange, lineCount int) lineRange {
	if r.start < 0 {
		r.start = 0
	}
	if r.end > lineCount-1 {
		r.end = lineCount - 1
	}
	return r
}

// importBlockRange finds the leading import/export block. When every
// import or export statement line falls within the first importScanLimit
// lines, the whole prefix through the last such line is kept; when any
// statement appears deeper, no leading block is emitted and the keyword
// windows cover it instead.
func importBlockRange(lines []string) (lineRange, bool) {
	last := -1
	beyond := false
	for i, line := range lines {
		if !isImportExportLine(line) {
			continue
		}
		if i >= importScanLimit {
			beyond = true
			break
		}
		last = i
	}
	if last < 0 || beyond {
		return lineRange{}, false
	}
	return lineRange{0, last}, true
}

// isImportExportLine reports whether a line is an import or export
// statement in any of the supported language families.
func isImportExportLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "import "),
		strings.HasPrefix(trimmed, "import("),
		strings.HasPrefix(trimmed, "export "),
		strings.HasPrefix(trimmed, "from "),
		strings.HasPrefix(trimmed, "module.exports"),
		strings.Contains(trimmed, "require("):
		return true
	}
	return false
}

// keywordWindows returns a ±windowRadius range around every line that
// contains a query keyword, matched case-insensitively on the original
// token.
func keywordWindows(lines []string, keywords []query.Keyword) []lineRange {
	if len(keywords) == 0 {
		return nil
	}
	var ranges []lineRange
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, kw := range keywords {
			if strings.Contains(lower, kw.Original) {
				ranges = append(ranges, clampRange(lineRange{i - windowRadius, i + windowRadius}, len(lines)))
				break
			}
		}
	}
	return ranges
}

// expandToBoundaries widens every range that overlaps a known function or
// class start line so the whole body is included; a window that clips a
// declaration must never cut its body in half. starts maps zero-based
// declaration start lines to the resolver used for that file's language.
func expandToBoundaries(ranges []lineRange, starts []int, lines []string, resolver BoundaryResolver) []lineRange {
	if len(starts) == 0 || resolver == nil {
		return ranges
	}
	out := make([]lineRange, 0, len(ranges))
	for _, r := range ranges {
		for _, start := range starts {
			if start < r.start || start > r.end {
				continue
			}
			end := resolver.BlockEnd(lines, start)
			if end > r.end {
				r.end = end
			}
		}
		out = append(out, clampRange(r, len(lines)))
	}
	return out
}

// renderRanges concatenates the merged ranges in order, separated by an
// elision marker, stopping before the range that would push the excerpt
// past maxLen. The overflowing range is dropped whole rather than cut
// mid-range, so a function body is never truncated in half. The second
// return reports whether any range was dropped.
func renderRanges(lines []string, ranges []lineRange, maxLen int, marker string) (string, bool) {
	var b strings.Builder
	truncated := false
	emitted := false

	for _, r := range ranges {
		segment := strings.Join(lines[r.start:r.end+1], "\n")
		need := len(segment)
		if emitted {
			need += len(marker) + 2
		}
		if maxLen > 0 && b.Len()+need > maxLen {
			truncated = true
			break
		}
		if emitted {
			b.WriteString("\n")
			b.WriteString(marker)
			b.WriteString("\n")
		}
		b.WriteString(segment)
		emitted = true
	}
	return b.String(), truncated
}

// elisionMarker returns the marker line used between non-adjacent ranges,
// in the comment syntax of the file's language family.
func elisionMarker(language string) string {
	switch language {
	case "python", "ruby", "shell", "yaml", "perl", "r":
		return "# ..."
	case "markdown", "text", "":
		return "..."
	default:
		return "// ..."
	}
}
