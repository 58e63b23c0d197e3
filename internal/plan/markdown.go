package plan

import (
	"strings"
)

type heading struct {
	level int
	title string
	line  int
}

func parseHeadings(lines []string) []heading {
	var hs []heading
	inFence := false
	for i, ln := range lines {
		trimmed := strings.TrimSpace(ln)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		level := 0
		for level < len(trimmed) && trimmed[level] == '#' {
			level++
		}
		if level == 0 || level >= len(trimmed) || trimmed[level] != ' ' {
			continue
		}
		hs = append(hs, heading{level: level, title: strings.TrimSpace(trimmed[level:]), line: i})
	}
	return hs
}

// Section returns the body under the first heading whose title matches one of
// names (case-insensitive), up to the next heading of the same or higher
// level. Fenced code blocks are opaque to heading detection.
func Section(doc string, names ...string) (string, bool) {
	lines := strings.Split(doc, "\n")
	hs := parseHeadings(lines)

	for i, h := range hs {
		if !titleMatches(h.title, names) {
			continue
		}
		end := len(lines)
		for _, next := range hs[i+1:] {
			if next.level <= h.level {
				end = next.line
				break
			}
		}
		return strings.TrimSpace(strings.Join(lines[h.line+1:end], "\n")), true
	}
	return "", false
}

// HasSection reports whether doc carries a heading with one of the names.
func HasSection(doc string, names ...string) bool {
	_, ok := Section(doc, names...)
	return ok
}

// RemoveSection drops a heading and its body from doc. Used to enforce
// exclusion rules the model was instructed about but may have ignored.
func RemoveSection(doc string, names ...string) string {
	lines := strings.Split(doc, "\n")
	hs := parseHeadings(lines)

	for i, h := range hs {
		if !titleMatches(h.title, names) {
			continue
		}
		end := len(lines)
		for _, next := range hs[i+1:] {
			if next.level <= h.level {
				end = next.line
				break
			}
		}
		kept := append([]string{}, lines[:h.line]...)
		kept = append(kept, lines[end:]...)
		return RemoveSection(strings.TrimSpace(strings.Join(kept, "\n")), names...)
	}
	return doc
}

func titleMatches(title string, names []string) bool {
	for _, n := range names {
		if strings.EqualFold(strings.TrimSpace(title), n) {
			return true
		}
	}
	return false
}

// stripTitleHeading removes leading level-1 headings so documents start
// directly with their first content section.
func stripTitleHeading(doc string) string {
	lines := strings.Split(doc, "\n")
	i := 0
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			i++
			continue
		}
		if strings.HasPrefix(trimmed, "# ") {
			i++
			continue
		}
		break
	}
	return strings.TrimSpace(strings.Join(lines[i:], "\n"))
}
