package meeting

import (
	"regexp"
	"strings"
)

var (
	// "CSE 3300-11 - Rapid Prototype Development" -> "11"
	strictSectionRe = regexp.MustCompile(`^[A-Za-z]{2,}\s*\d{3,4}\s*-\s*([A-Za-z0-9]+)\s*-`)
	// "11", "011", "A01" anywhere in the cell
	looseSectionRe = regexp.MustCompile(`\b([A-Za-z]?\d{1,3}[A-Za-z]?)\b`)
)

// ParseSection extracts a bare section code from a section cell.
// Three layers, each tried in order:
//
//  1. strict "<DEPT> <NUM> - <code> - ..." pattern
//  2. "<course listing prefix> - <code>" using the course cell's prefix
//  3. first token that looks like a section code
//
// Leading zeros are stripped from the result. An empty cell yields "".
func ParseSection(sectionCell, courseCell string) string {
	s := strings.TrimSpace(sectionCell)
	if s == "" {
		return ""
	}

	if m := strictSectionRe.FindStringSubmatch(s); m != nil {
		return strings.TrimLeft(m[1], "0")
	}

	if courseCell != "" {
		prefix := strings.TrimSpace(strings.SplitN(courseCell, "-", 2)[0])
		if prefix != "" {
			re, err := regexp.Compile(`^` + regexp.QuoteMeta(prefix) + `\s*-\s*([A-Za-z0-9]+)\b`)
			if err == nil {
				if m := re.FindStringSubmatch(s); m != nil {
					return strings.TrimLeft(m[1], "0")
				}
			}
		}
	}

	if m := looseSectionRe.FindStringSubmatch(s); m != nil {
		return strings.TrimLeft(m[1], "0")
	}
	return ""
}
