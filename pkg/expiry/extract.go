package expiry

import (
	"regexp"
	"strings"
)

// expiryKeywords anchor the search window. This is an ordered list, not a
// set: list position is the tie-break when several keywords occur in the
// text, regardless of where they appear. The manufacture markers (MFG, MFD,
// PACKED ON) only anchor a window; dates found near them are still taken as
// the result.
var expiryKeywords = []string{
	"EXP",
	"EXPIRY",
	"BEST BEFORE",
	"USE BY",
	"BBD",
	"BEST BY",
	"MFG",
	"MFD",
	"PACKED ON",
}

// datePatterns are tried in fixed priority order inside each window; the
// first pattern that matches consumes the window.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{2})[/-](\d{2})[/-](\d{4})\b`),                                           // DD/MM/YYYY
	regexp.MustCompile(`\b(\d{4})[/-](\d{2})[/-](\d{2})\b`),                                           // YYYY/MM/DD
	regexp.MustCompile(`\b(\d{2})\s+(JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\s+(\d{4})\b`), // DD MMM YYYY
	regexp.MustCompile(`\b(\d{2})[/-](\d{4})\b`),                                                      // MM/YYYY
}

const (
	keywordWindow = 50
	rawTextLimit  = 200
)

// ExtractExpiryDate scans recognized label text for an expiry date.
//
// For each keyword in list order, a 50-character window from the keyword's
// first occurrence is searched with the four patterns in priority order. A
// parse failure discards that keyword's candidate and moves to the next
// keyword. When no keyword yields a date, the whole text is scanned with
// the same patterns; such a match is the recovered date but is not
// keyword-anchored, so confidence stays low.
func ExtractExpiryDate(text string) ExtractionResult {
	up := strings.ToUpper(text)
	res := ExtractionResult{RawText: truncateText(text, rawTextLimit), Confidence: ConfidenceLow}

	for _, kw := range expiryKeywords {
		idx := strings.Index(up, kw)
		if idx == -1 {
			continue
		}
		end := idx + keywordWindow
		if end > len(up) {
			end = len(up)
		}
		window := up[idx:end]
		for pat, re := range datePatterns {
			m := re.FindStringSubmatch(window)
			if m == nil {
				continue
			}
			if d, err := parseCandidate(pat, m); err == nil {
				res.Success = true
				res.Date = &d
				res.Confidence = ConfidenceHigh
				return res
			}
			break // first matching pattern consumes the window
		}
	}

	for pat, re := range datePatterns {
		m := re.FindStringSubmatch(up)
		if m == nil {
			continue
		}
		if d, err := parseCandidate(pat, m); err == nil {
			res.Success = true
			res.Date = &d
			return res
		}
	}
	return res
}

func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
