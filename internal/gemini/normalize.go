package gemini

import (
	"encoding/json"
	"regexp"
	"strings"
)

// The upstream model is asked for a strict {"title","description"} JSON
// object but routinely wraps it in Markdown fences, sneaks emoji in despite
// the instructions, or returns loose prose. Normalization runs a fixed
// fallback chain: strip fences and emoji, parse the first {...} span as
// JSON, fall back to title:/descrição: line extraction, fall back to the
// first non-trivial line. The returned title is guaranteed to contain no
// emoji, no code-fence marker and not the literal word "json"; when the
// cleaned title still violates that, the product name is substituted
// verbatim.

// Unicode ranges stripped from model output: emoji blocks plus invisible
// formatting characters (zero-width joiners/spaces, variation selectors).
var strippedRanges = [][2]rune{
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F300, 0x1F5FF}, // misc symbols and pictographs
	{0x1F680, 0x1F6FF}, // transport and map
	{0x1F1E0, 0x1F1FF}, // flags
	{0x2600, 0x26FF},   // misc symbols
	{0x2700, 0x27BF},   // dingbats
	{0x1F900, 0x1F9FF}, // supplemental symbols and pictographs
	{0x1FA00, 0x1FAFF}, // extended pictographs
	{0x1F018, 0x1F270}, // enclosed ideographic
	{0x238C, 0x2454},   // misc technical
	{0x20D0, 0x20FF},   // combining marks for symbols
	{0xFE00, 0xFE0F},   // variation selectors
	{0x200B, 0x200D},   // zero-width space/non-joiner/joiner
	{0x2060, 0x2060},   // word joiner
	{0xFEFF, 0xFEFF},   // zero-width no-break space
}

var (
	fenceJSONRe   = regexp.MustCompile("(?i)```json\\s*")
	fenceRe       = regexp.MustCompile("```\\s*")
	leadingJSONRe = regexp.MustCompile(`(?i)^json\s*`)

	jsonSpanRe = regexp.MustCompile(`\{[\s\S]*\}`)

	titleFieldRe = regexp.MustCompile(`(?i)["']?title["']?\s*[:=]\s*["']?([^"'` + "\n" + `]+)["']?`)
	tituloLineRe = regexp.MustCompile(`(?i)título[:\s]+(.+?)(?:` + "\n" + `|$)`)
	titleLineRe  = regexp.MustCompile(`(?i)title[:\s]+(.+?)(?:` + "\n" + `|$)`)
	descFieldRe  = regexp.MustCompile(`(?is)["']?description["']?\s*[:=]\s*["']?([^"']+)["']?`)
	descricaoRe  = regexp.MustCompile(`(?is)descrição[:\s]+(.+?)(?:` + "\n" + `|$)`)
	descLineRe   = regexp.MustCompile(`(?is)description[:\s]+(.+?)(?:` + "\n" + `|$)`)
)

func stripped(r rune) bool {
	for _, rng := range strippedRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}

// CleanText removes emoji, invisible formatting characters, Markdown code
// fences and a leading literal "json" token.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	cleaned := strings.Map(func(r rune) rune {
		if stripped(r) {
			return -1
		}
		return r
	}, s)

	cleaned = fenceJSONRe.ReplaceAllString(cleaned, "")
	cleaned = fenceRe.ReplaceAllString(cleaned, "")
	cleaned = leadingJSONRe.ReplaceAllString(cleaned, "")

	return strings.TrimSpace(cleaned)
}

// HasEmoji reports whether s still contains an emoji code point.
func HasEmoji(s string) bool {
	for _, r := range s {
		if r >= 0x1F300 && r <= 0x1FAFF {
			return true
		}
		if r >= 0x2600 && r <= 0x27BF {
			return true
		}
	}
	return false
}

type listingResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NormalizeListing turns raw model output into a clean title/description
// pair. productName is the hard fallback for the title.
func NormalizeListing(raw, productName string) (title, description string) {
	result, ok := parseJSONListing(raw)
	if !ok {
		result = extractListing(raw, productName)
	}

	title = CleanText(result.Title)
	if title == "" {
		title = CleanText(productName)
	}
	description = CleanText(result.Description)
	if description == "" {
		description = CleanText(raw)
	}

	// Hard guarantee: a title that survived cleaning but still carries a
	// "json" token, a fence marker or emoji is replaced wholesale.
	if strings.Contains(strings.ToLower(title), "json") ||
		strings.Contains(title, "```") ||
		HasEmoji(title) {
		title = productName
	}

	if HasEmoji(description) {
		description = CleanText(description)
	}

	return title, description
}

func parseJSONListing(raw string) (listingResult, bool) {
	cleaned := CleanText(raw)
	if span := jsonSpanRe.FindString(cleaned); span != "" {
		cleaned = span
	}

	var result listingResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return listingResult{}, false
	}
	if result.Title == "" && result.Description == "" {
		return listingResult{}, false
	}
	return result, true
}

// extractListing is the non-JSON fallback: recognize "title:"/"título:" and
// "description:"/"descrição:" style lines, else take the first non-trivial
// line as the title and the remainder as the description.
func extractListing(raw, productName string) listingResult {
	var result listingResult

	for _, re := range []*regexp.Regexp{titleFieldRe, tituloLineRe, titleLineRe} {
		if m := re.FindStringSubmatch(raw); m != nil {
			result.Title = strings.TrimSpace(m[1])
			break
		}
	}
	for _, re := range []*regexp.Regexp{descFieldRe, descricaoRe, descLineRe} {
		if m := re.FindStringSubmatch(raw); m != nil {
			result.Description = strings.TrimSpace(m[1])
			break
		}
	}

	lines := contentLines(raw)
	if result.Title == "" {
		for _, line := range lines {
			if len(line) > 10 {
				result.Title = line
				break
			}
		}
		if result.Title == "" {
			result.Title = productName
		}
	}
	if result.Description == "" {
		if len(lines) > 1 {
			result.Description = strings.Join(lines[1:], "\n")
		} else {
			result.Description = raw
		}
	}

	return result
}

func contentLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "```") {
			continue
		}
		lines = append(lines, trimmed)
	}
	return lines
}
