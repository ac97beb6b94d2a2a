// Package match provides text heuristics for property names: similarity
// scoring against known names, phase/block suffix handling, and detection
// of inputs that are already English.
package match

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Ratio computes a similarity ratio in [0, 1] between two strings, using
// the same measure as Python's difflib.SequenceMatcher: 2*M/T, where M is
// the number of runes covered by matching blocks and T the combined length.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	matched := matchingRunes(ra, rb)
	return 2 * float64(matched) / float64(total)
}

// matchingRunes sums the lengths of matching blocks: the longest common
// substring, then recursively the pieces to its left and right.
func matchingRunes(a, b []rune) int {
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	n := size
	n += matchingRunes(a[:ai], b[:bi])
	n += matchingRunes(a[ai+size:], b[bi+size:])
	return n
}

func longestMatch(a, b []rune) (ai, bi, size int) {
	// lengths[j] holds the common-suffix length ending at a[i], b[j] for the
	// current row of the classic DP table.
	lengths := make([]int, len(b)+1)
	for i := 0; i < len(a); i++ {
		prev := 0
		for j := 0; j < len(b); j++ {
			cur := lengths[j+1]
			if a[i] == b[j] {
				lengths[j+1] = prev + 1
				if lengths[j+1] > size {
					size = lengths[j+1]
					ai = i - size + 1
					bi = j - size + 1
				}
			} else {
				lengths[j+1] = 0
			}
			prev = cur
		}
	}
	return ai, bi, size
}

var cleanPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[一二三四五六七八九十0-9]+期`),
	regexp.MustCompile(`[一二三四五六七八九十ABCD0-9]+座`),
	regexp.MustCompile(`第[一二三四五六七八九十0-9]+期`),
	regexp.MustCompile(`[0-9]+號`),
}

// CleanName strips phase, block and number markers from a property name.
func CleanName(name string) string {
	cleaned := name
	for _, re := range cleanPatterns {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	return strings.TrimSpace(cleaned)
}

// Similarity scores two property names, taking the better of the raw ratio
// and the ratio with phase/block markers stripped.
func Similarity(a, b string) float64 {
	base := Ratio(a, b)
	ca, cb := CleanName(a), CleanName(b)
	if ca != a || cb != b {
		if clean := Ratio(ca, cb); clean > base {
			return clean
		}
	}
	return base
}

// Candidate is a fuzzy-match hit against the known translations.
type Candidate struct {
	ChineseName string
	EnglishName string
	Similarity  float64
}

// Best returns the best-scoring candidate at or above threshold.
func Best(target string, known map[string]string, threshold float64) (Candidate, bool) {
	var best Candidate
	for zh, en := range known {
		sim := Similarity(target, zh)
		if sim >= threshold && sim > best.Similarity {
			best = Candidate{ChineseName: zh, EnglishName: en, Similarity: sim}
		}
	}
	return best, best.ChineseName != ""
}

// AdjustTranslation extends a matched translation with the target's extra
// suffix (phase, block, floor) when the target is the longer name.
func AdjustTranslation(target, matchName, matchTranslation string) string {
	if len([]rune(target)) <= len([]rune(matchName)) {
		return matchTranslation
	}
	extra := strings.TrimSpace(strings.Replace(target, matchName, "", 1))
	if extra == "" {
		return matchTranslation
	}
	if suffix := TranslateSuffix(extra); suffix != "" {
		return matchTranslation + " " + suffix
	}
	return matchTranslation
}

var (
	blockRE        = regexp.MustCompile(`([0-9A-Za-z]+)座`)
	phaseChineseRE = regexp.MustCompile(`第?([一二三四五六七八九十]+)期`)
	phaseArabicRE  = regexp.MustCompile(`第?([0-9]+)期`)
	floorRE        = regexp.MustCompile(`([0-9]+)樓?`)
)

var directionSuffixes = []struct{ zh, en string }{
	{"東座", "East Block"},
	{"西座", "West Block"},
	{"南座", "South Block"},
	{"北座", "North Block"},
	{"中座", "Central Block"},
	{"新翼", "New Wing"},
	{"舊翼", "Old Wing"},
	{"主樓", "Main Building"},
	{"附樓", "Annex Building"},
}

// TranslateSuffix renders a building suffix (1座, 二期, 3樓, 東座 …) in
// English. Returns "" when nothing is recognized.
func TranslateSuffix(suffix string) string {
	if m := blockRE.FindStringSubmatch(suffix); m != nil {
		return "Block " + m[1]
	}
	if m := phaseChineseRE.FindStringSubmatch(suffix); m != nil {
		return "Phase " + ChineseToArabic(m[1])
	}
	if m := phaseArabicRE.FindStringSubmatch(suffix); m != nil {
		return "Phase " + m[1]
	}
	// Bare digits are read as a floor before the direction words, so a
	// mixed suffix like 2東座 resolves to Floor 2.
	if m := floorRE.FindStringSubmatch(suffix); m != nil {
		return "Floor " + m[1]
	}
	for _, d := range directionSuffixes {
		if strings.Contains(suffix, d.zh) {
			return d.en
		}
	}
	return Transliterate(suffix)
}

var chineseDigits = map[rune]int{
	'零': 0, '一': 1, '二': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9, '十': 10,
}

// ChineseToArabic converts small Chinese numerals (一 through 九十九) to
// their Arabic form. Unrecognized input is returned unchanged.
func ChineseToArabic(num string) string {
	runes := []rune(num)
	switch {
	case num == "十":
		return "10"
	case len(runes) == 2 && runes[0] == '十':
		if d, ok := chineseDigits[runes[1]]; ok {
			return fmt.Sprintf("%d", 10+d)
		}
	case len(runes) == 2 && runes[1] == '十':
		if d, ok := chineseDigits[runes[0]]; ok {
			return fmt.Sprintf("%d", d*10)
		}
	case len(runes) == 1:
		if d, ok := chineseDigits[runes[0]]; ok {
			return fmt.Sprintf("%d", d)
		}
	case len(runes) == 3 && runes[1] == '十':
		tens, okT := chineseDigits[runes[0]]
		ones, okO := chineseDigits[runes[2]]
		if okT && okO {
			return fmt.Sprintf("%d", tens*10+ones)
		}
	}
	return num
}

var transliterationMap = map[rune]string{
	'翠': "Emerald",
	'金': "Golden",
	'銀': "Silver",
	'海': "Ocean",
	'山': "Hill",
	'湖': "Lake",
	'星': "Star",
	'月': "Moon",
	'日': "Sun",
	'座': "Block",
	'期': "Phase",
	'樓': "Floor",
	'東': "East",
	'西': "West",
	'南': "South",
	'北': "North",
	'中': "Central",
}

// Transliterate maps a short Chinese fragment to English word by word.
// Bare block identifiers ("A", "2") become "Block A" / "Block 2".
func Transliterate(text string) string {
	if text == "" {
		return ""
	}
	allAlnum := true
	for _, r := range text {
		if r > unicode.MaxASCII || (!unicode.IsDigit(r) && !unicode.IsLetter(r)) {
			allAlnum = false
			break
		}
	}
	if allAlnum {
		return "Block " + text
	}

	var parts []string
	for _, r := range text {
		if word, ok := transliterationMap[r]; ok {
			parts = append(parts, word)
		} else if unicode.IsDigit(r) {
			parts = append(parts, string(r))
		}
	}
	return strings.Join(parts, " ")
}

var pureASCIIRE = regexp.MustCompile(`^[A-Za-z0-9\s]+$`)

// IsEnglish reports whether the input needs no translation: effectively all
// of its word characters are ASCII letters, or it is plain ASCII text.
func IsEnglish(text string) bool {
	if pureASCIIRE.MatchString(strings.TrimSpace(text)) && strings.TrimSpace(text) != "" {
		return true
	}
	var letters, total int
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		total++
		if r <= unicode.MaxASCII && unicode.IsLetter(r) {
			letters++
		}
	}
	if total == 0 {
		return false
	}
	return float64(letters)/float64(total) >= 0.99
}
