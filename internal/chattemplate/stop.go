package chattemplate

import "strings"

// StopSequences returns every base stop string of the variant twice: bare and
// prefixed with a newline. Stop matching in the generation loop is line
// sensitive, so both forms are always present.
func (v *Variant) StopSequences(playerName, aiName string) []string {
	if v.Stop == nil {
		return nil
	}
	base := v.Stop(playerName, aiName)
	seen := make(map[string]struct{}, len(base))
	out := make([]string, 0, 2*len(base))
	for _, s := range base {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s, "\n"+s)
	}
	return out
}

// TruncateAtStop cuts text at the earliest occurrence of any stop string.
// When two stops begin at the same offset the longer one is cut. The second
// return value reports whether a stop was found.
func TruncateAtStop(text string, stops []string) (string, bool) {
	cut := -1
	cutLen := 0
	for _, s := range stops {
		if s == "" {
			continue
		}
		idx := strings.Index(text, s)
		if idx < 0 {
			continue
		}
		if cut < 0 || idx < cut || (idx == cut && len(s) > cutLen) {
			cut = idx
			cutLen = len(s)
		}
	}
	if cut < 0 {
		return text, false
	}
	return text[:cut], true
}
