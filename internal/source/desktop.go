package source

import (
	"bufio"
	"io"
	"strings"
)

// desktopEntry holds the [Desktop Entry] keys the drawer cares about.
type desktopEntry struct {
	Type       string
	Names      map[string]string // locale ("" for the default) -> value
	Exec       string
	Icon       string
	NoDisplay  bool
	Hidden     bool
	Terminal   bool
	OnlyShowIn []string
	NotShowIn  []string
}

func parseDesktopEntry(r io.Reader) (desktopEntry, error) {
	e := desktopEntry{Names: make(map[string]string)}
	inDesktopEntry := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		if line[0] == '[' && line[len(line)-1] == ']' {
			inDesktopEntry = line == "[Desktop Entry]"
			continue
		}
		if !inDesktopEntry {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = unescapeValue(strings.TrimSpace(value))

		key, locale := splitLocaleKey(key)
		if key == "Name" {
			if _, seen := e.Names[locale]; !seen {
				e.Names[locale] = value
			}
			continue
		}
		if locale != "" {
			continue
		}

		switch key {
		case "Type":
			e.Type = value
		case "Exec":
			e.Exec = value
		case "Icon":
			e.Icon = value
		case "NoDisplay":
			e.NoDisplay = value == "true"
		case "Hidden":
			e.Hidden = value == "true"
		case "Terminal":
			e.Terminal = value == "true"
		case "OnlyShowIn":
			e.OnlyShowIn = splitList(value)
		case "NotShowIn":
			e.NotShowIn = splitList(value)
		}
	}
	return e, scanner.Err()
}

// splitLocaleKey splits "Name[de_DE]" into ("Name", "de_DE").
func splitLocaleKey(key string) (string, string) {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	return key[:open], key[open+1 : len(key)-1]
}

func unescapeValue(v string) string {
	if !strings.Contains(v, `\`) {
		return v
	}
	var b strings.Builder
	for i := 0; i < len(v); i++ {
		if v[i] != '\\' || i+1 >= len(v) {
			b.WriteByte(v[i])
			continue
		}
		i++
		switch v[i] {
		case 's':
			b.WriteByte(' ')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			// Exec keeps its own quoting escapes.
			b.WriteByte('\\')
			b.WriteByte(v[i])
		}
	}
	return b.String()
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// name resolves the display label for the given locale candidates, falling
// back to the unlocalized Name.
func (e desktopEntry) name(candidates []string) string {
	for _, c := range candidates {
		if n, ok := e.Names[c]; ok && n != "" {
			return n
		}
	}
	return e.Names[""]
}

// launchable reports whether the entry should appear in the drawer on the
// given desktops.
func (e desktopEntry) launchable(desktops []string) bool {
	if e.Type != "" && e.Type != "Application" {
		return false
	}
	if e.NoDisplay || e.Hidden || e.Exec == "" || e.Names[""] == "" {
		return false
	}
	if len(e.OnlyShowIn) > 0 && !intersects(e.OnlyShowIn, desktops) {
		return false
	}
	if intersects(e.NotShowIn, desktops) {
		return false
	}
	return true
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if strings.EqualFold(x, y) {
				return true
			}
		}
	}
	return false
}

// localeCandidates expands a POSIX locale (lang_COUNTRY.ENCODING@MODIFIER)
// into the lookup order used for localized keys.
func localeCandidates(locale string) []string {
	if locale == "" || locale == "C" || locale == "POSIX" {
		return nil
	}

	rest, modifier, _ := strings.Cut(locale, "@")
	rest, _, _ = strings.Cut(rest, ".")
	lang, country, _ := strings.Cut(rest, "_")

	var out []string
	if country != "" && modifier != "" {
		out = append(out, lang+"_"+country+"@"+modifier)
	}
	if country != "" {
		out = append(out, lang+"_"+country)
	}
	if modifier != "" {
		out = append(out, lang+"@"+modifier)
	}
	return append(out, lang)
}
