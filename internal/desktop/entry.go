// Package desktop parses freedesktop application entries and scans the
// applications/ directories of the XDG share directories.
package desktop

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/jmylchreest/tilemenu/internal/model"
	"github.com/jmylchreest/tilemenu/internal/xdg"
)

const entryHeader = "[Desktop Entry]"

// Parse errors.
var (
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
	ErrNotApplication  = errors.New("entry is not Type=Application")
	ErrMissingName     = errors.New("entry has no Name")
	ErrMissingExec     = errors.New("entry has no Exec")
)

// ParseError wraps a parse failure with the file it came from.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads the [Desktop Entry] section of the file at path. Name,
// GenericName, Comment and Keywords are localized with langTag (e.g. "[de]");
// an empty langTag disables localization. The returned Application has no ID;
// Scan assigns it.
func Parse(path, langTag string) (*model.Application, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	app, err := parse(data, langTag)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	app.Path = path
	return app, nil
}

func parse(data []byte, langTag string) (*model.Application, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}

	keys := make(map[string]string)
	inEntry := false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inEntry = line == entryHeader
			continue
		}
		if !inEntry {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		keys[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if keys["Type"] != "Application" {
		return nil, ErrNotApplication
	}

	app := &model.Application{
		Name:            unescape(keys["Name"]),
		GenericName:     localized(keys, "GenericName", langTag),
		Comment:         localized(keys, "Comment", langTag),
		Exec:            unescape(keys["Exec"]),
		TryExec:         unescape(keys["TryExec"]),
		Icon:            unescape(keys["Icon"]),
		WorkDir:         unescape(keys["Path"]),
		Terminal:        parseBool(keys["Terminal"]),
		NoDisplay:       parseBool(keys["NoDisplay"]),
		Hidden:          parseBool(keys["Hidden"]),
		DBusActivatable: parseBool(keys["DBusActivatable"]),
		Categories:      splitList(keys["Categories"]),
		OnlyShowIn:      splitList(keys["OnlyShowIn"]),
		NotShowIn:       splitList(keys["NotShowIn"]),
	}
	if langTag != "" {
		if langTag == xdg.EnglishTag {
			app.LocalizedName = app.Name
		} else {
			app.LocalizedName = unescape(keys["Name"+langTag])
		}
	}
	if kw, ok := keys["Keywords"+langTag]; ok && langTag != "" {
		app.Keywords = splitList(kw)
	} else {
		app.Keywords = splitList(keys["Keywords"])
	}

	// Hidden entries only mask lower-priority duplicates, so they are not
	// required to be complete.
	if app.Hidden {
		return app, nil
	}
	if app.Name == "" {
		return nil, ErrMissingName
	}
	if app.Exec == "" && !app.DBusActivatable {
		return nil, ErrMissingExec
	}
	return app, nil
}

// localized returns Key<langTag> when present, otherwise Key.
func localized(keys map[string]string, key, langTag string) string {
	if langTag != "" && langTag != xdg.EnglishTag {
		if v, ok := keys[key+langTag]; ok && v != "" {
			return unescape(v)
		}
	}
	return unescape(keys[key])
}

func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// splitList splits a ;-separated value, honouring \; escapes and dropping
// empty items.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var (
		items []string
		cur   strings.Builder
	)
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == ';':
			cur.WriteByte(';')
			i++
		case s[i] == ';':
			if v := strings.TrimSpace(cur.String()); v != "" {
				items = append(items, v)
			}
			cur.Reset()
		default:
			cur.WriteByte(s[i])
		}
	}
	if v := strings.TrimSpace(cur.String()); v != "" {
		items = append(items, v)
	}
	return items
}

// unescape expands the \s \n \t \r and \\ escapes of string values.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
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
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
