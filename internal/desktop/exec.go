package desktop

import (
	"strings"

	"github.com/jmylchreest/tilemenu/internal/model"
)

// ExpandExec returns the entry's Exec line with field codes resolved for a
// launch without files or URLs.
//
//	%f %F %u %U %d %D %n %N %v %m  removed
//	%i                              --icon <Icon>, or removed without an icon
//	%c                              the display name
//	%k                              the desktop file path
//	%%                              a literal %
func ExpandExec(app *model.Application) string {
	src := app.Exec
	var b strings.Builder

	for i := 0; i < len(src); i++ {
		if src[i] != '%' || i+1 == len(src) {
			b.WriteByte(src[i])
			continue
		}
		i++
		switch src[i] {
		case '%':
			b.WriteByte('%')
		case 'i':
			if app.Icon != "" {
				b.WriteString("--icon ")
				b.WriteString(shellQuote(app.Icon))
			}
		case 'c':
			b.WriteString(shellQuote(app.DisplayName()))
		case 'k':
			if app.Path != "" {
				b.WriteString(shellQuote(app.Path))
			}
		case 'f', 'F', 'u', 'U', 'd', 'D', 'n', 'N', 'v', 'm':
		default:
			// unknown codes are dropped
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// shellQuote quotes s for sh when it contains anything beyond a safe set.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./:=+@", r)) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
