package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/aymerick/raymond"
	"github.com/cp-helper/judge/internal/logger"
	"github.com/cp-helper/judge/pkg/errors"
	"go.uber.org/zap"
)

// Renderer renders handlebars templates. The same template and context
// always produce the same text.
type Renderer interface {
	Render(templateSource string, context interface{}) (string, error)
}

type renderer struct {
	logger *zap.SugaredLogger
}

func NewRenderer() Renderer {
	return &renderer{
		logger: logger.NewNamedLogger("render"),
	}
}

func (r *renderer) Render(templateSource string, context interface{}) (string, error) {
	tpl, err := raymond.Parse(templateSource)
	if err != nil {
		r.logger.Errorf("Failed to parse template: %s", err)
		return "", fmt.Errorf("%w: %s", errors.ErrTemplate, err)
	}
	registerHelpers(tpl)

	out, err := tpl.Exec(context)
	if err != nil {
		r.logger.Errorf("Failed to execute template: %s", err)
		return "", fmt.Errorf("%w: %s", errors.ErrTemplate, err)
	}
	return out, nil
}

func registerHelpers(tpl *raymond.Template) {
	tpl.RegisterHelper("lower", func(s string) string { return strings.ToLower(s) })
	tpl.RegisterHelper("upper", func(s string) string { return strings.ToUpper(s) })
	tpl.RegisterHelper("trim", func(s string) string { return strings.TrimSpace(s) })
	tpl.RegisterHelper("kebab", func(s string) string { return joinWords(s, "-") })
	tpl.RegisterHelper("snake", func(s string) string { return joinWords(s, "_") })
	tpl.RegisterHelper("regex_capture", regexCapture)
}

// joinWords lowercases s and joins its alphanumeric runs with sep.
func joinWords(s, sep string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(words, sep)
}

// regexCapture returns capture group index of the first match of pattern in
// text, or an empty string when nothing matches.
func regexCapture(pattern, text string, index interface{}) string {
	re, err := regexp.Compile(pattern)
	if err != nil {
		panic(fmt.Sprintf("regex_capture: invalid pattern %q: %s", pattern, err))
	}
	idx, err := strconv.Atoi(raymond.Str(index))
	if err != nil {
		panic(fmt.Sprintf("regex_capture: invalid group index %v", index))
	}
	m := re.FindStringSubmatch(text)
	if m == nil || idx < 0 || idx >= len(m) {
		return ""
	}
	return m[idx]
}
