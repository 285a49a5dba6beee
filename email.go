package schematic

import (
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// Email is a String specialization: input lowercases on conversion and must
// satisfy the RFC 5322-style grammar below (dot-atom or quoted-string local
// part, dotted domain or IPv4 literal). A non-ASCII domain is retried once
// through IDNA before failing.
func Email(opts ...Option) *EmailSchema {
	return &EmailSchema{base: newBase(opts, MaxLength(254), emailChecker{})}
}

// EmailSchema is the e-mail address variant.
type EmailSchema struct{ base }

func (s *EmailSchema) Convert(v any) (any, error) { return s.ConvertPath(v, nil) }

func (s *EmailSchema) ConvertPath(v any, p Path) (any, error) {
	if str, ok := v.(string); ok {
		if !s.opt.noStrip {
			str = strings.TrimSpace(str)
			v = str
		}
		if str == "" && s.opt.blank {
			return "", nil
		}
	}
	return convertNode(&s.opt, v, p, s.convert)
}

func (s *EmailSchema) convert(v any, p Path) (any, error) {
	return strings.ToLower(stringify(v)), nil
}

var emailRe = regexp.MustCompile(`(?i)^(?:` +
	// dot-atom
	"(?:[-!#$%&'*+/=?^_`{}|~0-9A-Z]+(?:\\.[-!#$%&'*+/=?^_`{}|~0-9A-Z]+)*" +
	// quoted-string, see also RFC 2822 section 3.2.5
	"|\"(?:[\\x01-\\x08\\x0b\\x0c\\x0e-\\x1f!#-\\[\\]-\\x7f]|\\\\[\\x01-\\x09\\x0b\\x0c\\x0e-\\x7f])*\")" +
	// domain
	"@(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\\.)+[A-Z]{2,6}\\.?)$" +
	// literal form, ipv4 address (SMTP 4.1.3)
	"|\\[(?:25[0-5]|2[0-4]\\d|[01]?\\d?\\d)(?:\\.(?:25[0-5]|2[0-4]\\d|[01]?\\d?\\d)){3}\\]$" +
	`)`)

type emailChecker struct{}

func (emailChecker) Check(v any, p Path) *Invalid {
	value, ok := v.(string)
	if !ok {
		return invalidValueAt(p, CodeInvalidEmail, nil, v)
	}
	if emailRe.MatchString(value) {
		return nil
	}
	// Trivial case failed. Try for a possible IDN domain part.
	if at := strings.LastIndex(value, "@"); at >= 0 {
		if domain, err := idna.Lookup.ToASCII(value[at+1:]); err == nil {
			if emailRe.MatchString(value[:at+1] + domain) {
				return nil
			}
		}
	}
	return invalidValueAt(p, CodeInvalidEmail, nil, value)
}
