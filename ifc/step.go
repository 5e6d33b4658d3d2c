package ifc

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
)

// ParamKind tags the variant held by a Param.
type ParamKind int

const (
	ParamNull    ParamKind = iota // $
	ParamDerived                  // *
	ParamRef                      // #12
	ParamString                   // 'text'
	ParamInteger                  // 12
	ParamReal                     // 1.5E-3
	ParamEnum                     // .ELEMENT.
	ParamList                     // (a,b)
	ParamTyped                    // IFCLABEL('x')
	ParamBinary                   // "0A1"
)

// Param is one positional argument of a STEP instance.
type Param struct {
	Kind ParamKind
	Ref  int
	Str  string // string, enum, binary or the type keyword of a typed value
	Int  int64
	Real float64
	List []Param // list items, or the single wrapped value of a typed param
}

func (p Param) IsNull() bool { return p.Kind == ParamNull || p.Kind == ParamDerived }

// rawInstance is an instance before the model links it.
type rawInstance struct {
	id      int
	keyword string
	args    []Param
	parts   []string
	line    int
}

type header struct {
	schema      string
	fileName    string
	description string
}

type scanner struct {
	src  []byte
	pos  int
	line int
}

func (s *scanner) errorf(format string, args ...interface{}) error {
	return &ParseError{Line: s.line, Msg: fmt.Sprintf(format, args...)}
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) next() byte {
	c := s.src[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
	}
	return c
}

// skipSpace skips whitespace and /* */ comments.
func (s *scanner) skipSpace() error {
	for !s.eof() {
		c := s.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.next()
		case c == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '*':
			start := s.line
			s.pos += 2
			for {
				if s.pos+1 >= len(s.src) {
					return &ParseError{Line: start, Msg: "unterminated comment"}
				}
				if s.src[s.pos] == '*' && s.src[s.pos+1] == '/' {
					s.pos += 2
					break
				}
				s.next()
			}
		default:
			return nil
		}
	}
	return nil
}

func (s *scanner) expect(c byte) error {
	if err := s.skipSpace(); err != nil {
		return err
	}
	if s.eof() {
		return s.errorf("expected %q, got end of file", c)
	}
	if s.peek() != c {
		return s.errorf("expected %q, got %q", c, s.peek())
	}
	s.next()
	return nil
}

func isKeywordByte(c byte) bool {
	return c == '_' || c == '-' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

func (s *scanner) keyword() (string, error) {
	if err := s.skipSpace(); err != nil {
		return "", err
	}
	start := s.pos
	for !s.eof() && isKeywordByte(s.peek()) {
		s.pos++
	}
	if start == s.pos {
		if s.eof() {
			return "", s.errorf("expected keyword, got end of file")
		}
		return "", s.errorf("expected keyword, got %q", s.peek())
	}
	return strings.ToUpper(string(s.src[start:s.pos])), nil
}

func (s *scanner) expectKeyword(want string) error {
	kw, err := s.keyword()
	if err != nil {
		return err
	}
	if kw != want {
		return s.errorf("expected %s, got %s", want, kw)
	}
	return nil
}

func (s *scanner) list() ([]Param, error) {
	if err := s.expect('('); err != nil {
		return nil, err
	}
	var items []Param
	if err := s.skipSpace(); err != nil {
		return nil, err
	}
	if s.peek() == ')' {
		s.next()
		return items, nil
	}
	for {
		p, err := s.param()
		if err != nil {
			return nil, err
		}
		items = append(items, p)
		if err := s.skipSpace(); err != nil {
			return nil, err
		}
		if s.eof() {
			return nil, s.errorf("unterminated parameter list")
		}
		switch s.next() {
		case ',':
		case ')':
			return items, nil
		default:
			return nil, s.errorf("expected ',' or ')' in parameter list")
		}
	}
}

func (s *scanner) param() (Param, error) {
	if err := s.skipSpace(); err != nil {
		return Param{}, err
	}
	if s.eof() {
		return Param{}, s.errorf("expected parameter, got end of file")
	}
	c := s.peek()
	switch {
	case c == '$':
		s.next()
		return Param{Kind: ParamNull}, nil
	case c == '*':
		s.next()
		return Param{Kind: ParamDerived}, nil
	case c == '#':
		s.next()
		id, err := s.integer()
		if err != nil {
			return Param{}, err
		}
		return Param{Kind: ParamRef, Ref: id}, nil
	case c == '\'':
		str, err := s.stringLiteral()
		if err != nil {
			return Param{}, err
		}
		return Param{Kind: ParamString, Str: str}, nil
	case c == '"':
		s.next()
		start := s.pos
		for !s.eof() && s.peek() != '"' {
			s.next()
		}
		if s.eof() {
			return Param{}, s.errorf("unterminated binary literal")
		}
		str := string(s.src[start:s.pos])
		s.next()
		return Param{Kind: ParamBinary, Str: str}, nil
	case c == '.':
		s.next()
		start := s.pos
		for !s.eof() && s.peek() != '.' {
			if !isKeywordByte(s.peek()) {
				return Param{}, s.errorf("invalid enumeration literal")
			}
			s.next()
		}
		if s.eof() {
			return Param{}, s.errorf("unterminated enumeration literal")
		}
		str := strings.ToUpper(string(s.src[start:s.pos]))
		s.next()
		return Param{Kind: ParamEnum, Str: str}, nil
	case c == '(':
		items, err := s.list()
		if err != nil {
			return Param{}, err
		}
		return Param{Kind: ParamList, List: items}, nil
	case c == '-' || c == '+' || (c >= '0' && c <= '9'):
		return s.number()
	case (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'):
		kw, err := s.keyword()
		if err != nil {
			return Param{}, err
		}
		inner, err := s.list()
		if err != nil {
			return Param{}, err
		}
		return Param{Kind: ParamTyped, Str: kw, List: inner}, nil
	}
	return Param{}, s.errorf("unexpected character %q", c)
}

func (s *scanner) integer() (int, error) {
	start := s.pos
	for !s.eof() && s.peek() >= '0' && s.peek() <= '9' {
		s.pos++
	}
	if start == s.pos {
		return 0, s.errorf("expected instance id")
	}
	id, err := strconv.Atoi(string(s.src[start:s.pos]))
	if err != nil {
		return 0, s.errorf("invalid instance id: %v", err)
	}
	return id, nil
}

func (s *scanner) number() (Param, error) {
	start := s.pos
	isReal := false
	for !s.eof() {
		c := s.peek()
		if c == '.' || c == 'E' || c == 'e' {
			isReal = true
		} else if !(c == '-' || c == '+' || (c >= '0' && c <= '9')) {
			break
		}
		s.pos++
	}
	text := string(s.src[start:s.pos])
	if isReal {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Param{}, s.errorf("invalid real %q", text)
		}
		return Param{Kind: ParamReal, Real: f}, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Param{}, s.errorf("invalid integer %q", text)
	}
	return Param{Kind: ParamInteger, Int: n}, nil
}

func (s *scanner) stringLiteral() (string, error) {
	startLine := s.line
	s.next() // opening quote
	var b strings.Builder
	for {
		if s.eof() {
			return "", &ParseError{Line: startLine, Msg: "unterminated string"}
		}
		c := s.next()
		if c == '\'' {
			if s.peek() == '\'' {
				s.next()
				b.WriteByte('\'')
				continue
			}
			break
		}
		b.WriteByte(c)
	}
	return decodeString(b.String()), nil
}

// decodeString expands the ISO 10303-21 control directives \X\, \X2\, \X4\,
// \S\ and \\ into UTF-8. Unknown directives are left untouched.
func decodeString(raw string) string {
	if !strings.Contains(raw, `\`) {
		return raw
	}
	var b strings.Builder
	for i := 0; i < len(raw); {
		if raw[i] != '\\' {
			b.WriteByte(raw[i])
			i++
			continue
		}
		rest := raw[i:]
		switch {
		case strings.HasPrefix(rest, `\\`):
			b.WriteByte('\\')
			i += 2
		case strings.HasPrefix(rest, `\X2\`), strings.HasPrefix(rest, `\X4\`):
			width := 4
			if rest[2] == '4' {
				width = 8
			}
			end := strings.Index(rest[4:], `\X0\`)
			if end < 0 {
				b.WriteString(rest)
				return b.String()
			}
			hex := rest[4 : 4+end]
			var units []uint16
			for j := 0; j+width <= len(hex); j += width {
				v, err := strconv.ParseUint(hex[j:j+width], 16, 32)
				if err != nil {
					continue
				}
				if width == 8 {
					b.WriteRune(rune(v))
				} else {
					units = append(units, uint16(v))
				}
			}
			if len(units) > 0 {
				b.WriteString(string(utf16.Decode(units)))
			}
			i += 4 + end + 4
		case strings.HasPrefix(rest, `\X\`) && len(rest) >= 5:
			v, err := strconv.ParseUint(rest[3:5], 16, 8)
			if err != nil {
				b.WriteByte(raw[i])
				i++
				continue
			}
			b.WriteRune(rune(v))
			i += 5
		case strings.HasPrefix(rest, `\S\`) && len(rest) >= 4:
			b.WriteRune(rune(rest[3]) + 128)
			i += 4
		case len(rest) >= 4 && rest[1] == 'P' && rest[3] == '\\':
			// code page switch, \PA\ .. \PI\
			i += 4
		default:
			b.WriteByte(raw[i])
			i++
		}
	}
	return b.String()
}

// ctxCheckEvery is how many DATA instances are read between ctx polls.
const ctxCheckEvery = 256

// parseExchange parses a complete exchange structure into its header and
// DATA section instances. ctx is polled before the DATA section and every
// ctxCheckEvery instances within it.
func parseExchange(ctx context.Context, src []byte) (header, []rawInstance, error) {
	s := &scanner{src: src, line: 1}
	var h header
	if err := s.expectKeyword("ISO-10303-21"); err != nil {
		return h, nil, err
	}
	if err := s.expect(';'); err != nil {
		return h, nil, err
	}
	if err := s.expectKeyword("HEADER"); err != nil {
		return h, nil, err
	}
	if err := s.expect(';'); err != nil {
		return h, nil, err
	}
	for {
		kw, err := s.keyword()
		if err != nil {
			return h, nil, err
		}
		if kw == "ENDSEC" {
			break
		}
		args, err := s.list()
		if err != nil {
			return h, nil, err
		}
		if err := s.expect(';'); err != nil {
			return h, nil, err
		}
		switch kw {
		case "FILE_SCHEMA":
			if len(args) > 0 && args[0].Kind == ParamList && len(args[0].List) > 0 {
				h.schema = strings.ToUpper(args[0].List[0].Str)
			}
		case "FILE_NAME":
			if len(args) > 0 {
				h.fileName = args[0].Str
			}
		case "FILE_DESCRIPTION":
			if len(args) > 0 && args[0].Kind == ParamList && len(args[0].List) > 0 {
				h.description = args[0].List[0].Str
			}
		}
	}
	if err := s.expect(';'); err != nil {
		return h, nil, err
	}

	var instances []rawInstance
	for {
		kw, err := s.keyword()
		if err != nil {
			return h, nil, err
		}
		if kw == "END-ISO-10303-21" {
			break
		}
		if kw != "DATA" {
			return h, nil, s.errorf("expected DATA section, got %s", kw)
		}
		if err := s.skipSpace(); err != nil {
			return h, nil, err
		}
		if s.peek() == '(' {
			if _, err := s.list(); err != nil {
				return h, nil, err
			}
		}
		if err := s.expect(';'); err != nil {
			return h, nil, err
		}
		for {
			if err := s.skipSpace(); err != nil {
				return h, nil, err
			}
			if s.eof() {
				return h, nil, s.errorf("unterminated DATA section")
			}
			if len(instances)%ctxCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return h, nil, err
				}
			}
			if s.peek() != '#' {
				if err := s.expectKeyword("ENDSEC"); err != nil {
					return h, nil, err
				}
				if err := s.expect(';'); err != nil {
					return h, nil, err
				}
				break
			}
			inst, err := s.instance()
			if err != nil {
				return h, nil, err
			}
			instances = append(instances, inst)
		}
	}
	return h, instances, nil
}

func (s *scanner) instance() (rawInstance, error) {
	inst := rawInstance{line: s.line}
	s.next() // '#'
	id, err := s.integer()
	if err != nil {
		return inst, err
	}
	inst.id = id
	if err := s.expect('='); err != nil {
		return inst, err
	}
	if err := s.skipSpace(); err != nil {
		return inst, err
	}
	if s.peek() == '(' {
		// complex instance: (IFCA(...)IFCB(...))
		s.next()
		for {
			if err := s.skipSpace(); err != nil {
				return inst, err
			}
			if s.peek() == ')' {
				s.next()
				break
			}
			kw, err := s.keyword()
			if err != nil {
				return inst, err
			}
			if _, err := s.list(); err != nil {
				return inst, err
			}
			inst.parts = append(inst.parts, kw)
		}
		if len(inst.parts) > 0 {
			inst.keyword = inst.parts[len(inst.parts)-1]
		}
	} else {
		kw, err := s.keyword()
		if err != nil {
			return inst, err
		}
		inst.keyword = kw
		args, err := s.list()
		if err != nil {
			return inst, err
		}
		inst.args = args
	}
	if err := s.expect(';'); err != nil {
		return inst, err
	}
	return inst, nil
}
