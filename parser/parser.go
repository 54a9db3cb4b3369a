// Copyright © 2018 The ELPS authors

/*
Package parser provides the lisp reader.

	expr     := '(' <expr>* ')' | '[' <expr>* ']' | '{' <expr>* '}'
	          | "'" <expr> | '`' <expr> | ',@' <expr> | ',' <expr>
	          | <number> | <string> | <symbol>
	number   := /[+-]?[0-9]+/ <fraction>? <exponent>?
	fraction := '.' /[0-9]+/
	exponent := e /[+-]?[0-9]+/
	string   := '"' <strcontent> '"'
	symbol   := /[^[:space:]()\[\]{}'`,;"]+/

Comments begin with ';' and run to the end of the line.  The unquote
prefixes may also be written '~' and '~@'.  Brackets read as a call to list
and braces read as a map literal when every element is a literal scalar and
as a call to hash-map otherwise.  The symbols true and false read as bools.
*/
package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/luthersystems/ares/lisp"
	parsec "github.com/prataprc/goparsec"
)

// NewReader returns a lisp.Reader.
func NewReader() lisp.Reader {
	return &parsecReader{}
}

type parsecReader struct{}

func (p *parsecReader) Read(in *lisp.Interner, name string, r io.Reader) ([]lisp.Value, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	vals, err := Parse(in, b)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", name, err)
	}
	return vals, nil
}

// Parse reads every expression in text.
func Parse(in *lisp.Interner, text []byte) ([]lisp.Value, error) {
	var vals []lisp.Value
	s := parsec.NewScanner(text)
	s = s.TrackLineno()
	parser := newParsecParser(in)
	root, s := parser(s)
	for root != nil {
		v, err := getValue(root)
		if err != nil {
			return nil, fmt.Errorf("%d: %w", s.Lineno(), err)
		}
		if v != nil {
			vals = append(vals, v)
		}
		root, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		b, _ := s.Match(`.{1,16}`)
		if len(b) > 15 {
			b = append(b[:15:15], []byte("...")...)
		}
		return nil, fmt.Errorf("%d: unexpected source text possibly starting: %s", s.Lineno(), b)
	}
	return vals, nil
}

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeList
	nodeVector
	nodeMap
	nodeQuote
	nodeQuasiquote
	nodeUnquote
	nodeUnquoteSplicing
	nodeUnmatched
)

var nodeTypeStrings = []string{
	nodeInvalid:         "INVALID",
	nodeTerm:            "TERM",
	nodeList:            "LIST",
	nodeVector:          "VECTOR",
	nodeMap:             "MAP",
	nodeQuote:           "QUOTE",
	nodeQuasiquote:      "QUASIQUOTE",
	nodeUnquote:         "UNQUOTE",
	nodeUnquoteSplicing: "UNQUOTESPLICING",
	nodeUnmatched:       "UNMATCHED",
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

const symbolPattern = `(?:\pL|[._+\-*/\=<>!&%?$^|])(?:\pL|[0-9]|[._+\-*/\=<>!&%?$^|#:])*`

func newParsecParser(in *lisp.Interner) parsec.Parser {
	b := &builder{in: in}
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	openB := parsec.Atom("[", "OPENB")
	closeB := parsec.Atom("]", "CLOSEB")
	openC := parsec.Atom("{", "OPENC")
	closeC := parsec.Atom("}", "CLOSEC")
	q := parsec.Atom("'", "QUOTE")
	qq := parsec.Atom("`", "QUASIQUOTE")
	uqs := parsec.Token(`,@|~@`, "UNQUOTESPLICING")
	uq := parsec.Token(`,|~`, "UNQUOTE")
	comment := parsec.Token(`;([^\n]*[^\s])?`, "COMMENT")
	decimal := parsec.Token(`[+-]?[0-9]+([.][0-9]+)?([eE][+-]?[0-9]+)?`, "DECIMAL")
	symbol := parsec.Token(symbolPattern, "SYMBOL")
	term := parsec.OrdChoice(b.astNode(nodeTerm),
		parsec.String(),
		decimal,
		symbol, // symbol comes last because it swallows signs
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	list := parsec.And(b.astNode(nodeList), openP, exprList, closeP)
	vector := parsec.And(b.astNode(nodeVector), openB, exprList, closeB)
	mapLit := parsec.And(b.astNode(nodeMap), openC, exprList, closeC)
	quoted := parsec.And(b.astNode(nodeQuote), q, &expr)
	quasiquoted := parsec.And(b.astNode(nodeQuasiquote), qq, &expr)
	spliced := parsec.And(b.astNode(nodeUnquoteSplicing), uqs, &expr)
	unquoted := parsec.And(b.astNode(nodeUnquote), uq, &expr)
	listUnmatched := parsec.And(b.astNode(nodeUnmatched), openP, exprList, parsec.End())
	vectorUnmatched := parsec.And(b.astNode(nodeUnmatched), openB, exprList, parsec.End())
	mapUnmatched := parsec.And(b.astNode(nodeUnmatched), openC, exprList, parsec.End())
	expr = parsec.OrdChoice(nil,
		comment,
		term,
		list,
		vector,
		mapLit,
		quoted,
		quasiquoted,
		spliced, // before unquoted so ",@" is not read as ","
		unquoted,
		// Error matching cases come last because they have the lowest
		// precedence.
		listUnmatched,
		vectorUnmatched,
		mapUnmatched,
	)
	return expr
}

type builder struct {
	in *lisp.Interner
}

func (b *builder) astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return b.newAST(t, nodes)
	}
}

// newAST converts matched nodes into a lisp.Value or an error.  It never
// returns nil because goparsec treats a nil node as a failed match.
func (b *builder) newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes, ok := cleanParsecNodeList(nodes)
	if !ok {
		// There is an error in the first position.
		return nodes[0]
	}
	switch typ {
	case nodeTerm:
		return b.term(nodes[0])
	case nodeUnmatched:
		open := nodes[0].(*parsec.Terminal)
		rest := open.GetValue() + stringifyNodes(b.in, nodes[1:])
		if len(rest) > 10 {
			rest = rest[:10] + "..."
		}
		return fmt.Errorf("unmatched %q starting: %v", open.GetValue(), rest)
	case nodeList:
		return valuesOf(nodes)
	case nodeVector:
		return append(lisp.List{b.in.Intern("list")}, valuesOf(nodes)...)
	case nodeMap:
		return b.mapLiteral(valuesOf(nodes))
	case nodeQuote:
		return b.wrap("quote", nodes)
	case nodeQuasiquote:
		return b.wrap("quasiquote", nodes)
	case nodeUnquote:
		return b.wrap("unquote", nodes)
	case nodeUnquoteSplicing:
		return b.wrap("unquote-splicing", nodes)
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

func (b *builder) term(node parsec.ParsecNode) parsec.ParsecNode {
	switch term := node.(type) {
	case string:
		return lisp.String(unquoteString(term))
	case *parsec.Terminal:
		switch term.Name {
		case "DECIMAL":
			if strings.ContainsAny(term.Value, ".eE") {
				f, err := strconv.ParseFloat(term.Value, 64)
				if err != nil {
					return fmt.Errorf("bad number: %v (%s)", err, term.Value)
				}
				return lisp.Float(f)
			}
			x, err := strconv.ParseInt(term.Value, 10, 64)
			if err != nil {
				return fmt.Errorf("bad number: %v (%s)", err, term.Value)
			}
			return lisp.Int(x)
		case "SYMBOL":
			switch term.Value {
			case "true":
				return lisp.Bool(true)
			case "false":
				return lisp.Bool(false)
			}
			return b.in.Intern(term.Value)
		}
	}
	return fmt.Errorf("unexpected term: %v", node)
}

// wrap builds (name x) from a prefix form such as 'x.
func (b *builder) wrap(name string, nodes []parsec.ParsecNode) parsec.ParsecNode {
	vals := valuesOf(nodes)
	if len(vals) != 1 {
		return fmt.Errorf("%s expects one expression", name)
	}
	return lisp.List{b.in.Intern(name), vals[0]}
}

func (b *builder) mapLiteral(vals lisp.List) parsec.ParsecNode {
	if len(vals)%2 != 0 {
		return fmt.Errorf("map literal has an odd number of elements (%d)", len(vals))
	}
	literal := true
	for _, v := range vals {
		switch v.(type) {
		case lisp.Int, lisp.Float, lisp.Bool, lisp.String:
		default:
			literal = false
		}
	}
	if !literal {
		return append(lisp.List{b.in.Intern("hash-map")}, vals...)
	}
	m, err := lisp.NewMapFromPairs(vals)
	if err != nil {
		return err
	}
	return m
}

// valuesOf returns the lisp values among nodes, dropping delimiters.
func valuesOf(nodes []parsec.ParsecNode) lisp.List {
	vals := lisp.List{}
	for _, n := range nodes {
		if v, ok := n.(lisp.Value); ok {
			vals = append(vals, v)
		}
	}
	return vals
}

func stringifyNodes(in *lisp.Interner, nodes []parsec.ParsecNode) string {
	var s []string
	for _, node := range nodes {
		switch node := node.(type) {
		case *parsec.Terminal:
			switch node.GetName() {
			case "OPENP", "CLOSEP", "OPENB", "CLOSEB", "OPENC", "CLOSEC", "END":
				continue
			}
			s = append(s, node.GetValue())
		case lisp.Value:
			s = append(s, lisp.Format(in, node))
		case nil:
		default:
			s = append(s, fmt.Sprint(node))
		}
	}
	return strings.Join(s, " ")
}

func cleanParsecNodeList(lis []parsec.ParsecNode) ([]parsec.ParsecNode, bool) {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case *parsec.Terminal:
			if node.Name == "COMMENT" {
				continue
			}
			nodes = append(nodes, node)
		case error:
			return []parsec.ParsecNode{node}, false
		case []parsec.ParsecNode:
			clean, ok := cleanParsecNodeList(node)
			if !ok {
				return clean, false
			}
			nodes = append(nodes, clean...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes, true
}

// getValue returns the value parsed at root.  A nil value with a nil error
// means root was a comment.
func getValue(root parsec.ParsecNode) (lisp.Value, error) {
	nodes, ok := cleanParsecNodeList([]parsec.ParsecNode{root})
	if !ok {
		return nil, nodes[0].(error)
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	v, ok := nodes[0].(lisp.Value)
	if !ok {
		return nil, nil
	}
	return v, nil
}

// The goparsec.String() parser unescapes the source text but leaves the
// surrounding double quotes in place.
func unquoteString(s string) string {
	return s[1 : len(s)-1]
}
