package adapter

import (
	"fmt"
	"slices"
)

// primSpec is the parsed content of one prim block. Variant bodies reuse the
// same shape with an empty name.
type primSpec struct {
	specifier string
	typeName  string
	name      string

	active    bool
	activeSet bool

	visibility    string
	hasVisibility bool

	bindingTargets []string
	hasBinding     bool

	variantSets   []string
	selections    map[string]string
	variantBodies map[string]map[string]*primSpec

	children []*primSpec
}

func newPrimSpec(specifier, typeName, name string) *primSpec {
	return &primSpec{
		specifier:     specifier,
		typeName:      typeName,
		name:          name,
		active:        true,
		selections:    map[string]string{},
		variantBodies: map[string]map[string]*primSpec{},
	}
}

func (p *primSpec) declareVariantSet(name string) {
	if name != "" && !slices.Contains(p.variantSets, name) {
		p.variantSets = append(p.variantSets, name)
	}
}

func (p *primSpec) child(name string) *primSpec {
	for _, c := range p.children {
		if c.name == name {
			return c
		}
	}

	return nil
}

var listOpPrefixes = map[string]bool{
	"prepend": true,
	"append":  true,
	"add":     true,
	"delete":  true,
	"reorder": true,
}

var specifiers = map[string]bool{
	"def":   true,
	"over":  true,
	"class": true,
}

var closers = map[string]string{"(": ")", "[": "]", "{": "}"}

// usdaParser builds prim specs from a token stream with one token of lookahead.
type usdaParser struct {
	lex    *usdaLexer
	peeked *token
}

func newUSDAParser(src string) *usdaParser {
	return &usdaParser{lex: newUSDALexer(src)}
}

func (p *usdaParser) peek() (token, error) {
	if p.peeked == nil {
		tok, err := p.lex.next()
		if err != nil {
			return token{}, err
		}

		p.peeked = &tok
	}

	return *p.peeked, nil
}

func (p *usdaParser) next() (token, error) {
	tok, err := p.peek()
	p.peeked = nil

	return tok, err
}

func (p *usdaParser) expect(kind tokenKind, text string) (token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}

	if tok.kind != kind || (text != "" && tok.text != text) {
		want := kind.String()
		if text != "" {
			want = fmt.Sprintf("%q", text)
		}

		return tok, fmt.Errorf("line %d: expected %s, found %s", tok.line, want, tok)
	}

	return tok, nil
}

func (p *usdaParser) peekIs(kind tokenKind, text string) (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}

	return tok.is(kind, text), nil
}

// parseLayer returns the root prim specs of the layer.
func (p *usdaParser) parseLayer() ([]*primSpec, error) {
	if open, err := p.peekIs(tokPunct, "("); err != nil {
		return nil, err
	} else if open {
		if err := p.skipGroup(); err != nil {
			return nil, err
		}
	}

	root := newPrimSpec("", "", "")

	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}

		if tok.kind == tokEOF {
			return root.children, nil
		}

		if tok.kind != tokWord || !specifiers[tok.text] {
			return nil, fmt.Errorf("line %d: expected prim definition, found %s", tok.line, tok)
		}

		prim, err := p.parsePrim(tok.text)
		if err != nil {
			return nil, err
		}

		root.children = append(root.children, prim)
	}
}

// parsePrim parses a prim after its specifier keyword.
func (p *usdaParser) parsePrim(specifier string) (*primSpec, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	typeName := ""
	if tok.kind == tokWord {
		typeName = tok.text

		if tok, err = p.next(); err != nil {
			return nil, err
		}
	}

	if tok.kind != tokString {
		return nil, fmt.Errorf("line %d: expected prim name, found %s", tok.line, tok)
	}

	prim := newPrimSpec(specifier, typeName, tok.text)

	if open, err := p.peekIs(tokPunct, "("); err != nil {
		return nil, err
	} else if open {
		if err := p.parsePrimMetadata(prim); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(tokPunct, "{"); err != nil {
		return nil, err
	}

	if err := p.parsePrimBody(prim); err != nil {
		return nil, err
	}

	return prim, nil
}

func (p *usdaParser) parsePrimBody(prim *primSpec) error {
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}

		switch {
		case tok.is(tokPunct, "}"):
			_, err = p.next()
			return err
		case tok.kind == tokEOF:
			return fmt.Errorf("line %d: unterminated prim %q", tok.line, prim.name)
		case tok.is(tokPunct, ";"):
			_, err = p.next()
		case tok.kind == tokWord && specifiers[tok.text]:
			_, _ = p.next()

			var child *primSpec

			child, err = p.parsePrim(tok.text)
			if err == nil {
				prim.children = append(prim.children, child)
			}
		case tok.is(tokWord, "variantSet"):
			err = p.parseVariantSet(prim)
		default:
			err = p.parseProperty(prim)
		}

		if err != nil {
			return err
		}
	}
}

func (p *usdaParser) parseProperty(prim *primSpec) error {
	tok, err := p.expect(tokWord, "")
	if err != nil {
		return err
	}

	listOp := ""
	if listOpPrefixes[tok.text] {
		listOp = tok.text

		if tok, err = p.expect(tokWord, ""); err != nil {
			return err
		}

		if listOp == "reorder" && (tok.text == "nameChildren" || tok.text == "properties") {
			return p.skipAssignment()
		}
	}

	if tok.text == "custom" {
		if tok, err = p.expect(tokWord, ""); err != nil {
			return err
		}
	}

	if tok.text == "uniform" || tok.text == "varying" || tok.text == "config" {
		if tok, err = p.expect(tokWord, ""); err != nil {
			return err
		}
	}

	if tok.text == "rel" {
		return p.parseRelationship(prim, listOp)
	}

	typeName := tok.text

	if open, err := p.peekIs(tokPunct, "["); err != nil {
		return err
	} else if open {
		_, _ = p.next()

		if _, err := p.expect(tokPunct, "]"); err != nil {
			return err
		}

		typeName += "[]"
	}

	name, err := p.expect(tokWord, "")
	if err != nil {
		return err
	}

	if assign, err := p.peekIs(tokPunct, "="); err != nil {
		return err
	} else if assign {
		_, _ = p.next()

		value, err := p.parseValue()
		if err != nil {
			return err
		}

		if name.text == "visibility" && typeName == "token" && value.kind == tokString && listOp != "delete" {
			prim.visibility = value.text
			prim.hasVisibility = true
		}
	}

	return p.skipOptionalMetadata()
}

func (p *usdaParser) parseRelationship(prim *primSpec, listOp string) error {
	name, err := p.expect(tokWord, "")
	if err != nil {
		return err
	}

	var targets []string

	assigned, err := p.peekIs(tokPunct, "=")
	if err != nil {
		return err
	}

	if assigned {
		_, _ = p.next()

		if targets, err = p.parseTargets(); err != nil {
			return err
		}
	}

	if name.text == "material:binding" && listOp != "delete" {
		if listOp == "" || !prim.hasBinding {
			prim.bindingTargets = targets
		} else {
			prim.bindingTargets = append(targets, prim.bindingTargets...)
		}

		prim.hasBinding = true
	}

	return p.skipOptionalMetadata()
}

func (p *usdaParser) parseTargets() ([]string, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	switch {
	case tok.kind == tokTarget:
		return []string{tok.text}, nil
	case tok.is(tokWord, "None"):
		return nil, nil
	case tok.is(tokPunct, "["):
		var targets []string

		for {
			tok, err = p.next()
			if err != nil {
				return nil, err
			}

			switch {
			case tok.is(tokPunct, "]"):
				return targets, nil
			case tok.is(tokPunct, ","):
			case tok.kind == tokTarget:
				targets = append(targets, tok.text)
			default:
				return nil, fmt.Errorf("line %d: expected path reference, found %s", tok.line, tok)
			}
		}
	default:
		return nil, fmt.Errorf("line %d: expected relationship targets, found %s", tok.line, tok)
	}
}

// parseValue consumes one value. Grouped values are skipped and returned as
// their opening punctuation token.
func (p *usdaParser) parseValue() (token, error) {
	tok, err := p.peek()
	if err != nil {
		return tok, err
	}

	if _, grouped := closers[tok.text]; grouped && tok.kind == tokPunct {
		return tok, p.skipGroup()
	}

	tok, err = p.next()
	if err != nil {
		return tok, err
	}

	switch tok.kind {
	case tokWord, tokString, tokTarget:
		return tok, nil
	case tokAsset:
		// references = @file.usda@</Prim>
		if target, err := p.peek(); err == nil && target.kind == tokTarget {
			_, _ = p.next()
		}

		return tok, nil
	default:
		return tok, fmt.Errorf("line %d: expected value, found %s", tok.line, tok)
	}
}

func (p *usdaParser) skipAssignment() error {
	if _, err := p.expect(tokPunct, "="); err != nil {
		return err
	}

	_, err := p.parseValue()

	return err
}

func (p *usdaParser) skipOptionalMetadata() error {
	open, err := p.peekIs(tokPunct, "(")
	if err != nil || !open {
		return err
	}

	return p.skipGroup()
}

// skipGroup consumes a bracketed group including nested groups.
func (p *usdaParser) skipGroup() error {
	open, err := p.next()
	if err != nil {
		return err
	}

	stack := []string{closers[open.text]}

	for len(stack) > 0 {
		tok, err := p.next()
		if err != nil {
			return err
		}

		if tok.kind == tokEOF {
			return fmt.Errorf("line %d: unterminated %q group", open.line, open.text)
		}

		if tok.kind != tokPunct {
			continue
		}

		if closer, ok := closers[tok.text]; ok {
			stack = append(stack, closer)
			continue
		}

		if tok.text == stack[len(stack)-1] {
			stack = stack[:len(stack)-1]
		} else if tok.text == ")" || tok.text == "]" || tok.text == "}" {
			return fmt.Errorf("line %d: mismatched %q", tok.line, tok.text)
		}
	}

	return nil
}

func (p *usdaParser) parsePrimMetadata(prim *primSpec) error {
	if _, err := p.expect(tokPunct, "("); err != nil {
		return err
	}

	for {
		tok, err := p.next()
		if err != nil {
			return err
		}

		switch {
		case tok.is(tokPunct, ")"):
			return nil
		case tok.kind == tokString, tok.is(tokPunct, ";"), tok.is(tokPunct, ","):
			// doc string or separator
		case tok.kind == tokWord:
			if err := p.parseMetadataEntry(prim, tok); err != nil {
				return err
			}
		default:
			return fmt.Errorf("line %d: unexpected %s in prim metadata", tok.line, tok)
		}
	}
}

func (p *usdaParser) parseMetadataEntry(prim *primSpec, key token) error {
	listOp := ""
	if listOpPrefixes[key.text] {
		listOp = key.text

		var err error
		if key, err = p.expect(tokWord, ""); err != nil {
			return err
		}
	}

	if _, err := p.expect(tokPunct, "="); err != nil {
		return err
	}

	switch key.text {
	case "variants":
		return p.parseVariantSelections(prim)
	case "variantSets":
		names, err := p.parseStringList()
		if err != nil {
			return err
		}

		if listOp != "delete" {
			for _, name := range names {
				prim.declareVariantSet(name)
			}
		}

		return nil
	case "active":
		value, err := p.parseValue()
		if err != nil {
			return err
		}

		prim.active = value.text != "false" && value.text != "0"
		prim.activeSet = true

		return nil
	default:
		_, err := p.parseValue()
		return err
	}
}

func (p *usdaParser) parseStringList() ([]string, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	if tok.kind == tokString {
		return []string{tok.text}, nil
	}

	if tok.is(tokWord, "None") {
		return nil, nil
	}

	if !tok.is(tokPunct, "[") {
		return nil, fmt.Errorf("line %d: expected string list, found %s", tok.line, tok)
	}

	var names []string

	for {
		tok, err = p.next()
		if err != nil {
			return nil, err
		}

		switch {
		case tok.is(tokPunct, "]"):
			return names, nil
		case tok.is(tokPunct, ","):
		case tok.kind == tokString:
			names = append(names, tok.text)
		default:
			return nil, fmt.Errorf("line %d: expected string, found %s", tok.line, tok)
		}
	}
}

// parseVariantSelections reads `{ string set = "selection" ... }`.
func (p *usdaParser) parseVariantSelections(prim *primSpec) error {
	if _, err := p.expect(tokPunct, "{"); err != nil {
		return err
	}

	for {
		tok, err := p.next()
		if err != nil {
			return err
		}

		switch {
		case tok.is(tokPunct, "}"):
			return nil
		case tok.is(tokPunct, ";"), tok.is(tokPunct, ","):
			continue
		case tok.kind != tokWord:
			return fmt.Errorf("line %d: expected variant selection, found %s", tok.line, tok)
		}

		name, err := p.next()
		if err != nil {
			return err
		}

		if name.kind != tokWord && name.kind != tokString {
			return fmt.Errorf("line %d: expected variant set name, found %s", name.line, name)
		}

		if _, err := p.expect(tokPunct, "="); err != nil {
			return err
		}

		value, err := p.expect(tokString, "")
		if err != nil {
			return err
		}

		prim.selections[name.text] = value.text
	}
}

// parseVariantSet reads `variantSet "set" = { "variant" { ... } ... }`.
func (p *usdaParser) parseVariantSet(prim *primSpec) error {
	if _, err := p.expect(tokWord, "variantSet"); err != nil {
		return err
	}

	setName, err := p.expect(tokString, "")
	if err != nil {
		return err
	}

	if _, err := p.expect(tokPunct, "="); err != nil {
		return err
	}

	if _, err := p.expect(tokPunct, "{"); err != nil {
		return err
	}

	prim.declareVariantSet(setName.text)

	bodies := prim.variantBodies[setName.text]
	if bodies == nil {
		bodies = map[string]*primSpec{}
		prim.variantBodies[setName.text] = bodies
	}

	for {
		tok, err := p.next()
		if err != nil {
			return err
		}

		if tok.is(tokPunct, "}") {
			return nil
		}

		if tok.kind != tokString {
			return fmt.Errorf("line %d: expected variant name, found %s", tok.line, tok)
		}

		body := newPrimSpec("", "", "")

		if open, err := p.peekIs(tokPunct, "("); err != nil {
			return err
		} else if open {
			if err := p.parsePrimMetadata(body); err != nil {
				return err
			}
		}

		if _, err := p.expect(tokPunct, "{"); err != nil {
			return err
		}

		if err := p.parsePrimBody(body); err != nil {
			return err
		}

		bodies[tok.text] = body
	}
}
