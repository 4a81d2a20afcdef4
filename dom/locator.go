package dom

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/heathj/pageobject/collection"
)

var (
	ErrNotFound  = errors.New("no element matches locator")
	ErrAmbiguous = errors.New("locator matches more than one element")
)

var _ collection.Handle[*Locator] = (*Locator)(nil)

type step struct {
	selector string
	nth      int
	isNth    bool
}

func (s step) String() string {
	if s.isNth {
		return fmt.Sprintf("nth=%d", s.nth)
	}
	return s.selector
}

// Locator is a lazy query against a Document. Building one never touches
// the tree; matching happens on every evaluation, so a bad selector is
// reported by All and the methods built on it.
type Locator struct {
	scope *Node
	steps []step
}

// Locator returns a handle scoped to n.
func (n *Node) Locator() *Locator {
	return &Locator{scope: n}
}

func (l *Locator) with(s step) *Locator {
	steps := make([]step, len(l.steps), len(l.steps)+1)
	copy(steps, l.steps)
	return &Locator{scope: l.scope, steps: append(steps, s)}
}

// Locate narrows l to the descendants matching selector.
func (l *Locator) Locate(selector string) *Locator {
	return l.with(step{selector: selector})
}

// Nth narrows l to its i-th match. Negative i counts from the end.
func (l *Locator) Nth(i int) *Locator {
	return l.with(step{nth: i, isNth: true})
}

func (l *Locator) First() *Locator { return l.Nth(0) }
func (l *Locator) Last() *Locator  { return l.Nth(-1) }

// All evaluates the locator and returns the matches in document order.
func (l *Locator) All() (NodeList, error) {
	set := NodeList{l.scope}
	for _, s := range l.steps {
		if s.isNth {
			set = set.Nth(s.nth)
			continue
		}
		g, err := compile(s.selector)
		if err != nil {
			return nil, errors.Wrapf(err, "locator %s", l)
		}
		lists := make([]NodeList, 0, len(set))
		for _, n := range set {
			lists = append(lists, n.queryAll(g))
		}
		set = union(lists...)
	}

	logrus.WithFields(logrus.Fields{
		"locator": l.String(),
		"matches": len(set),
	}).Debug("resolved locator")
	return set, nil
}

func (l *Locator) Count() (int, error) {
	all, err := l.All()
	return len(all), err
}

func (l *Locator) Exists() (bool, error) {
	n, err := l.Count()
	return n > 0, err
}

// Element returns the single match of l.
func (l *Locator) Element() (*Node, error) {
	all, err := l.All()
	if err != nil {
		return nil, err
	}
	switch len(all) {
	case 0:
		return nil, errors.Wrapf(ErrNotFound, "locator %s", l)
	case 1:
		return all[0], nil
	default:
		return nil, errors.Wrapf(ErrAmbiguous, "locator %s resolved to %d elements", l, len(all))
	}
}

func (l *Locator) Text() (string, error) {
	n, err := l.Element()
	if err != nil {
		return "", err
	}
	return n.TextContent(), nil
}

func (l *Locator) Attribute(name string) (value string, ok bool, err error) {
	n, err := l.Element()
	if err != nil {
		return "", false, err
	}
	return n.GetAttribute(name), n.HasAttribute(name), nil
}

func (l *Locator) InnerHTML() (string, error) {
	n, err := l.Element()
	if err != nil {
		return "", err
	}
	return n.InnerHTML()
}

// AllTexts returns the text content of every match.
func (l *Locator) AllTexts() ([]string, error) {
	all, err := l.All()
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(all))
	for i, n := range all {
		texts[i] = n.TextContent()
	}
	return texts, nil
}

func (l *Locator) String() string {
	if len(l.steps) == 0 {
		if l.scope != nil && l.scope.NodeType != DocumentNode {
			return l.scope.NodeName
		}
		return "document"
	}
	parts := make([]string, len(l.steps))
	for i, s := range l.steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, " >> ")
}
