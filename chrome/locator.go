package chrome

import (
	"context"
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
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

// Locator is a lazy query against the document of a tab. It holds no
// browser state; every evaluation takes the tab context and queries afresh.
type Locator struct {
	steps []step
}

// Page returns a handle scoped to the whole document.
func Page() *Locator {
	return &Locator{}
}

func (l *Locator) with(s step) *Locator {
	steps := make([]step, len(l.steps), len(l.steps)+1)
	copy(steps, l.steps)
	return &Locator{steps: append(steps, s)}
}

func (l *Locator) Locate(selector string) *Locator {
	return l.with(step{selector: selector})
}

// Nth narrows l to its i-th match. Negative i counts from the end.
func (l *Locator) Nth(i int) *Locator {
	return l.with(step{nth: i, isNth: true})
}

func (l *Locator) First() *Locator { return l.Nth(0) }
func (l *Locator) Last() *Locator  { return l.Nth(-1) }

func (l *Locator) String() string {
	if len(l.steps) == 0 {
		return "document"
	}
	parts := make([]string, len(l.steps))
	for i, s := range l.steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, " >> ")
}

func pick(nodes []*cdp.Node, i int) []*cdp.Node {
	if i < 0 {
		i += len(nodes)
	}
	if i < 0 || i >= len(nodes) {
		return nil
	}
	return []*cdp.Node{nodes[i]}
}

// Nodes evaluates the locator in the tab carried by ctx. A nil parent in the
// working set stands for the document.
func (l *Locator) Nodes(ctx context.Context) ([]*cdp.Node, error) {
	if len(l.steps) == 0 {
		return nil, errors.Errorf("locator %s has no steps to evaluate", l)
	}
	if l.steps[0].isNth {
		return nil, errors.Errorf("locator %s: index step on document, locate a selector first", l)
	}
	set := []*cdp.Node{nil}
	for _, s := range l.steps {
		if s.isNth {
			set = pick(set, s.nth)
			continue
		}
		seen := make(map[cdp.NodeID]struct{})
		var next []*cdp.Node
		for _, parent := range set {
			var found []*cdp.Node
			opts := []chromedp.QueryOption{chromedp.ByQueryAll, chromedp.AtLeast(0)}
			if parent != nil {
				opts = append(opts, chromedp.FromNode(parent))
			}
			if err := chromedp.Run(ctx, chromedp.Nodes(s.selector, &found, opts...)); err != nil {
				return nil, errors.Wrapf(err, "locator %s", l)
			}
			for _, n := range found {
				if _, ok := seen[n.NodeID]; ok {
					continue
				}
				seen[n.NodeID] = struct{}{}
				next = append(next, n)
			}
		}
		set = next
	}
	logrus.WithFields(logrus.Fields{
		"locator": l.String(),
		"matches": len(set),
	}).Debug("resolved locator")
	return set, nil
}

func (l *Locator) Count(ctx context.Context) (int, error) {
	nodes, err := l.Nodes(ctx)
	return len(nodes), err
}

// Element returns the single match of l.
func (l *Locator) Element(ctx context.Context) (*cdp.Node, error) {
	nodes, err := l.Nodes(ctx)
	if err != nil {
		return nil, err
	}
	switch len(nodes) {
	case 0:
		return nil, errors.Wrapf(ErrNotFound, "locator %s", l)
	case 1:
		return nodes[0], nil
	default:
		return nil, errors.Wrapf(ErrAmbiguous, "locator %s resolved to %d elements", l, len(nodes))
	}
}

func (l *Locator) Text(ctx context.Context) (string, error) {
	n, err := l.Element(ctx)
	if err != nil {
		return "", err
	}
	var text string
	err = chromedp.Run(ctx, chromedp.Text([]cdp.NodeID{n.NodeID}, &text, chromedp.ByNodeID))
	return text, errors.Wrapf(err, "text of %s", l)
}

// AllTexts returns the rendered text of every match.
func (l *Locator) AllTexts(ctx context.Context) ([]string, error) {
	nodes, err := l.Nodes(ctx)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(nodes))
	for i, n := range nodes {
		if err := chromedp.Run(ctx, chromedp.Text([]cdp.NodeID{n.NodeID}, &texts[i], chromedp.ByNodeID)); err != nil {
			return nil, errors.Wrapf(err, "text of %s", l)
		}
	}
	return texts, nil
}

func (l *Locator) Attribute(ctx context.Context, name string) (value string, ok bool, err error) {
	n, err := l.Element(ctx)
	if err != nil {
		return "", false, err
	}
	err = chromedp.Run(ctx, chromedp.AttributeValue([]cdp.NodeID{n.NodeID}, name, &value, &ok, chromedp.ByNodeID))
	return value, ok, errors.Wrapf(err, "attribute %s of %s", name, l)
}

func (l *Locator) Click(ctx context.Context) error {
	n, err := l.Element(ctx)
	if err != nil {
		return err
	}
	return errors.Wrapf(chromedp.Run(ctx, chromedp.MouseClickNode(n)), "click %s", l)
}

// Fill focuses the element and types value into it.
func (l *Locator) Fill(ctx context.Context, value string) error {
	n, err := l.Element(ctx)
	if err != nil {
		return err
	}
	ids := []cdp.NodeID{n.NodeID}
	err = chromedp.Run(ctx,
		chromedp.Clear(ids, chromedp.ByNodeID),
		chromedp.SendKeys(ids, value, chromedp.ByNodeID),
	)
	return errors.Wrapf(err, "fill %s", l)
}
