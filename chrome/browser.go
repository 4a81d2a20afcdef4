// Package chrome roots collections in a live Chrome tab driven over the
// DevTools protocol.
package chrome

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Headless bool
	// ExecPath overrides the Chrome binary lookup.
	ExecPath string
	// Timeout bounds the whole browser session. Zero means no limit.
	Timeout time.Duration
	// Flags are extra command line switches.
	Flags map[string]interface{}
}

func DefaultOptions() Options {
	return Options{Headless: true, Timeout: 30 * time.Second}
}

func (o Options) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", o.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if o.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(o.ExecPath))
	}
	for name, value := range o.Flags {
		opts = append(opts, chromedp.Flag(name, value))
	}
	return opts
}

// NewBrowser starts Chrome and returns a tab context. Cancelling it closes
// the browser.
func NewBrowser(ctx context.Context, o Options) (context.Context, context.CancelFunc, error) {
	cancels := make([]context.CancelFunc, 0, 3)
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		cancels = append(cancels, cancel)
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, o.allocatorOptions()...)
	cancels = append(cancels, allocCancel)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx,
		chromedp.WithDebugf(logrus.WithField("component", "chromedp").Debugf),
	)
	cancels = append(cancels, tabCancel)

	cancel := func() {
		for i := len(cancels) - 1; i >= 0; i-- {
			cancels[i]()
		}
	}

	// The first Run launches the browser.
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, nil, errors.Wrap(err, "start browser")
	}
	logrus.WithFields(logrus.Fields{
		"headless": o.Headless,
		"timeout":  o.Timeout,
	}).Debug("browser started")
	return tabCtx, cancel, nil
}

// Navigate loads url in the tab and waits for the body to be ready.
func Navigate(ctx context.Context, url string) error {
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	return errors.Wrapf(err, "navigate to %s", url)
}

// Title returns the document title of the tab.
func Title(ctx context.Context) (string, error) {
	var title string
	if err := chromedp.Run(ctx, chromedp.Title(&title)); err != nil {
		return "", errors.Wrap(err, "read title")
	}
	return title, nil
}
