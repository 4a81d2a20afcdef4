package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/heathj/pageobject/chrome"
	"github.com/heathj/pageobject/collection"
	"github.com/heathj/pageobject/dom"
	"github.com/heathj/pageobject/pagemap"
)

const maxTextLen = 60

func newProbeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Count matches for selectors and page map elements",
		Example: `  pageprobe probe --html inbox.html --selector "tbody tr" --selector "#search"
  pageprobe probe --url http://localhost:8080 --map inbox.yaml`,
		RunE: runProbe,
	}

	f := cmd.Flags()
	f.String("html", "", "HTML file to probe")
	f.String("url", "", "URL to open in Chrome")
	f.String("map", "", "Page map (YAML) whose elements are probed")
	f.StringArray("selector", nil, "Selector to probe (repeatable)")
	f.Bool("headless", true, "Run Chrome headless")
	f.String("chrome-path", "", "Chrome binary")
	f.Duration("timeout", 30*time.Second, "Browser session timeout")
	f.Int("workers", 4, "Concurrent probes for --html")
	return cmd
}

// result is one probed path.
type result struct {
	Path  string
	Count int
	Text  string
	Err   error
}

type entry[H any] struct {
	path string
	h    H
}

// collect lists the selectors, then every element of spec, as handles under
// root. Map elements are scoped by the map's own selector when it has one.
func collect[H collection.Handle[H]](root H, selectors []string, spec *pagemap.Spec) ([]entry[H], error) {
	c := collection.New(root)
	out := make([]entry[H], 0, len(selectors))
	for _, s := range selectors {
		out = append(out, entry[H]{path: s, h: c.El(s)})
	}
	if spec == nil {
		return out, nil
	}
	if spec.Selector != "" {
		root = root.Locate(spec.Selector)
	}
	err := pagemap.Bind(spec, root).Walk(func(path string, h H) error {
		out = append(out, entry[H]{path: path, h: h})
		return nil
	})
	return out, err
}

func runProbe(cmd *cobra.Command, _ []string) error {
	cfg, err := prepare(cmd)
	if err != nil {
		return err
	}
	if (cfg.HTML == "") == (cfg.URL == "") {
		return errors.New("exactly one of --html or --url is required")
	}

	var spec *pagemap.Spec
	if cfg.Map != "" {
		if spec, err = pagemap.LoadFile(cfg.Map); err != nil {
			return err
		}
	}
	if len(cfg.Selectors) == 0 && spec == nil {
		return errors.New("nothing to probe: pass --selector or --map")
	}

	var results []result
	if cfg.HTML != "" {
		results, err = probeFile(cmd.Context(), cfg, spec)
	} else {
		results, err = probeURL(cmd.Context(), cfg, spec)
	}
	if err != nil {
		return err
	}
	return report(cmd.OutOrStdout(), results)
}

func probeFile(ctx context.Context, cfg Config, spec *pagemap.Spec) ([]result, error) {
	f, err := os.Open(cfg.HTML)
	if err != nil {
		return nil, errors.Wrap(err, "open html")
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, err
	}
	return probeDocument(ctx, doc, cfg.Workers, cfg.Selectors, spec)
}

// probeDocument evaluates entries concurrently; documents are read-only so
// locators can share one.
func probeDocument(ctx context.Context, doc *dom.Document, workers int, selectors []string, spec *pagemap.Spec) ([]result, error) {
	entries, err := collect(doc.Locator(), selectors, spec)
	if err != nil {
		return nil, err
	}

	results := make([]result, len(entries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, e := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := result{Path: e.path}
			r.Count, r.Err = e.h.Count()
			if r.Err == nil && r.Count > 0 {
				r.Text, r.Err = e.h.First().Text()
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func probeURL(ctx context.Context, cfg Config, spec *pagemap.Spec) ([]result, error) {
	tab, cancel, err := chrome.NewBrowser(ctx, chrome.Options{
		Headless: cfg.Headless,
		ExecPath: cfg.ChromePath,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	defer cancel()

	if err := chrome.Navigate(tab, cfg.URL); err != nil {
		return nil, err
	}
	entries, err := collect(chrome.Page(), cfg.Selectors, spec)
	if err != nil {
		return nil, err
	}

	// One tab, one query at a time.
	results := make([]result, 0, len(entries))
	for _, e := range entries {
		r := result{Path: e.path}
		r.Count, r.Err = e.h.Count(tab)
		if r.Err == nil && r.Count > 0 {
			r.Text, r.Err = e.h.First().Text(tab)
		}
		results = append(results, r)
	}
	return results, nil
}

func report(w io.Writer, results []result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tCOUNT\tTEXT")
	failed := 0
	for _, r := range results {
		text := shorten(r.Text)
		if r.Err != nil {
			failed++
			text = "error: " + r.Err.Error()
			logrus.WithError(r.Err).WithField("path", r.Path).Warn("probe failed")
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", r.Path, r.Count, text)
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "write report")
	}
	if failed > 0 {
		return errors.Errorf("%d of %d probes failed", failed, len(results))
	}
	return nil
}

func shorten(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > maxTextLen {
		return string(r[:maxTextLen-3]) + "..."
	}
	return s
}
