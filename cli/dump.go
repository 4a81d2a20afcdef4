package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/heathj/pageobject/dom"
)

func newDumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the parsed tree of an HTML file",
		Long:  "Print the parsed tree of an HTML file in html5lib format,\noptionally only the subtrees matched by --selector.",
		RunE:  runDump,
	}

	f := cmd.Flags()
	f.String("html", "", "HTML file to dump (required)")
	f.StringArray("selector", nil, "Dump only the matches of this locator chain")
	_ = cmd.MarkFlagRequired("html")
	return cmd
}

func runDump(cmd *cobra.Command, _ []string) error {
	cfg, err := prepare(cmd)
	if err != nil {
		return err
	}
	f, err := os.Open(cfg.HTML)
	if err != nil {
		return errors.Wrap(err, "open html")
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(cfg.Selectors) == 0 {
		fmt.Fprintln(out, doc.String())
		return nil
	}

	// Repeated selectors chain, each scoped under the previous one.
	loc := doc.Locator()
	for _, s := range cfg.Selectors {
		loc = loc.Locate(s)
	}
	nodes, err := loc.All()
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		return errors.Wrapf(dom.ErrNotFound, "locator %s", loc)
	}
	for _, n := range nodes {
		fmt.Fprintln(out, n.String())
	}
	return nil
}
