package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/domkit/pkg/delegate"
	"github.com/vango-dev/domkit/pkg/inspect"
)

func matchCmd(flags *globalFlags) *cobra.Command {
	var node, selector string

	cmd := &cobra.Command{
		Use:   "match DOCUMENT",
		Short: "Test a node against a selector",
		Long: `Test whether a node matches a selector with both matching strategies.

Native matching asks the node itself. Fallback matching queries the
node's parent for every match and checks membership. Both should agree
for nodes attached to the document.

Examples:
  domkit match menu.html --node "#first" --selector "li.item"
  domkit match https://example.com --node "a" --selector "nav a"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag(cmd, "node", node); err != nil {
				return err
			}
			if err := requireFlag(cmd, "selector", selector); err != nil {
				return err
			}
			return runMatch(cmd, flags, args[0], node, selector)
		},
	}

	cmd.Flags().StringVarP(&node, "node", "n", "", "Selector locating the node to test")
	cmd.Flags().StringVarP(&selector, "selector", "s", "", "Selector to test the node against")

	return cmd
}

func runMatch(cmd *cobra.Command, flags *globalFlags, uri, node, selector string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg)

	kit, err := openKit(cmd.Context(), cfg, logger, uri)
	if err != nil {
		return err
	}
	el, err := findNode(kit, node)
	if err != nil {
		return err
	}

	native, err := delegate.MatchNative(el.Node(), selector)
	if err != nil {
		return err
	}
	fallback, err := delegate.MatchFallback(el.Node(), selector)
	if err != nil {
		return err
	}
	engine, err := kit.Engine().Match(el.Node(), selector)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "node:      %s\n", inspect.Describe(el.Node()))
	fmt.Fprintf(out, "selector:  %s\n", selector)
	fmt.Fprintf(out, "native:    %t\n", native)
	fmt.Fprintf(out, "fallback:  %t\n", fallback)
	fmt.Fprintf(out, "engine:    %t (%s)\n", engine, kit.Engine().Strategy())
	if native != fallback {
		fmt.Fprintln(out, "warning:   strategies disagree; is the node attached?")
	}
	return nil
}
