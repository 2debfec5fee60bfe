package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vango-dev/domkit/pkg/delegate"
	"github.com/vango-dev/domkit/pkg/dom"
	"github.com/vango-dev/domkit/pkg/inspect"
	"github.com/vango-dev/domkit/pkg/observe"
)

type dispatchOptions struct {
	host     string
	delegate string
	event    string
	target   string
	noBubble bool
}

func dispatchCmd(flags *globalFlags) *cobra.Command {
	opts := dispatchOptions{}

	cmd := &cobra.Command{
		Use:   "dispatch DOCUMENT",
		Short: "Fire an event through a listener and report what ran",
		Long: `Bind a recording listener to a host node, fire an event at a target
and print every handler invocation.

With --delegate the listener is delegated: it runs for the nearest node
between the target and the host (the host excluded) that matches the
selector. Without it the listener is bound directly to the host.

Examples:
  domkit dispatch menu.html --host "#menu" --delegate "li" --event click --target "#bold"
  domkit dispatch menu.html --host "#menu" --event click --target "#bold" --no-bubble`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			required := []struct{ name, value string }{
				{"host", opts.host},
				{"event", opts.event},
				{"target", opts.target},
			}
			for _, f := range required {
				if err := requireFlag(cmd, f.name, f.value); err != nil {
					return err
				}
			}
			return runDispatch(cmd, flags, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "", "Selector locating the node the listener is bound to")
	cmd.Flags().StringVarP(&opts.delegate, "delegate", "d", "", "Delegation selector (empty binds directly)")
	cmd.Flags().StringVarP(&opts.event, "event", "e", "click", "Event name")
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "Selector locating the event target")
	cmd.Flags().BoolVar(&opts.noBubble, "no-bubble", false, "Dispatch a non-bubbling event")

	return cmd
}

func runDispatch(cmd *cobra.Command, flags *globalFlags, uri string, opts dispatchOptions) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg)

	kit, err := openKit(cmd.Context(), cfg, logger, uri, observe.NewLogger(logger, slog.LevelDebug))
	if err != nil {
		return err
	}
	host, err := findNode(kit, opts.host)
	if err != nil {
		return err
	}
	target, err := findNode(kit, opts.target)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	count := 0
	record := delegate.Func(func(this dom.Node, ev *dom.Event) {
		count++
		fmt.Fprintf(out, "invoked  this=%s target=%s phase=%s\n",
			inspect.Describe(this), inspect.Describe(ev.Target), ev.Phase)
	})
	if host.On(opts.event, opts.delegate, record).Err() != nil {
		return host.Err()
	}

	ev := dom.NewEvent(opts.event)
	ev.Bubbles = !opts.noBubble
	target.Node().DispatchEvent(ev)
	host.Off()

	if count == 0 {
		info(cmd, "no handler ran")
		return nil
	}
	success(cmd, "%d invocation(s)", count)
	return nil
}
