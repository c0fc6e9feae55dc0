package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"
	"github.com/vango-dev/teleport/internal/config"
	"github.com/vango-dev/teleport/internal/errors"
	"github.com/vango-dev/teleport/internal/logging"
	"github.com/vango-dev/teleport/pkg/dom"
	"github.com/vango-dev/teleport/pkg/render"
	"github.com/vango-dev/teleport/pkg/teleport"
	"github.com/vango-dev/teleport/pkg/telemetry"
	"github.com/vango-dev/teleport/pkg/vdom"
)

const blankPage = `<!DOCTYPE html><html><head></head><body>` +
	`<div id="app"></div><div id="modals"></div>` +
	`</body></html>`

type renderOptions struct {
	document string
	mount    string
	target   string
	title    string
	emit     []string
	metrics  bool
}

func renderCmd() *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a demo dialog teleported into a target",
		Long: `Render mounts a small owner component into --mount. The owner
teleports a dialog into --target, and the resulting document is printed.

Without --document a blank page with #app and #modals is used.
Each --emit event is dispatched on the dialog after mounting; events in
the redirect allow-list reach the owner and are logged.`,
		Example: `  vango-teleport render --target "#modals" --title "Delete file?"
  vango-teleport render --document page.html --target body --emit close`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runRender(cfg, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.document, "document", "d", "", "HTML page to render into")
	cmd.Flags().StringVar(&opts.mount, "mount", "#app", "Selector of the owner's container")
	cmd.Flags().StringVarP(&opts.target, "target", "t", "#modals", "Selector the dialog is teleported to")
	cmd.Flags().StringVar(&opts.title, "title", "Hello", "Dialog title")
	cmd.Flags().StringSliceVar(&opts.emit, "emit", nil, "Custom events to dispatch on the dialog")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "Print collected metrics to stderr")

	return cmd
}

func runRender(cfg *config.Config, opts renderOptions, stdout, stderr io.Writer) error {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := logging.New(level, cfg.Log.Format, stderr)

	doc, err := readDocument(opts.document)
	if err != nil {
		return err
	}
	container, err := doc.QuerySelector(opts.mount)
	if err != nil {
		return errors.New(errors.CodeRenderFailed).
			WithDetail(fmt.Sprintf("Invalid mount selector %q", opts.mount)).
			WithSuggestion("Pass --mount with a valid CSS selector").
			Wrap(err)
	}
	if container == nil {
		return errors.New(errors.CodeRenderFailed).
			WithDetail(fmt.Sprintf("Mount container %q not found", opts.mount)).
			WithSuggestion("Pass --mount with a selector present in the document")
	}

	events, err := cfg.EventSet()
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	var observers []teleport.Observer
	if cfg.Metrics.Enabled || opts.metrics {
		observers = append(observers, telemetry.NewMetrics(
			telemetry.WithNamespace(cfg.Metrics.Namespace),
			telemetry.WithRegistry(registry),
		))
	}
	if cfg.Tracing.Enabled {
		observers = append(observers, telemetry.NewTracing(telemetry.WithTracerName(cfg.Tracing.TracerName)))
	}

	r := render.NewRenderer(render.Config{
		Document:       doc,
		PlaceholderTag: cfg.Teleport.PlaceholderTag,
		Portals: teleport.Factory(
			teleport.WithLogger(logger),
			teleport.WithObserver(telemetry.Multi(observers...)),
			teleport.WithRedirectEvents(events),
		),
	})

	owner := &dialogOwner{target: opts.target, title: opts.title, logger: logger}
	root, err := r.Mount(container, vdom.Comp(owner))
	if err != nil {
		return renderFailed(err)
	}
	defer root.Unmount()

	for _, name := range opts.emit {
		dlg, err := doc.QuerySelector("dialog.teleported")
		if err != nil || dlg == nil {
			break
		}
		doc.DispatchEvent(dlg, dom.NewCustomEvent(strings.TrimSpace(name), nil))
	}
	if len(opts.emit) > 0 {
		logger.Info("events received by owner", "count", owner.received)
	}

	fmt.Fprintln(stdout, doc.HTML())

	if opts.metrics {
		return writeMetrics(stderr, registry)
	}
	return nil
}

func readDocument(path string) (*dom.Document, error) {
	if path == "" {
		return dom.Parse(strings.NewReader(blankPage))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.CodeDocumentUnreadable).
			WithDetail("Could not open " + path).
			Wrap(err)
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, errors.New(errors.CodeDocumentUnreadable).
			WithLocation(path, 0, 0).
			Wrap(err)
	}
	return doc, nil
}

// renderFailed attaches E141 to errors that carry no code of their own.
func renderFailed(err error) error {
	if errors.Code(err) != "" {
		return err
	}
	return errors.New(errors.CodeRenderFailed).WithDetail(err.Error()).Wrap(err)
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, f := range families {
		for _, m := range f.GetMetric() {
			fmt.Fprintf(w, "%s%s %s\n", f.GetName(), labels(m), value(f.GetType(), m))
		}
	}
	return nil
}

func labels(m *dto.Metric) string {
	if len(m.GetLabel()) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(m.GetLabel()))
	for _, l := range m.GetLabel() {
		pairs = append(pairs, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	sort.Strings(pairs)
	return "{" + strings.Join(pairs, ",") + "}"
}

func value(typ dto.MetricType, m *dto.Metric) string {
	switch typ {
	case dto.MetricType_COUNTER:
		return fmt.Sprint(m.GetCounter().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return fmt.Sprintf("count=%d sum=%g", h.GetSampleCount(), h.GetSampleSum())
	default:
		return "?"
	}
}

const dialogTitleID = "teleport-dialog-title"

// dialogOwner renders a page section that teleports a dialog to target.
type dialogOwner struct {
	target   string
	title    string
	logger   *slog.Logger
	received int
}

func (o *dialogOwner) Render() *vdom.VNode {
	return vdom.Section(
		vdom.Class("owner"),
		vdom.On(dom.AnyEvent, o.onEvent),
		vdom.Teleport(vdom.To(o.target),
			vdom.Dialog(
				vdom.Class("teleported"),
				vdom.Open(true),
				vdom.AriaModal(true),
				vdom.AriaLabelledBy(dialogTitleID),
				vdom.H2(vdom.ID(dialogTitleID), o.title),
				vdom.Button(vdom.Class("close"), "Close"),
			),
		),
	)
}

func (o *dialogOwner) onEvent(e *dom.Event) {
	o.received++
	o.logger.Info("owner received event", "type", e.Type)
}
