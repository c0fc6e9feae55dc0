package teleport

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vangoerrors "github.com/vango-dev/teleport/internal/errors"
	"github.com/vango-dev/teleport/pkg/dom"
	"github.com/vango-dev/teleport/pkg/render"
	"github.com/vango-dev/teleport/pkg/vdom"
	"golang.org/x/net/html"
)

const page = `<!DOCTYPE html><html><head></head><body>` +
	`<div id="app"><p id="before">before</p></div>` +
	`<div id="modals"><p id="existing">existing</p></div>` +
	`<div id="other"></div>` +
	`</body></html>`

type harness struct {
	doc   *dom.Document
	r     *render.Renderer
	app   *html.Node
	ctrls []*Controller
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader(page))
	require.NoError(t, err)

	h := &harness{doc: doc}
	h.r = render.NewRenderer(render.Config{
		Document: doc,
		Portals: func(placeholder *html.Node, engine render.Engine) render.Portal {
			c := New(placeholder, engine, opts...)
			h.ctrls = append(h.ctrls, c)
			return c
		},
	})
	h.app = h.find(t, "#app")
	return h
}

func (h *harness) find(t *testing.T, selector string) *html.Node {
	t.Helper()
	n, err := h.doc.QuerySelector(selector)
	require.NoError(t, err)
	require.NotNil(t, n, selector)
	return n
}

func (h *harness) mount(t *testing.T, v *vdom.VNode) *render.Root {
	t.Helper()
	root, err := h.r.Mount(h.app, v)
	require.NoError(t, err)
	return root
}

// hooks is a relocated component that logs its lifecycle.
type hooks struct {
	value     int
	log       *[]string
	onMounted func()
}

func (c *hooks) Render() *vdom.VNode {
	return vdom.Div(vdom.Class("counter"), vdom.Textf("%d", c.value))
}

func (c *hooks) Mounted() {
	*c.log = append(*c.log, "mounted")
	if c.onMounted != nil {
		c.onMounted()
	}
}

func (c *hooks) Patched()   { *c.log = append(*c.log, "patched") }
func (c *hooks) Destroyed() { *c.log = append(*c.log, "destroyed") }

func TestMountRelocatesSingleChild(t *testing.T) {
	h := newHarness(t)
	other := h.find(t, "#other")

	root := h.mount(t, vdom.Div(vdom.ID("owner"),
		vdom.Teleport(vdom.To("#other"),
			vdom.Div(vdom.Class("modal"), vdom.Span("hi")),
		),
	))

	require.Len(t, dom.Children(other), 1)
	relocated := other.FirstChild
	assert.Equal(t, `<div class="modal"><span>hi</span></div>`, dom.OuterHTML(relocated))

	owner := root.Nodes()[0]
	placeholder := owner.FirstChild
	assert.Equal(t, "portal", placeholder.Data)
	assert.Nil(t, placeholder.FirstChild)

	require.Len(t, h.ctrls, 1)
	c := h.ctrls[0]
	assert.Equal(t, StateDeployed, c.State())
	assert.Same(t, relocated, c.Root())
	assert.Same(t, other, c.Target())
	assert.Same(t, placeholder, c.Placeholder())
	assert.NotEmpty(t, c.ID())
}

func TestMountAppendsAfterExistingContent(t *testing.T) {
	h := newHarness(t)
	modals := h.find(t, "#modals")

	h.mount(t, vdom.Teleport(vdom.To("#modals"), vdom.Div(vdom.ID("dlg"))))

	assert.Equal(t, `<p id="existing">existing</p><div id="dlg"></div>`, dom.InnerHTML(modals))
}

func TestToggleMatchesFreshMount(t *testing.T) {
	view := func(active bool) *vdom.VNode {
		return vdom.Div(vdom.ID("owner"),
			vdom.Teleport(vdom.To("#modals"), vdom.Active(active),
				vdom.Dialog(vdom.Open(true), vdom.P("content")),
			),
		)
	}

	toggled := newHarness(t)
	root := toggled.mount(t, view(true))
	first := toggled.ctrls[0].Root()

	require.NoError(t, root.Update(view(false)))
	c := toggled.ctrls[0]
	assert.Equal(t, StateWithdrawn, c.State())
	assert.Nil(t, c.Root())
	assert.Nil(t, first.Parent)
	assert.Equal(t, 0, toggled.doc.ListenerCount(first, ""))
	assert.Equal(t, `<p id="existing">existing</p>`, dom.InnerHTML(toggled.find(t, "#modals")))

	require.NoError(t, root.Update(view(true)))
	assert.Equal(t, StateDeployed, c.State())
	assert.NotSame(t, first, c.Root(), "re-activation is a fresh mount")

	fresh := newHarness(t)
	fresh.mount(t, view(true))

	assert.Equal(t, fresh.doc.HTML(), toggled.doc.HTML())
	assert.Equal(t,
		fresh.doc.ListenerCount(fresh.ctrls[0].Root(), ""),
		toggled.doc.ListenerCount(c.Root(), ""))
}

func TestInactiveTeleportRendersNothing(t *testing.T) {
	h := newHarness(t)
	modals := h.find(t, "#modals")
	before := dom.InnerHTML(modals)

	h.mount(t, vdom.Teleport(vdom.To("#missing"), vdom.Active(false), vdom.Div()))

	assert.Equal(t, before, dom.InnerHTML(modals))
	assert.Equal(t, StateUndeployed, h.ctrls[0].State())
}

func TestUpdateInPlaceHookOrder(t *testing.T) {
	h := newHarness(t)
	modals := h.find(t, "#modals")

	var log []string
	attachedOnMount := false
	view := func(value int) *vdom.VNode {
		return vdom.Div(vdom.Teleport(vdom.To("#modals"), &hooks{
			value: value,
			log:   &log,
			onMounted: func() {
				attachedOnMount = strings.Contains(dom.TextContent(modals), "1")
			},
		}))
	}

	root := h.mount(t, view(1))
	rootNode := h.ctrls[0].Root()
	assert.True(t, attachedOnMount, "mounted runs once the root is under the target")

	require.NoError(t, root.Update(view(2)))

	assert.Same(t, rootNode, h.ctrls[0].Root())
	assert.Same(t, modals, rootNode.Parent)
	assert.Equal(t, "2", dom.TextContent(rootNode))
	assert.Equal(t, []string{"mounted", "patched"}, log)
}

func TestUpdateStateIsUpdatingDuringPatch(t *testing.T) {
	h := newHarness(t)
	var seen []State
	spy := vdom.Func(func() *vdom.VNode {
		if len(h.ctrls) > 0 {
			seen = append(seen, h.ctrls[0].State())
		}
		return vdom.Div()
	})
	view := func() *vdom.VNode { return vdom.Teleport(vdom.To("#modals"), spy) }

	root := h.mount(t, view())
	require.NoError(t, root.Update(view()))

	assert.Equal(t, []State{StateUndeployed, StateUpdating}, seen)
	assert.Equal(t, StateDeployed, h.ctrls[0].State())
}

func TestMissingTargetFailsBeforeMutation(t *testing.T) {
	h := newHarness(t)
	modals := h.find(t, "#modals")
	appBefore := dom.InnerHTML(h.app)
	modalsBefore := dom.InnerHTML(modals)

	var log []string
	root, err := h.r.Mount(h.app, vdom.Div(
		vdom.Teleport(vdom.To("#nowhere"), &hooks{log: &log}),
	))

	var notFound *TargetNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "#nowhere", notFound.Locator)
	assert.Equal(t, `teleport: could not find any match for "#nowhere"`, err.Error())
	assert.Nil(t, root)
	assert.Equal(t, appBefore, dom.InnerHTML(h.app))
	assert.Equal(t, modalsBefore, dom.InnerHTML(modals))
	assert.Empty(t, log)
	assert.Equal(t, StateDestroyed, h.ctrls[0].State())
}

func TestMissingTargetOnUpdateKeepsDeployment(t *testing.T) {
	h := newHarness(t)
	view := func(target string) *vdom.VNode {
		return vdom.Div(vdom.Teleport(vdom.To(target), vdom.Div(vdom.ID("dlg"))))
	}
	root := h.mount(t, view("#modals"))
	c := h.ctrls[0]
	deployed := c.Root()

	err := root.Update(view("#gone"))
	var notFound *TargetNotFoundError
	require.ErrorAs(t, err, &notFound)

	assert.Equal(t, StateDeployed, c.State())
	assert.Same(t, deployed, c.Root())
	assert.Same(t, h.find(t, "#modals"), deployed.Parent)
}

func TestTargetInsideTeleportIsRejected(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"placeholder", "#owner > portal"},
		{"inside relocated root", "#inner"},
		{"relocated root", "#dlg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			modals := h.find(t, "#modals")
			view := func(target string) *vdom.VNode {
				return vdom.Div(vdom.ID("owner"), vdom.P("1"),
					vdom.Teleport(vdom.To(target), vdom.Div(vdom.ID("dlg"), vdom.Span(vdom.ID("inner")))),
				)
			}
			root := h.mount(t, view("#modals"))
			c := h.ctrls[0]
			deployed := c.Root()
			before := h.doc.HTML()

			err := root.Update(vdom.Div(vdom.ID("owner"), vdom.P("2"),
				vdom.Teleport(vdom.To(tt.target), vdom.Div(vdom.ID("dlg"), vdom.Span(vdom.ID("inner")))),
			))

			var notFound *TargetNotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.target, notFound.Locator)
			assert.ErrorIs(t, err, ErrTargetInsideTeleport)
			assert.Equal(t, vangoerrors.CodeTeleportTarget, vangoerrors.Code(err))
			assert.Equal(t, "target_not_found", ErrorKind(err))

			assert.Equal(t, before, h.doc.HTML())
			assert.Equal(t, StateDeployed, c.State())
			assert.Same(t, deployed, c.Root())
			assert.Same(t, modals, deployed.Parent)
		})
	}
}

func TestArityErrors(t *testing.T) {
	tests := []struct {
		name     string
		children []any
		observed int
	}{
		{"no children", nil, 0},
		{"text only", []any{"just text"}, 0},
		{"two elements", []any{vdom.Div(), vdom.Div()}, 2},
		{"fragment with two elements", []any{vdom.Fragment(vdom.P("a"), vdom.P("b"))}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			before := h.doc.HTML()

			args := append([]any{vdom.To("#modals")}, tt.children...)
			_, err := h.r.Mount(h.app, vdom.Div(vdom.Teleport(args...)))

			var arity *ArityError
			require.ErrorAs(t, err, &arity)
			assert.Equal(t, tt.observed, arity.Observed)
			assert.Equal(t, fmt.Sprintf("teleport: must have exactly one non-text child (has %d)", tt.observed), err.Error())
			assert.Equal(t, vangoerrors.CodeTeleportArity, vangoerrors.Code(err))
			assert.Equal(t, before, h.doc.HTML())
		})
	}
}

func TestArityErrorOnUpdateLeavesDeployment(t *testing.T) {
	h := newHarness(t)
	root := h.mount(t, vdom.Teleport(vdom.To("#modals"), vdom.Div(vdom.ID("dlg"))))
	c := h.ctrls[0]
	deployed := c.Root()

	err := root.Update(vdom.Teleport(vdom.To("#modals")))
	var arity *ArityError
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, 0, arity.Observed)
	assert.Same(t, deployed, c.Root())
	assert.Equal(t, StateDeployed, c.State())
}

func TestComponentRenderingTwoRootsIsArityError(t *testing.T) {
	h := newHarness(t)
	two := vdom.Func(func() *vdom.VNode {
		return vdom.Fragment(vdom.P("a"), vdom.P("b"))
	})
	before := h.doc.HTML()

	_, err := h.r.Mount(h.app, vdom.Div(vdom.Teleport(vdom.To("#modals"), two)))

	var arity *ArityError
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, 2, arity.Observed)
	assert.Equal(t, before, h.doc.HTML())
}

func TestComponentRenderingNothingOnUpdateWithdraws(t *testing.T) {
	h := newHarness(t)
	show := true
	comp := func() vdom.Component {
		return vdom.Func(func() *vdom.VNode { return vdom.If(show, vdom.Div(vdom.ID("dlg"))) })
	}
	root := h.mount(t, vdom.Teleport(vdom.To("#modals"), comp()))
	c := h.ctrls[0]
	deployed := c.Root()

	show = false
	err := root.Update(vdom.Teleport(vdom.To("#modals"), comp()))
	var arity *ArityError
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, 0, arity.Observed)
	assert.Equal(t, StateWithdrawn, c.State())
	assert.Nil(t, deployed.Parent)
}

func TestTargetChangeMovesRoot(t *testing.T) {
	h := newHarness(t)
	modals, other := h.find(t, "#modals"), h.find(t, "#other")
	var log []string
	view := func(target string) *vdom.VNode {
		return vdom.Div(vdom.Teleport(vdom.To(target), &hooks{value: 1, log: &log}))
	}

	root := h.mount(t, view("#modals"))
	c := h.ctrls[0]
	deployed := c.Root()

	require.NoError(t, root.Update(view("#other")))

	assert.Same(t, deployed, c.Root(), "moved, not re-created")
	assert.Same(t, other, deployed.Parent)
	assert.Same(t, other, c.Target())
	assert.Equal(t, `<p id="existing">existing</p>`, dom.InnerHTML(modals))
	assert.Equal(t, []string{"mounted", "patched"}, log)
}

func TestRootReplacementRebindsRedirector(t *testing.T) {
	h := newHarness(t)
	closes := 0
	view := func(section bool) *vdom.VNode {
		var child *vdom.VNode
		if section {
			child = vdom.Section(vdom.Button("x"))
		} else {
			child = vdom.Div(vdom.Button("x"))
		}
		return vdom.Div(
			vdom.OnClose(func() { closes++ }),
			vdom.Teleport(vdom.To("#modals"), child),
		)
	}

	root := h.mount(t, view(false))
	c := h.ctrls[0]
	oldRoot := c.Root()
	oldButton := oldRoot.FirstChild

	require.NoError(t, root.Update(view(true)))
	newRoot := c.Root()
	require.NotSame(t, oldRoot, newRoot)
	assert.Equal(t, "section", newRoot.Data)
	assert.Same(t, h.find(t, "#modals"), newRoot.Parent)
	assert.Nil(t, oldRoot.Parent)
	assert.Equal(t, 0, h.doc.ListenerCount(oldRoot, ""))

	h.doc.DispatchEvent(oldButton, dom.NewCustomEvent("close", nil))
	h.doc.DispatchEvent(oldRoot, dom.NewCustomEvent("close", nil))
	assert.Equal(t, 0, closes)

	h.doc.DispatchEvent(newRoot.FirstChild, dom.NewCustomEvent("close", nil))
	assert.Equal(t, 1, closes)
}

func TestRepeatedRenderKeepsBindings(t *testing.T) {
	h := newHarness(t)
	view := func() *vdom.VNode { return vdom.Teleport(vdom.To("#modals"), vdom.Div()) }
	root := h.mount(t, view())
	c := h.ctrls[0]
	count := h.doc.ListenerCount(c.Root(), "")
	require.Equal(t, 6, count, "one per name plus one for the patterns")

	require.NoError(t, root.Update(view()))
	require.NoError(t, root.Update(view()))
	assert.Equal(t, count, h.doc.ListenerCount(c.Root(), ""))
}

func TestSharedTargetLastDeployedEndsLast(t *testing.T) {
	h := newHarness(t)
	other := h.find(t, "#other")
	view := func() *vdom.VNode {
		return vdom.Div(
			vdom.Teleport(vdom.To("#other"), vdom.P("a")),
			vdom.Teleport(vdom.To("#other"), vdom.P("b")),
		)
	}

	root := h.mount(t, view())
	assert.Equal(t, "<p>a</p><p>b</p>", dom.InnerHTML(other))

	require.NoError(t, root.Update(view()))
	assert.Equal(t, "<p>a</p><p>b</p>", dom.InnerHTML(other))
}

func TestNestedTeleports(t *testing.T) {
	h := newHarness(t)
	modals, other := h.find(t, "#modals"), h.find(t, "#other")
	var got []string

	root := h.mount(t, vdom.Div(
		vdom.On("dismiss", func(v any) { got = append(got, v.(string)) }),
		vdom.Teleport(vdom.To("#modals"),
			vdom.Div(vdom.ID("outer"),
				vdom.Teleport(vdom.To("#other"), vdom.Span(vdom.ID("inner"), "inner")),
			),
		),
	))
	require.Len(t, h.ctrls, 2)
	outer, inner := h.ctrls[0], h.ctrls[1]

	assert.Same(t, modals, outer.Root().Parent)
	assert.Same(t, other, inner.Root().Parent)
	assert.Same(t, outer.Root(), inner.Placeholder().Parent)

	modalsHits := 0
	h.doc.AddEventListener(modals, "dismiss", func(*dom.Event) { modalsHits++ })
	h.doc.DispatchEvent(inner.Root(), dom.NewCustomEvent("dismiss", "from-inner"))
	assert.Equal(t, []string{"from-inner"}, got)
	assert.Zero(t, modalsHits)

	root.Unmount()
	assert.Equal(t, StateDestroyed, outer.State())
	assert.Equal(t, StateDestroyed, inner.State())
	assert.Nil(t, other.FirstChild)
	assert.Equal(t, `<p id="existing">existing</p>`, dom.InnerHTML(modals))
}

func TestUnmountWithdrawsAndDestroys(t *testing.T) {
	h := newHarness(t)
	modals := h.find(t, "#modals")
	var log []string

	root := h.mount(t, vdom.Div(vdom.Teleport(vdom.To("#modals"), &hooks{value: 1, log: &log})))
	c := h.ctrls[0]
	deployed := c.Root()

	root.Unmount()

	assert.Equal(t, []string{"mounted", "destroyed"}, log)
	assert.Equal(t, StateDestroyed, c.State())
	assert.Nil(t, deployed.Parent)
	assert.Equal(t, 0, h.doc.ListenerCount(deployed, ""))
	assert.Equal(t, `<p id="existing">existing</p>`, dom.InnerHTML(modals))
	assert.Equal(t, `<p id="before">before</p>`, dom.InnerHTML(h.app))

	assert.ErrorIs(t, c.OnWillPatch(vdom.Teleport(vdom.To("#modals"), vdom.Div())), ErrDestroyed)
	assert.ErrorIs(t, c.OnDeployed(), ErrDestroyed)
	c.OnWithdraw()
	c.OnDestroy()
	assert.Equal(t, StateDestroyed, c.State())
}

func TestTeleportLeavingTreeDestroysController(t *testing.T) {
	h := newHarness(t)
	view := func(show bool) *vdom.VNode {
		return vdom.Div(vdom.If(show, vdom.Teleport(vdom.To("#other"), vdom.P("x"))))
	}
	root := h.mount(t, view(true))
	require.NoError(t, root.Update(view(false)))

	assert.Equal(t, StateDestroyed, h.ctrls[0].State())
	assert.Nil(t, h.find(t, "#other").FirstChild)
}

func TestDescendantErrorPassesThrough(t *testing.T) {
	h := newHarness(t)
	_, err := h.r.Mount(h.app, vdom.Teleport(vdom.To("#modals"),
		vdom.Div(vdom.Teleport(vdom.To("#missing"), vdom.P("x"))),
	))

	var notFound *TargetNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "#missing", notFound.Locator)
	assert.Equal(t, `<p id="existing">existing</p>`, dom.InnerHTML(h.find(t, "#modals")))
}

// recorder is an Observer that logs calls.
type recorder struct {
	calls []string
}

func (r *recorder) DeployStarted(info DeployInfo) func(error) {
	r.calls = append(r.calls, "start:"+string(info.Mode)+":"+info.Locator)
	return func(err error) {
		r.calls = append(r.calls, "done:"+ErrorKind(err))
	}
}

func (r *recorder) Withdrawn(string)                { r.calls = append(r.calls, "withdrawn") }
func (r *recorder) Redirected(_ string, typ string) { r.calls = append(r.calls, "redirected:"+typ) }
func (r *recorder) Rejected(_ string, err error)    { r.calls = append(r.calls, "rejected:"+ErrorKind(err)) }

func TestObserverNotifications(t *testing.T) {
	rec := &recorder{}
	h := newHarness(t, WithObserver(rec))
	view := func(target string, active bool) *vdom.VNode {
		return vdom.Teleport(vdom.To(target), vdom.Active(active), vdom.Div())
	}

	root := h.mount(t, view("#modals", true))
	require.NoError(t, root.Update(view("#modals", true)))
	h.doc.DispatchEvent(h.ctrls[0].Root(), dom.NewCustomEvent("portal:ping", nil))
	require.Error(t, root.Update(view("#gone", true)))
	require.NoError(t, root.Update(view("#modals", false)))

	assert.Equal(t, []string{
		"start:mount:#modals", "done:",
		"start:update:#modals", "done:",
		"redirected:portal:ping",
		"rejected:target_not_found",
		"withdrawn",
	}, rec.calls)
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := newHarness(t, WithLogger(logger))

	root := h.mount(t, vdom.Teleport(vdom.To("#modals"), vdom.Div()))
	root.Unmount()

	out := buf.String()
	assert.Contains(t, out, "teleport deployed")
	assert.Contains(t, out, "teleport withdrawn")
	assert.Contains(t, out, "teleport destroyed")
	assert.Contains(t, out, "teleport="+h.ctrls[0].ID())
	assert.Contains(t, out, "target=#modals")
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "", ErrorKind(nil))
	assert.Equal(t, "arity", ErrorKind(fmt.Errorf("x: %w", &ArityError{Observed: 2})))
	assert.Equal(t, "target_not_found", ErrorKind(&TargetNotFoundError{Locator: "#x"}))
	assert.Equal(t, "destroyed", ErrorKind(ErrDestroyed))
	assert.Equal(t, "invalid_event", ErrorKind(&InvalidEventError{Event: "click"}))
	assert.Equal(t, "descendant", ErrorKind(errors.New("boom")))
}
