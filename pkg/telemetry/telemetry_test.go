package telemetry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vango-dev/teleport/pkg/dom"
	"github.com/vango-dev/teleport/pkg/render"
	"github.com/vango-dev/teleport/pkg/teleport"
	"github.com/vango-dev/teleport/pkg/vdom"
)

const page = `<!DOCTYPE html><html><head></head><body>` +
	`<div id="app"></div><div id="modals"></div>` +
	`</body></html>`

// scenario runs a teleport through mount, update, a redirected event,
// a withdrawal and a rejected re-activation.
func scenario(t *testing.T, observer teleport.Observer) {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader(page))
	require.NoError(t, err)
	r := render.NewRenderer(render.Config{
		Document: doc,
		Portals:  teleport.Factory(teleport.WithObserver(observer)),
	})
	app, err := doc.QuerySelector("#app")
	require.NoError(t, err)

	view := func(locator string, active bool, text string) *vdom.VNode {
		return vdom.Div(vdom.Teleport(vdom.To(locator), vdom.Active(active),
			vdom.Dialog(vdom.ID("dlg"), vdom.Text(text)),
		))
	}

	root, err := r.Mount(app, view("#modals", true, "one"))
	require.NoError(t, err)
	require.NoError(t, root.Update(view("#modals", true, "two")))

	dlg, err := doc.QuerySelector("#dlg")
	require.NoError(t, err)
	require.NotNil(t, dlg)
	doc.DispatchEvent(dlg, dom.NewCustomEvent("close", nil))

	require.NoError(t, root.Update(view("#modals", false, "two")))
	require.Error(t, root.Update(view("#missing", true, "two")))
}
