package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{KindRaw, "Raw"},
		{KindTeleport, "Teleport"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeIsInteractive(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want bool
	}{
		{
			name: "nil node",
			node: nil,
			want: false,
		},
		{
			name: "text node",
			node: &VNode{Kind: KindText, Text: "hello"},
			want: false,
		},
		{
			name: "element without handlers",
			node: &VNode{Kind: KindElement, Tag: "div", Props: Props{"class": "test"}},
			want: false,
		},
		{
			name: "element with onclick",
			node: &VNode{Kind: KindElement, Tag: "button", Props: Props{"onclick": func() {}}},
			want: true,
		},
		{
			name: "element with mixed-case handler",
			node: &VNode{Kind: KindElement, Tag: "div", Props: Props{"onClose": func() {}}},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsInteractive(); got != tt.want {
				t.Errorf("IsInteractive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventName(t *testing.T) {
	tests := map[string]string{
		"onclick": "click",
		"onClose": "close",
		"on":      "",
		"class":   "",
	}
	for key, want := range tests {
		if got := EventName(key); got != want {
			t.Errorf("EventName(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestFunc(t *testing.T) {
	called := false
	comp := Func(func() *VNode {
		called = true
		return Div()
	})

	node := comp.Render()
	if !called {
		t.Error("render function was not called")
	}
	if node.Tag != "div" {
		t.Errorf("Tag = %v, want div", node.Tag)
	}
}
