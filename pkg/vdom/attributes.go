package vdom

import (
	"strconv"
	"strings"
)

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Attribute sets an arbitrary attribute.
func Attribute(key string, value any) Attr { return attr(key, value) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Accessibility attributes

// AriaModal sets aria-modal to "true" or "false".
func AriaModal(modal bool) Attr { return attr("aria-modal", strconv.FormatBool(modal)) }

// AriaLabelledBy sets the aria-labelledby attribute.
func AriaLabelledBy(id string) Attr { return attr("aria-labelledby", id) }

// Open sets the open attribute (dialog, details).
func Open(open bool) Attr { return attr("open", open) }

// TitleAttr sets the title attribute.
func TitleAttr(title string) Attr { return attr("title", title) }
