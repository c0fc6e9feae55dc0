package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
)

// tone is the ANSI style of one part of a formatted error.
type tone string

const (
	toneFail  tone = "\033[1;31m"
	toneTitle tone = "\033[1m"
	toneWhere tone = "\033[36m"
	toneHint  tone = "\033[32m"
	toneMuted tone = "\033[90m"
	toneLink  tone = "\033[4;34m"
)

const detailWidth = 72

var plain atomic.Bool

// DisableColors turns ANSI styling off for every formatter.
func DisableColors() { plain.Store(true) }

// EnableColors turns ANSI styling back on.
func EnableColors() { plain.Store(false) }

func (t tone) paint(text string) string {
	if plain.Load() || text == "" {
		return text
	}
	return string(t) + text + "\033[0m"
}

// Format returns the error laid out for a terminal: a header line, the
// location, then one block each for the detail, the wrapped cause, the
// hint, the example and the documentation link.
func (e *VangoError) Format() string {
	var b strings.Builder
	head := "ERROR"
	if e.Code != "" {
		head += " " + e.Code
	}
	fmt.Fprintf(&b, "\n%s %s\n", toneFail.paint(head+":"), toneTitle.paint(e.Message))
	if e.Location != nil {
		fmt.Fprintf(&b, "  %s %s\n", toneMuted.paint("-->"), toneWhere.paint(e.Location.String()))
	}
	for _, block := range e.blocks() {
		b.WriteString("\n")
		b.WriteString(block)
	}
	b.WriteString("\n")
	return b.String()
}

func (e *VangoError) blocks() []string {
	var out []string
	if e.Detail != "" {
		out = append(out, indent(fill(e.Detail, detailWidth), "  "))
	}
	if cause := e.cause(); cause != "" {
		out = append(out, "  "+toneMuted.paint("Caused by: ")+cause+"\n")
	}
	if e.Suggestion != "" {
		out = append(out, "  "+toneHint.paint("Hint: ")+e.Suggestion+"\n")
	}
	if e.Example != "" {
		out = append(out, "  "+toneHint.paint("Example:")+"\n"+indent(strings.Split(e.Example, "\n"), "    "))
	}
	if e.DocURL != "" {
		out = append(out, "  "+toneMuted.paint("Learn more: ")+toneLink.paint(e.DocURL)+"\n")
	}
	return out
}

// cause returns the wrapped error's message unless Detail already says it.
func (e *VangoError) cause() string {
	if e.Wrapped == nil {
		return ""
	}
	if msg := e.Wrapped.Error(); msg != e.Detail {
		return msg
	}
	return ""
}

// FormatCompact returns the error on one line:
// [location: ]code: message[: cause].
func (e *VangoError) FormatCompact() string {
	parts := make([]string, 0, 4)
	if e.Location != nil {
		parts = append(parts, e.Location.String())
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	parts = append(parts, e.Message)
	if e.Wrapped != nil {
		parts = append(parts, e.Wrapped.Error())
	}
	return strings.Join(parts, ": ")
}

type jsonError struct {
	Code       string    `json:"code,omitempty"`
	Category   Category  `json:"category"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	Location   *Location `json:"location,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
	Cause      string    `json:"cause,omitempty"`
	DocURL     string    `json:"docUrl,omitempty"`
}

// FormatJSON returns the error as a single JSON object.
func (e *VangoError) FormatJSON() string {
	view := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Location:   e.Location,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
	}
	if e.Wrapped != nil {
		view.Cause = e.Wrapped.Error()
	}
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(view)
	return strings.TrimSuffix(b.String(), "\n")
}

// fill breaks text into lines of at most width bytes at word boundaries.
// A single word longer than width gets a line of its own.
func fill(text string, width int) []string {
	var lines, line []string
	n := 0
	for _, word := range strings.Fields(text) {
		if n > 0 && n+1+len(word) > width {
			lines = append(lines, strings.Join(line, " "))
			line, n = nil, 0
		}
		if n > 0 {
			n++
		}
		line = append(line, word)
		n += len(word)
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return lines
}

func indent(lines []string, prefix string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(prefix)
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}

// Fprint writes err to w: formatted when it carries a VangoError, as a
// plain ERROR line otherwise.
func Fprint(w io.Writer, err error) {
	var ve *VangoError
	if stderrors.As(err, &ve) {
		fmt.Fprint(w, ve.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", toneFail.paint("ERROR:"), err.Error())
}
