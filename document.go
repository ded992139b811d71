package main

import "strings"

// Document is the per-document context owning one buffer snapshot and one
// annotation store. Every open editor tab gets its own Document; nothing
// here is shared across documents. All operations are synchronous and
// single-writer: a second Analyze simply replaces whatever the first one
// produced.
type Document struct {
	buffer string
	store  *AnnotationStore
}

func NewDocument(buffer string) *Document {
	return &Document{
		buffer: buffer,
		store:  NewAnnotationStore(),
	}
}

// Buffer returns the current buffer text
func (d *Document) Buffer() string {
	return d.buffer
}

// SetBuffer replaces the buffer after an external edit. Annotations are
// not re-anchored; stale anchors are handled lazily at accept time.
func (d *Document) SetBuffer(text string) {
	d.buffer = text
}

// Annotations returns the current ordered annotation set
func (d *Document) Annotations() []Annotation {
	return d.store.Query()
}

// Analyze runs one full extraction cycle against the given oracle blobs
// and the current buffer, replacing the store contents entirely
func (d *Document) Analyze(errorsText, suggestionsText string) []Annotation {
	idx := NewLineIndex(d.buffer)
	d.store.ReplaceAll(ResolveAnnotations(errorsText, suggestionsText, idx))
	return d.store.Query()
}

// Accept applies one annotation's edit to the buffer and removes it from
// the store, then drops any sibling annotations on the edited line that
// the edit made stale. Substitution prefers the exact substring on the
// anchored line, then the first line anywhere containing the original
// text, then whole-line replacement. If the annotation carries no edit
// (replacement equals original) it is simply removed. An unknown ID is a
// no-op.
func (d *Document) Accept(id string) (string, []Annotation) {
	a, ok := d.store.Get(id)
	if !ok {
		return d.buffer, d.store.Query()
	}

	if a.ReplacementText == "" || a.ReplacementText == a.OriginalText {
		d.store.Remove(id)
		return d.buffer, d.store.Query()
	}

	idx := NewLineIndex(d.buffer)
	editedLine, applied := applyEdit(idx, a)
	if !applied {
		return d.buffer, d.store.Query()
	}

	d.buffer = idx.Text()
	d.store.Remove(id)
	d.dropStaleSiblings(idx, editedLine)
	return d.buffer, d.store.Query()
}

// Dismiss removes an annotation without touching the buffer. Idempotent.
func (d *Document) Dismiss(id string) []Annotation {
	d.store.Remove(id)
	return d.store.Query()
}

// applyEdit performs the three-tier substitution for one annotation and
// reports which line was actually edited
func applyEdit(idx *LineIndex, a Annotation) (int, bool) {
	if a.OriginalText != "" {
		// Primary path: substring on the anchored line
		if line, ok := idx.Line(a.Line); ok && strings.Contains(line, a.OriginalText) {
			idx.Set(a.Line, strings.Replace(line, a.OriginalText, a.ReplacementText, 1))
			return a.Line, true
		}
		// Buffer drifted: first line anywhere still holding the original
		for n, line := range idx.Lines() {
			if strings.Contains(line, a.OriginalText) {
				idx.Set(n+1, strings.Replace(line, a.OriginalText, a.ReplacementText, 1))
				return n + 1, true
			}
		}
	}

	// Whole-line fallback on the anchored line
	line, ok := idx.Line(a.Line)
	if !ok {
		return 0, false
	}
	idx.Set(a.Line, reindent(line, a.ReplacementText))
	return a.Line, true
}

// reindent re-applies the original line's leading whitespace to a
// replacement that is less indented than the line it replaces.
// Indentation is never reduced below what the line already had.
func reindent(original, replacement string) string {
	origIndent := leadingWhitespace(original)
	replIndent := leadingWhitespace(replacement)
	if len(replIndent) >= len(origIndent) {
		return replacement
	}
	return origIndent + strings.TrimLeft(replacement, " \t")
}

// dropStaleSiblings re-derives annotations still anchored to the edited
// line and removes the ones the edit made moot: their replacement is
// already present in the new text or no longer differs from it
func (d *Document) dropStaleSiblings(idx *LineIndex, editedLine int) {
	updated, ok := idx.Line(editedLine)
	if !ok {
		return
	}
	current := strings.TrimSpace(updated)

	for _, sib := range d.store.Query() {
		if sib.Line != editedLine {
			continue
		}
		// Already reflected: the edit just applied produced the text this
		// sibling wanted, modulo whitespace
		if sib.ReplacementText != "" &&
			strings.Contains(stripSpace(updated), stripSpace(sib.ReplacementText)) {
			d.store.Remove(sib.ID)
			continue
		}
		// The sibling now targets the updated line as a whole; keep it
		// only if its edit still means something
		if !isMeaningfulChange(current, sib.ReplacementText) {
			d.store.Remove(sib.ID)
			continue
		}
		d.rederive(sib.ID, current)
	}
}

func stripSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t'
	}), "")
}

// rederive updates a stored annotation's original text in place
func (d *Document) rederive(id, original string) {
	for i := range d.store.annotations {
		if d.store.annotations[i].ID == id {
			d.store.annotations[i].OriginalText = original
			return
		}
	}
}
