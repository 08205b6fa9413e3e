package bparse

// View is a byte range borrowed from the buffer passed to Execute. It is valid for as long as the
// caller keeps that buffer unchanged. Use Clone to keep the bytes around for longer.
type View []byte

func (v View) String() string { return string(v) }
func (v View) Len() int       { return len(v) }

// Clone returns a copy of v that does not alias the parse buffer.
func (v View) Clone() View {
	if v == nil {
		return nil
	}

	return append(View(make([]byte, 0, len(v))), v...)
}

// Equal reports whether v holds the same bytes as s.
func (v View) Equal(s string) bool { return string(v) == s }

// extend joins the next piece of a field to v. When at directly follows v in the same backing
// array the result still aliases it, otherwise both pieces are copied.
func (v View) extend(at []byte) View {
	switch {
	case len(at) == 0:
		return v
	case len(v) == 0:
		return View(at)
	case adjacent(v, at):
		return v[:len(v)+len(at)]
	}

	out := make(View, 0, len(v)+len(at))
	return append(append(out, v...), at...)
}

func adjacent(v View, at []byte) bool {
	if cap(v)-len(v) < len(at) {
		return false
	}

	return &v[:len(v)+1][len(v)] == &at[0]
}
