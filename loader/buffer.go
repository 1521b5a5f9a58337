package loader

// A DocBuffer accumulates documents waiting to be copied into the database.
type DocBuffer struct {
	Docs     []Doc
	Capacity int
}

// NewBuffer creates a new document load buffer.
func NewBuffer(size int) *DocBuffer {
	return &DocBuffer{
		Docs:     make([]Doc, 0, size),
		Capacity: size,
	}
}

// IsFull checks if this buffer is at its max capacity.
func (b *DocBuffer) IsFull() bool {
	return len(b.Docs) >= b.Capacity
}

// Add adds d to the buffer. Adding to a full buffer causes a panic.
func (b *DocBuffer) Add(d Doc) {
	if b.IsFull() {
		panic("buffer overflow")
	}
	b.Docs = append(b.Docs, d)
}

// Clear discards all buffered documents.
func (b *DocBuffer) Clear() {
	b.Docs = b.Docs[:0]
}
