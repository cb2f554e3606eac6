package core

// BufferSet is the ordered list of open buffers and the index of the current
// one. current is -1 when nothing is open.
type BufferSet struct {
	buffers []*Buffer
	current int
}

func NewBufferSet() *BufferSet {
	return &BufferSet{current: -1}
}

// Open loads path, or creates an untitled buffer when path is empty, appends
// it and makes it current.
func (s *BufferSet) Open(path string, opts Options) (*Buffer, error) {
	var (
		buf *Buffer
		err error
	)
	if path == "" {
		buf = NewBuffer(opts)
	} else if buf, err = OpenBuffer(path, opts); err != nil {
		return nil, err
	}

	s.Add(buf)
	return buf, nil
}

// Add appends buf and makes it current.
func (s *BufferSet) Add(buf *Buffer) {
	s.buffers = append(s.buffers, buf)
	s.current = len(s.buffers) - 1
}

// Close removes the buffer at index and closes its file. If it was current,
// the buffer now at that index becomes current, or the new last one when the
// tail was removed. Closing an earlier buffer keeps the same buffer current.
func (s *BufferSet) Close(index int) error {
	if index < 0 || index >= len(s.buffers) {
		return ErrInvalidIndex
	}

	closed := s.buffers[index]
	s.buffers = append(s.buffers[:index], s.buffers[index+1:]...)

	switch {
	case len(s.buffers) == 0:
		s.current = -1
	case index < s.current:
		s.current--
	case s.current >= len(s.buffers):
		s.current = len(s.buffers) - 1
	}

	return closed.Close()
}

func (s *BufferSet) CloseCurrent() error {
	if s.current < 0 {
		return ErrNoBufferOpen
	}
	return s.Close(s.current)
}

func (s *BufferSet) Select(index int) error {
	if index < 0 || index >= len(s.buffers) {
		return ErrInvalidIndex
	}
	s.current = index
	return nil
}

// Next makes the following buffer current, wrapping around.
func (s *BufferSet) Next() error {
	if s.current < 0 {
		return ErrNoBufferOpen
	}
	s.current = (s.current + 1) % len(s.buffers)
	return nil
}

// Prev makes the preceding buffer current, wrapping around.
func (s *BufferSet) Prev() error {
	if s.current < 0 {
		return ErrNoBufferOpen
	}
	s.current = (s.current - 1 + len(s.buffers)) % len(s.buffers)
	return nil
}

func (s *BufferSet) Len() int {
	return len(s.buffers)
}

// Current returns the current buffer, or nil when none is open.
func (s *BufferSet) Current() *Buffer {
	if s.current < 0 {
		return nil
	}
	return s.buffers[s.current]
}

// CurrentIndex returns the current index, or -1 when none is open.
func (s *BufferSet) CurrentIndex() int {
	return s.current
}

func (s *BufferSet) Get(index int) (*Buffer, error) {
	if index < 0 || index >= len(s.buffers) {
		return nil, ErrInvalidIndex
	}
	return s.buffers[index], nil
}
