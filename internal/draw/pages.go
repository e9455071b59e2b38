package draw

// BoardPages is the ordered page list of a single board. At least one
// page always exists and one of them is active.
type BoardPages struct {
	pages  []*Frame
	active int
}

// PageDeleteOutcome reports what deleting a page actually did.
type PageDeleteOutcome int

const (
	// PageRemoved means the page was deleted from the board.
	PageRemoved PageDeleteOutcome = iota
	// PageCleared means the last remaining page was cleared in place.
	PageCleared
	// PageUnchanged means the index was out of range and nothing happened.
	PageUnchanged
)

// NewBoardPages returns a board with a single empty page.
func NewBoardPages() *BoardPages {
	return &BoardPages{pages: []*Frame{NewFrame()}}
}

// BoardPagesFrom restores a page list from loaded frames. An empty list
// gets a fresh page; the active index is clamped into range.
func BoardPagesFrom(pages []*Frame, active int) *BoardPages {
	if len(pages) == 0 {
		pages = []*Frame{NewFrame()}
	}
	for i, p := range pages {
		if p == nil {
			pages[i] = NewFrame()
		}
	}
	if active < 0 {
		active = 0
	}
	if active >= len(pages) {
		active = len(pages) - 1
	}
	return &BoardPages{pages: pages, active: active}
}

// PageCount reports the number of pages.
func (b *BoardPages) PageCount() int { return len(b.pages) }

// ActiveIndex reports the index of the active page.
func (b *BoardPages) ActiveIndex() int { return b.active }

// ActiveFrame returns the active page's frame.
func (b *BoardPages) ActiveFrame() *Frame { return b.pages[b.active] }

// Pages returns the page frames in order. Callers must not mutate the
// returned slice.
func (b *BoardPages) Pages() []*Frame { return b.pages }

// Page returns the frame at index, or nil when out of range.
func (b *BoardPages) Page(index int) *Frame {
	if index < 0 || index >= len(b.pages) {
		return nil
	}
	return b.pages[index]
}

// NextPage advances to the following page if one exists.
func (b *BoardPages) NextPage() bool {
	if b.active+1 < len(b.pages) {
		b.active++
		return true
	}
	return false
}

// PrevPage steps back to the previous page if one exists.
func (b *BoardPages) PrevPage() bool {
	if b.active > 0 {
		b.active--
		return true
	}
	return false
}

// SwitchToPage makes the page at index active.
func (b *BoardPages) SwitchToPage(index int) bool {
	if index >= 0 && index < len(b.pages) && index != b.active {
		b.active = index
		return true
	}
	return false
}

// NewPage appends an empty page and makes it active.
func (b *BoardPages) NewPage() {
	b.pages = append(b.pages, NewFrame())
	b.active = len(b.pages) - 1
}

// DuplicatePage appends a history-free copy of the active page and
// makes it active.
func (b *BoardPages) DuplicatePage() {
	b.pages = append(b.pages, b.ActiveFrame().CloneWithoutHistory())
	b.active = len(b.pages) - 1
}

// DuplicatePageAt inserts a history-free copy right after index and
// makes it active, returning the new index.
func (b *BoardPages) DuplicatePageAt(index int) (int, bool) {
	if index < 0 || index >= len(b.pages) {
		return 0, false
	}
	cloned := b.pages[index].CloneWithoutHistory()
	at := index + 1
	b.insertAt(at, cloned)
	b.active = at
	return at, true
}

// InsertPage places a page right after the active one and makes it
// active.
func (b *BoardPages) InsertPage(page *Frame) {
	at := b.active + 1
	if at > len(b.pages) {
		at = len(b.pages)
	}
	b.insertAt(at, page)
	b.active = at
}

func (b *BoardPages) insertAt(at int, page *Frame) {
	b.pages = append(b.pages, nil)
	copy(b.pages[at+1:], b.pages[at:])
	b.pages[at] = page
}

// DeletePage removes the active page. The last remaining page is
// cleared in place instead of being removed.
func (b *BoardPages) DeletePage() PageDeleteOutcome {
	return b.DeletePageAt(b.active)
}

// DeletePageAt removes the page at index, keeping the active index on a
// valid page.
func (b *BoardPages) DeletePageAt(index int) PageDeleteOutcome {
	if index < 0 || index >= len(b.pages) {
		return PageUnchanged
	}
	if len(b.pages) == 1 {
		b.pages[0].Clear(false)
		b.pages[0].SetName("")
		b.active = 0
		return PageCleared
	}
	b.pages = append(b.pages[:index], b.pages[index+1:]...)
	switch {
	case b.active == index:
		if b.active >= len(b.pages) {
			b.active = len(b.pages) - 1
		}
	case b.active > index:
		b.active--
	}
	return PageRemoved
}

// TakePage removes and returns the page at index. The board keeps at
// least one page: taking the only page leaves a fresh empty one behind.
func (b *BoardPages) TakePage(index int) (*Frame, bool) {
	if index < 0 || index >= len(b.pages) {
		return nil, false
	}
	if len(b.pages) == 1 {
		page := b.pages[0]
		b.pages[0] = NewFrame()
		b.active = 0
		return page, true
	}
	page := b.pages[index]
	b.pages = append(b.pages[:index], b.pages[index+1:]...)
	switch {
	case b.active == index:
		if b.active >= len(b.pages) {
			b.active = len(b.pages) - 1
		}
	case b.active > index:
		b.active--
	}
	return page, true
}

// PushPage appends a page, makes it active, and returns its index.
func (b *BoardPages) PushPage(page *Frame) int {
	b.pages = append(b.pages, page)
	b.active = len(b.pages) - 1
	return b.active
}

// MovePage relocates a page from one index to another, keeping the
// active index pointing at the same page.
func (b *BoardPages) MovePage(from, to int) bool {
	n := len(b.pages)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	if from == to {
		return true
	}
	page := b.pages[from]
	b.pages = append(b.pages[:from], b.pages[from+1:]...)
	b.insertAt(to, page)
	switch {
	case b.active == from:
		b.active = to
	case from < b.active && to >= b.active:
		b.active--
	case from > b.active && to <= b.active:
		b.active++
	}
	return true
}

// TrimTrailingEmptyPages drops empty pages from the end of the list,
// always keeping at least one page.
func (b *BoardPages) TrimTrailingEmptyPages() {
	for len(b.pages) > 1 && !b.pages[len(b.pages)-1].HasPersistableData() {
		b.pages = b.pages[:len(b.pages)-1]
		if b.active >= len(b.pages) {
			b.active = len(b.pages) - 1
		}
	}
}

// PageName returns the name of the page at index, empty when unnamed
// or out of range.
func (b *BoardPages) PageName(index int) string {
	if p := b.Page(index); p != nil {
		return p.Name()
	}
	return ""
}

// SetPageName assigns a name to the page at index.
func (b *BoardPages) SetPageName(index int, name string) bool {
	p := b.Page(index)
	if p == nil {
		return false
	}
	p.SetName(name)
	return true
}

// HasPersistableData reports whether any page carries data worth saving.
func (b *BoardPages) HasPersistableData() bool {
	for _, p := range b.pages {
		if p.HasPersistableData() {
			return true
		}
	}
	return false
}
