package layout

// Block is the layout of a whole header slice allocation together with the
// offsets of its parts.
type Block struct {
	Layout
	Header       Layout
	Elem         Layout
	HeaderOffset uintptr
	DataOffset   uintptr
	Len          int
}

// HeaderSlice computes the block for n elements of elem behind a header.
// The three parts are appended in declared order, length word first, and
// the result is padded to its alignment.
func HeaderSlice(header, elem Layout, n int) (Block, error) {
	values, err := ArrayOf(elem, n)
	if err != nil {
		return Block{}, err
	}
	part1, headerOff, err := Word.Extend(header)
	if err != nil {
		return Block{}, err
	}
	part2, dataOff, err := part1.Extend(values)
	if err != nil {
		return Block{}, err
	}
	return Block{
		Layout:       part2.PadToAlign(),
		Header:       header,
		Elem:         elem,
		HeaderOffset: headerOff,
		DataOffset:   dataOff,
		Len:          n,
	}, nil
}

// For computes the block holding n values of T behind an H header.
func For[T, H any](n int) (Block, error) {
	return HeaderSlice(Of[H](), Of[T](), n)
}

// Offsets returns where the header and the first element live inside any
// block for T and H. They do not depend on the element count.
func Offsets[T, H any]() (header, data uintptr) {
	h, e := Of[H](), Of[T]()
	header = alignUp(Word.Size, h.Align)
	data = alignUp(header+h.Size, e.Align)
	return header, data
}

// alignUp is only used on offsets of statically sized types, which cannot
// overflow.
func alignUp(offset, align uintptr) uintptr {
	return (offset + align - 1) &^ (align - 1)
}
