package nonempty

// TryPop removes and returns the last element. It fails with ErrEmpty if that
// element is the only one.
func (v *SmallVec1[T, A]) TryPop() (T, error) {
	b := v.vec()
	if b.Len() == 1 {
		var zero T
		return zero, ErrEmpty
	}
	x, _ := b.Pop()
	return x, nil
}

// TryTruncate shortens the container to n elements, doing nothing if
// n >= Len. It fails with ErrEmpty if n is 0 and panics if n is negative.
func (v *SmallVec1[T, A]) TryTruncate(n int) error {
	if n == 0 {
		return ErrEmpty
	}
	v.vec().Truncate(n)
	return nil
}

// TryRemove deletes and returns the element at index i, shifting later
// elements left. It fails with ErrEmpty if the container holds one element
// and panics if i is out of range.
func (v *SmallVec1[T, A]) TryRemove(i int) (T, error) {
	b := v.vec()
	if b.Len() == 1 {
		var zero T
		return zero, ErrEmpty
	}
	return b.Remove(i), nil
}

// TrySwapRemove deletes and returns the element at index i, moving the last
// element into its place. It fails like TryRemove.
func (v *SmallVec1[T, A]) TrySwapRemove(i int) (T, error) {
	b := v.vec()
	if b.Len() == 1 {
		var zero T
		return zero, ErrEmpty
	}
	return b.SwapRemove(i), nil
}

// TryResize changes the length to n, filling new slots with x.
// It fails with ErrEmpty if n is 0.
func (v *SmallVec1[T, A]) TryResize(n int, x T) error {
	if n == 0 {
		return ErrEmpty
	}
	v.vec().Resize(n, x)
	return nil
}

// TryResizeWith changes the length to n, filling new slots with values from f.
// It fails with ErrEmpty if n is 0.
func (v *SmallVec1[T, A]) TryResizeWith(n int, f func() T) error {
	if n == 0 {
		return ErrEmpty
	}
	v.vec().ResizeWith(n, f)
	return nil
}
