package tui

// Viewport is the window of ranked rows currently on screen.
type Viewport struct {
	Height int
	Top    int
}

// Follow scrolls the minimum amount needed to keep selected visible, then
// clamps Top so the window never runs past the end of the list.
func (v *Viewport) Follow(selected, total int) {
	if v.Height < 1 {
		v.Height = 1
	}
	if total <= v.Height || selected < 0 {
		v.Top = 0
		return
	}

	if selected < v.Top {
		v.Top = selected
	}
	if selected >= v.Top+v.Height {
		v.Top = selected - v.Height + 1
	}
	v.Top = min(v.Top, total-v.Height)
	v.Top = max(v.Top, 0)
}

// Window returns the half-open range of rows to draw.
func (v Viewport) Window(total int) (start, end int) {
	start = min(v.Top, total)
	end = min(total, v.Top+v.Height)
	return start, end
}
