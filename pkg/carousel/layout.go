package carousel

// FocusState is the state of the active card: centred, flat, full scale, on top
func FocusState() CardState {
	return CardState{
		Scale:   1,
		Opacity: 1,
		Z:       FocusZ,
		InFocus: true,
	}
}

// StackState is the background state of card i. It depends only on the
// card's position in the image list, never on which card is active or on
// navigation history, so the stack always fans out in list order.
func StackState(i int) CardState {
	offset := float64(i) * 6
	return CardState{
		OffsetX: offset,
		OffsetY: offset * 0.5,
		Depth:   -float64(i) * 40,
		RotateY: -40 + float64(i)*2,
		RotateX: 4,
		Scale:   0.9,
		Opacity: 0.7,
		Z:       StackBaseZ - i,
	}
}

// LayoutFor returns the state card i should settle in when active is in focus
func LayoutFor(i, active int) CardState {
	if i == active {
		return FocusState()
	}
	return StackState(i)
}
