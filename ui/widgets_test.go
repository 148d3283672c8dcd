package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/surface/geom"
	"github.com/agiangrant/surface/render/rendertest"
)

func newTestSlider(t *testing.T) *LineSlider2D {
	t.Helper()
	s, err := NewLineSlider(rendertest.New(), SliderConfig{
		Position:    geom.Point{X: 0, Y: 0},
		Min:         0,
		Max:         100,
		Initial:     50,
		Orientation: Horizontal,
		Length:      200,
	})
	require.NoError(t, err)
	return s
}

func TestSliderDragBeyondEndPinsAtBound(t *testing.T) {
	s := newTestSlider(t)

	s.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 100, Y: 8}})
	s.HandleEvent(&Event{Type: EventPointerMove, Pos: geom.Point{X: 900, Y: 8}})
	assert.Equal(t, 100.0, s.Value(), "dragging past the end pins exactly at max")

	s.HandleEvent(&Event{Type: EventPointerMove, Pos: geom.Point{X: -500, Y: 8}})
	assert.Equal(t, 0.0, s.Value(), "dragging past the start pins exactly at min")
}

func TestSliderFiresDuringDragAndOnceOnRelease(t *testing.T) {
	s := newTestSlider(t)

	var changes []float64
	ends := 0
	s.OnValueChanged(func(v float64) { changes = append(changes, v) })
	s.OnDragEnd(func(float64) { ends++ })

	s.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 0, Y: 8}})
	s.HandleEvent(&Event{Type: EventPointerMove, Pos: geom.Point{X: 50, Y: 8}})
	s.HandleEvent(&Event{Type: EventPointerMove, Pos: geom.Point{X: 100, Y: 8}})
	s.HandleEvent(&Event{Type: EventPointerUp, Pos: geom.Point{X: 100, Y: 8}})

	assert.Equal(t, []float64{0, 25, 50}, changes, "value updates continuously while dragging")
	assert.Equal(t, 1, ends, "drag end fires exactly once per release")
}

func TestSliderSetValueRejectsOutOfRange(t *testing.T) {
	s := newTestSlider(t)

	err := s.SetValue(150)
	assert.True(t, errors.Is(err, ErrInvalidValue))
	assert.Equal(t, 50.0, s.Value())

	require.NoError(t, s.SetValue(75))
	assert.Equal(t, 75.0, s.Value())
	assert.InDelta(t, 0.75, s.Ratio(), 1e-12)
}

func TestSliderHandleTracksValue(t *testing.T) {
	s := newTestSlider(t)
	require.NoError(t, s.SetValue(100))
	assert.InDelta(t, 200, s.handle.Center().X, 1e-9, "handle sits at the track end at max")

	require.NoError(t, s.SetValue(0))
	assert.InDelta(t, 0, s.handle.Center().X, 1e-9)
}

func TestVerticalSliderGrowsUpward(t *testing.T) {
	s, err := NewLineSlider(rendertest.New(), SliderConfig{
		Position:    geom.Point{X: 0, Y: 0},
		Min:         0,
		Max:         10,
		Initial:     0,
		Orientation: Vertical,
		Length:      100,
	})
	require.NoError(t, err)

	bottom := s.handle.Center().Y
	require.NoError(t, s.SetValue(10))
	assert.Less(t, s.handle.Center().Y, bottom, "larger values sit higher on a vertical track")
}

func TestDoubleSliderHandlesCannotCross(t *testing.T) {
	d, err := NewLineDoubleSlider(rendertest.New(), DoubleSliderConfig{
		SliderConfig: SliderConfig{
			Position:    geom.Point{X: 0, Y: 0},
			Min:         0,
			Max:         100,
			Orientation: Horizontal,
			Length:      200,
		},
		InitialLow:  20,
		InitialHigh: 80,
	})
	require.NoError(t, err)

	// Press near the high handle, then drag far below the low handle.
	d.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 170, Y: 8}})
	d.HandleEvent(&Event{Type: EventPointerMove, Pos: geom.Point{X: 10, Y: 8}})
	d.HandleEvent(&Event{Type: EventPointerUp, Pos: geom.Point{X: 10, Y: 8}})

	assert.Equal(t, 20.0, d.Low())
	assert.Equal(t, 20.0, d.High(), "high handle clamps at the low handle")
	assert.LessOrEqual(t, d.Low(), d.High())
}

func TestRangeSliderKeepsLowAtMostHigh(t *testing.T) {
	rs, err := NewRangeSlider(rendertest.New(), DoubleSliderConfig{
		SliderConfig: SliderConfig{
			Min: 0, Max: 1, Length: 100, Orientation: Horizontal,
		},
		InitialLow:  0.25,
		InitialHigh: 0.75,
	})
	require.NoError(t, err)

	err = rs.SetRange(0.9, 0.1)
	assert.True(t, errors.Is(err, ErrInvalidValue), "inverted bounds are rejected")
	assert.Equal(t, 0.25, rs.Low())
	assert.Equal(t, 0.75, rs.High())

	require.NoError(t, rs.SetRange(0.1, 0.9))
	assert.Equal(t, 0.1, rs.Low())
	assert.Equal(t, 0.9, rs.High())
}

func TestRingSliderAngleFollowsPointerBearing(t *testing.T) {
	s, err := NewRingSlider(rendertest.New(), RingSliderConfig{
		Center: geom.Point{X: 100, Y: 100},
		Radius: 50,
	})
	require.NoError(t, err)

	// Straight right of center is 0 degrees.
	s.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 180, Y: 100}})
	assert.InDelta(t, 0, s.Angle(), 1e-9)

	// Straight above center (screen Y down) is 90 degrees CCW in Y-up.
	s.HandleEvent(&Event{Type: EventPointerMove, Pos: geom.Point{X: 100, Y: 20}})
	assert.InDelta(t, 90, s.Angle(), 1e-9)

	// The handle sits on the orbit at that bearing.
	c := s.handle.Center()
	assert.InDelta(t, 100, c.X, 1e-9)
	assert.InDelta(t, 50, c.Y, 1e-9)

	s.HandleEvent(&Event{Type: EventPointerUp, Pos: geom.Point{X: 100, Y: 180}})
	assert.InDelta(t, 270, s.Angle(), 1e-9)
}

func TestRingSliderNormalizesProgrammaticAngles(t *testing.T) {
	s, err := NewRingSlider(rendertest.New(), RingSliderConfig{
		Center:       geom.Point{X: 0, Y: 0},
		Radius:       10,
		InitialAngle: -90,
	})
	require.NoError(t, err)
	assert.Equal(t, 270.0, s.Angle())

	require.NoError(t, s.SetAngle(725))
	assert.Equal(t, 5.0, s.Angle())
}

func TestCheckboxToggles(t *testing.T) {
	c, err := NewCheckbox(rendertest.New(), CheckboxConfig{Label: "opt"})
	require.NoError(t, err)
	require.False(t, c.Checked())

	var states []bool
	c.OnChanged(func(v bool) { states = append(states, v) })

	c.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 5, Y: 5}})
	assert.True(t, c.Checked())
	c.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 5, Y: 5}})
	assert.False(t, c.Checked())
	assert.Equal(t, []bool{true, false}, states)

	c.SetChecked(false) // no-op, already false
	assert.Equal(t, []bool{true, false}, states, "observers fire only on actual change")
}

func newTestRadioGroup(t *testing.T, n int) (*RadioGroup, []*RadioButton) {
	t.Helper()
	rec := rendertest.New()
	g := NewRadioGroup(geom.Point{})
	buttons := make([]*RadioButton, n)
	for i := range buttons {
		rb, err := NewRadioButton(rec, CheckboxConfig{
			Position: geom.Point{X: 0, Y: float64(i) * 30},
			Label:    "choice",
		})
		require.NoError(t, err)
		g.AddButton(rb)
		buttons[i] = rb
	}
	return g, buttons
}

func selectedCount(buttons []*RadioButton) int {
	n := 0
	for _, rb := range buttons {
		if rb.Selected() {
			n++
		}
	}
	return n
}

func TestRadioGroupExactlyOneSelected(t *testing.T) {
	g, buttons := newTestRadioGroup(t, 3)
	assert.Equal(t, 0, g.SelectedIndex(), "first button added is selected")
	assert.Equal(t, 1, selectedCount(buttons))

	require.NoError(t, g.Select(2))
	assert.Equal(t, 2, g.SelectedIndex())
	assert.Equal(t, 1, selectedCount(buttons))

	err := g.Select(5)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	assert.Equal(t, 2, g.SelectedIndex())
	assert.Equal(t, 1, selectedCount(buttons))
}

func TestRadioClickSelectsAndNeverDeselects(t *testing.T) {
	g, buttons := newTestRadioGroup(t, 2)

	fired := []int{}
	g.OnSelected(func(i int) { fired = append(fired, i) })

	buttons[1].HandleEvent(&Event{Type: EventPointerDown, Pos: buttons[1].Position()})
	assert.Equal(t, 1, g.SelectedIndex())

	// Clicking the selected radio again is not a deselect.
	buttons[1].HandleEvent(&Event{Type: EventPointerDown, Pos: buttons[1].Position()})
	assert.Equal(t, 1, g.SelectedIndex())
	assert.Equal(t, []int{1}, fired)
	assert.Equal(t, 1, selectedCount(buttons))
}

func TestRadioGroupSurvivesRemovingSelection(t *testing.T) {
	g, buttons := newTestRadioGroup(t, 3)
	require.NoError(t, g.Select(1))

	require.True(t, g.RemoveElement(buttons[1]))
	assert.Equal(t, 0, g.SelectedIndex(), "selection promotes to a remaining button")
	assert.Equal(t, 1, selectedCount([]*RadioButton{buttons[0], buttons[2]}))
}

func newTestCombo(t *testing.T) *ComboBox2D {
	t.Helper()
	c, err := NewComboBox(rendertest.New(), ComboBoxConfig{
		Position: geom.Point{X: 0, Y: 0},
		Width:    120,
		Options:  []string{"alpha", "beta", "gamma"},
	})
	require.NoError(t, err)
	return c
}

func TestComboExpandSelectCollapse(t *testing.T) {
	c := newTestCombo(t)
	require.False(t, c.Expanded())

	c.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 10, Y: 10}})
	require.True(t, c.Expanded())

	selected := -1
	c.OnSelected(func(i int) { selected = i })

	// Default item height is 24: row for "beta" spans y 48..72.
	c.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 10, Y: 50}})
	assert.Equal(t, 1, selected)
	assert.Equal(t, "beta", c.SelectedOption())
	assert.False(t, c.Expanded(), "picking an option collapses the drop-down")
}

func TestComboBlurCollapsesWithoutChangingSelection(t *testing.T) {
	c := newTestCombo(t)
	require.NoError(t, c.Select(2))

	c.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 10, Y: 10}})
	require.True(t, c.Expanded())

	c.loseFocus()
	assert.False(t, c.Expanded())
	assert.Equal(t, 2, c.Selected(), "blur never changes the selection")
}

func TestComboExpandedBoundsCoverDropdown(t *testing.T) {
	c := newTestCombo(t)
	collapsed := c.BoundingBox()

	c.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 10, Y: 10}})
	expanded := c.BoundingBox()
	assert.Greater(t, expanded.Height(), collapsed.Height(), "open drop-down is hit-testable")
	assert.True(t, expanded.Contains(geom.Point{X: 10, Y: 50}))
}

func newTestListBox(t *testing.T, multi bool) *ListBox2D {
	t.Helper()
	items := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	lb, err := NewListBox(rendertest.New(), ListBoxConfig{
		Position:    geom.Point{X: 0, Y: 0},
		Size:        geom.Size{Width: 100, Height: 100},
		Items:       items,
		MultiSelect: multi,
	})
	require.NoError(t, err)
	return lb
}

func TestListBoxScrollClampsToContent(t *testing.T) {
	lb := newTestListBox(t, false)
	// 10 items at height 24 = 240 content against a 100 viewport.
	lb.ScrollBy(1e9)
	assert.Equal(t, 140.0, lb.Scroll(), "scroll clamps at contentHeight-viewportHeight")

	lb.ScrollBy(-1e9)
	assert.Equal(t, 0.0, lb.Scroll())
}

func TestListBoxScrollNoOpWhenContentFits(t *testing.T) {
	lb, err := NewListBox(rendertest.New(), ListBoxConfig{
		Size:  geom.Size{Width: 100, Height: 200},
		Items: []string{"only", "two"},
	})
	require.NoError(t, err)

	lb.ScrollBy(50)
	assert.Equal(t, 0.0, lb.Scroll())
}

func TestListBoxSingleSelectReplaces(t *testing.T) {
	lb := newTestListBox(t, false)

	var last []int
	lb.OnSelectionChanged(func(s []int) { last = s })

	require.NoError(t, lb.SelectIndex(1))
	assert.Equal(t, []int{1}, last)

	require.NoError(t, lb.SelectIndex(3))
	assert.Equal(t, []int{3}, last, "single-select replaces the previous choice")

	err := lb.SelectIndex(99)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	assert.Equal(t, []int{3}, lb.Selection())
}

func TestListBoxMultiSelectToggles(t *testing.T) {
	lb := newTestListBox(t, true)

	require.NoError(t, lb.SelectIndex(1))
	require.NoError(t, lb.SelectIndex(4))
	assert.Equal(t, []int{1, 4}, lb.Selection())

	require.NoError(t, lb.SelectIndex(1))
	assert.Equal(t, []int{4}, lb.Selection(), "re-selecting toggles the item off")
}

func TestListBoxClickSelectsScrolledItem(t *testing.T) {
	lb := newTestListBox(t, false)
	lb.ScrollTo(48) // two rows scrolled off

	// Viewport y=10 now lands on row index 2.
	lb.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 10, Y: 10}})
	assert.Equal(t, []int{2}, lb.Selection())
}

func TestListBoxSetItemsResetsSelectionAndScroll(t *testing.T) {
	lb := newTestListBox(t, false)
	require.NoError(t, lb.SelectIndex(2))
	lb.ScrollTo(100)

	require.NoError(t, lb.SetItems([]string{"x", "y"}))
	assert.Empty(t, lb.Selection())
	assert.Equal(t, 0.0, lb.Scroll())
	assert.Equal(t, []string{"x", "y"}, lb.Items())
}

func TestListBoxWindowsRowsOutsideViewport(t *testing.T) {
	lb := newTestListBox(t, false)
	// Viewport height 100 fits rows 0..3 fully; row 9 is far below.
	assert.True(t, lb.rows[0].Visible())
	assert.False(t, lb.rows[9].Visible())

	lb.ScrollTo(140)
	assert.False(t, lb.rows[0].Visible())
	assert.True(t, lb.rows[9].Visible())
}

func TestListBoxClickOnWindowedOutRowIgnored(t *testing.T) {
	lb := newTestListBox(t, false)
	// The strip from y 96 to 100 belongs to row 4, which extends past the
	// viewport and is hidden by the windowing.
	require.False(t, lb.rows[4].Visible())

	consumed := lb.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 50, Y: 98}})
	assert.False(t, consumed)
	assert.Empty(t, lb.Selection(), "a hidden row is not selectable")

	// Scrolling the row fully into view makes the same item selectable.
	lb.ScrollTo(24)
	require.True(t, lb.rows[4].Visible())
	require.True(t, lb.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 50, Y: 74}}))
	assert.Equal(t, []int{4}, lb.Selection())
}

func newTestSpinBox(t *testing.T) *SpinBox {
	t.Helper()
	sb, err := NewSpinBox(rendertest.New(), SpinBoxConfig{
		Position: geom.Point{X: 0, Y: 0},
		Width:    120,
		Min:      0,
		Max:      100,
		Initial:  50,
		Step:     10,
	})
	require.NoError(t, err)
	return sb
}

func typeInto(sb *SpinBox, s string) {
	for _, r := range s {
		sb.HandleEvent(&Event{Type: EventKey, Rune: r})
	}
}

func TestSpinBoxStepsClampAtBounds(t *testing.T) {
	sb := newTestSpinBox(t)

	for i := 0; i < 10; i++ {
		sb.Increment()
	}
	assert.Equal(t, 100.0, sb.Value())

	for i := 0; i < 20; i++ {
		sb.Decrement()
	}
	assert.Equal(t, 0.0, sb.Value())
}

func TestSpinBoxEntryCommitsAndClamps(t *testing.T) {
	sb := newTestSpinBox(t)

	// Click the text field (buttons are 24 wide on each side).
	sb.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 60, Y: 10}})
	require.True(t, sb.Editing())

	typeInto(sb, "75")
	sb.HandleEvent(&Event{Type: EventKey, Key: "enter"})
	assert.Equal(t, 75.0, sb.Value())
	assert.False(t, sb.Editing())

	sb.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 60, Y: 10}})
	typeInto(sb, "99999")
	sb.HandleEvent(&Event{Type: EventKey, Key: "enter"})
	assert.Equal(t, 100.0, sb.Value(), "out-of-range entry clamps into range")
}

func TestSpinBoxGarbageEntryRevertsSilently(t *testing.T) {
	sb := newTestSpinBox(t)

	sb.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 60, Y: 10}})
	typeInto(sb, "not a number")
	sb.HandleEvent(&Event{Type: EventKey, Key: "enter"})

	assert.Equal(t, 50.0, sb.Value(), "unparseable entry reverts to the last valid value")
	assert.False(t, sb.Editing())
}

func TestSpinBoxBlurAbortsEdit(t *testing.T) {
	sb := newTestSpinBox(t)

	sb.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 60, Y: 10}})
	typeInto(sb, "123")
	sb.loseFocus()
	assert.False(t, sb.Editing())
	assert.Equal(t, 50.0, sb.Value())
}

func TestSpinBoxButtonClicks(t *testing.T) {
	sb := newTestSpinBox(t)

	// Decrement button occupies x 0..24, increment x 96..120.
	sb.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 10, Y: 10}})
	assert.Equal(t, 40.0, sb.Value())
	sb.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 110, Y: 10}})
	sb.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 110, Y: 10}})
	assert.Equal(t, 60.0, sb.Value())
}

func TestPlaybackTransitions(t *testing.T) {
	p, err := NewPlaybackPanel(rendertest.New(), PlaybackConfig{
		Width:    300,
		Duration: 100,
	})
	require.NoError(t, err)
	require.Equal(t, PlaybackStopped, p.State())

	var states []PlaybackState
	p.OnStateChanged(func(s PlaybackState) { states = append(states, s) })

	p.Play()
	p.Pause()
	p.Play()
	p.Stop()
	assert.Equal(t, []PlaybackState{PlaybackPlaying, PlaybackPaused, PlaybackPlaying, PlaybackStopped}, states)

	p.Pause() // pausing while stopped is a no-op
	assert.Equal(t, PlaybackStopped, p.State())
	assert.Len(t, states, 4)
}

func TestPlaybackSeekIndependentOfState(t *testing.T) {
	p, err := NewPlaybackPanel(rendertest.New(), PlaybackConfig{
		Width:    300,
		Duration: 100,
	})
	require.NoError(t, err)

	var seeks []float64
	p.OnSeek(func(v float64) { seeks = append(seeks, v) })

	require.NoError(t, p.SeekTo(40))
	assert.Equal(t, PlaybackStopped, p.State(), "seeking does not change the transport state")
	assert.Equal(t, 40.0, p.SeekPosition())

	p.Play()
	require.NoError(t, p.SeekTo(60))
	assert.Equal(t, PlaybackPlaying, p.State())

	p.Stop()
	assert.Equal(t, 0.0, p.SeekPosition(), "stop rewinds to zero")
	assert.Equal(t, []float64{40, 60, 0}, seeks)

	err = p.SeekTo(500)
	assert.True(t, errors.Is(err, ErrInvalidValue))
}

func TestCardClick(t *testing.T) {
	c, err := NewCard(rendertest.New(), CardConfig{
		Position: geom.Point{X: 0, Y: 0},
		Size:     geom.Size{Width: 100, Height: 80},
		Image:    "cover.png",
		Title:    "Title",
		Body:     "Body",
	})
	require.NoError(t, err)
	require.NotNil(t, c.Image())

	clicks := 0
	c.OnClicked(func() { clicks++ })

	c.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 50, Y: 40}})
	c.HandleEvent(&Event{Type: EventPointerUp, Pos: geom.Point{X: 50, Y: 40}})
	assert.Equal(t, 1, clicks)

	c.HandleEvent(&Event{Type: EventPointerDown, Pos: geom.Point{X: 50, Y: 40}})
	c.HandleEvent(&Event{Type: EventPointerUp, Pos: geom.Point{X: 500, Y: 500}})
	assert.Equal(t, 1, clicks, "release outside the card is not a click")
}
