package scroll

import (
	"math"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTrackerWheel(t *testing.T) {
	Convey("Given a tracker on a 1000 unit page", t, func() {
		tr := NewTracker(WithPageLength(1000), WithWheelStep(50))

		Convey("It starts at the top", func() {
			So(tr.Offset(), ShouldEqual, 0)
			So(tr.PageLength(), ShouldEqual, 1000)
		})

		Convey("Scrolling down moves the offset negative", func() {
			tr.Wheel(-3)
			So(tr.Offset(), ShouldEqual, -150)
			tr.Wheel(1)
			So(tr.Offset(), ShouldEqual, -100)
		})

		Convey("Scrolling above the top clamps to 0", func() {
			tr.Wheel(5)
			So(tr.Offset(), ShouldEqual, 0)
		})

		Convey("Scrolling past the bottom clamps to -pageLength", func() {
			tr.Wheel(-100)
			So(tr.Offset(), ShouldEqual, -1000)
		})
	})

	Convey("Given a negative page length", t, func() {
		tr := NewTracker(WithPageLength(-500))

		Convey("The sign is ignored", func() {
			So(tr.PageLength(), ShouldEqual, 500)
			tr.Set(-9999)
			So(tr.Offset(), ShouldEqual, -500)
		})
	})
}

func TestTrackerKeys(t *testing.T) {
	Convey("Given a tracker with line and page steps", t, func() {
		tr := NewTracker(WithPageLength(2000), WithKeySteps(10, 300))

		Convey("Arrow keys move by a line", func() {
			So(tr.Key(common.KeyDown, false), ShouldBeTrue)
			So(tr.Offset(), ShouldEqual, -10)
			tr.Key(common.KeyUp, false)
			So(tr.Offset(), ShouldEqual, 0)
		})

		Convey("Page keys and space move by a page", func() {
			tr.Key(common.KeyPageDown, false)
			tr.Key(common.KeySpace, false)
			So(tr.Offset(), ShouldEqual, -600)
			tr.Key(common.KeyPageUp, false)
			So(tr.Offset(), ShouldEqual, -300)
			tr.Key(common.KeySpace, true)
			So(tr.Offset(), ShouldEqual, 0)
		})

		Convey("Home and End jump to the page bounds", func() {
			tr.Key(common.KeyEnd, false)
			So(tr.Offset(), ShouldEqual, -2000)
			tr.Key(common.KeyHome, false)
			So(tr.Offset(), ShouldEqual, 0)
		})

		Convey("Other keys are ignored", func() {
			So(tr.Key(common.KeyLeftShift, false), ShouldBeFalse)
			So(tr.Offset(), ShouldEqual, 0)
		})
	})
}

func TestTrackerNotifiesAndSurvivesContention(t *testing.T) {
	Convey("Given a tracker with a change callback", t, func() {
		var got []float64
		tr := NewTracker(WithPageLength(100), WithChangeCallback(func(offset float64) {
			got = append(got, offset)
		}))

		Convey("Every change reports the clamped offset", func() {
			tr.Set(-40)
			tr.Set(-400)
			tr.Set(math.NaN())
			So(got, ShouldResemble, []float64{-40, -100, -100})
		})

		Convey("SetChangeCallback replaces the callback", func() {
			calls := 0
			tr.SetChangeCallback(func(float64) { calls++ })
			tr.Wheel(-1)
			So(calls, ShouldEqual, 1)
			So(got, ShouldBeEmpty)
		})
	})

	Convey("Given many goroutines scrolling concurrently", t, func() {
		tr := NewTracker(WithPageLength(1e9), WithWheelStep(1))

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 500 {
					tr.Wheel(-1)
				}
			}()
		}
		wg.Wait()

		Convey("No delta is lost", func() {
			So(tr.Offset(), ShouldEqual, -4000)
		})
	})
}
