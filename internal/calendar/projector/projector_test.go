package projector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func view() View {
	return View{Day: day, StartHour: 8, EndHour: 20, PixelsPerHour: 80}
}

func TestProject(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       Projection
	}{
		{"hour", at(9, 0), at(10, 0), Projection{Top: 80, Height: 80}},
		{"short gets min height", at(9, 0), at(9, 5), Projection{Top: 80, Height: 20}},
		{"zero length", at(9, 0), at(9, 0), Projection{Top: 80, Height: 20}},
		{"inverted", at(10, 0), at(9, 0), Projection{Top: 160, Height: 20}},
		{"starts before grid", at(7, 0), at(9, 0), Projection{Top: 0, Height: 80}},
		{"ends after grid", at(19, 0), at(21, 0), Projection{Top: 880, Height: 80}},
		{"spans next day", at(19, 0), day.AddDate(0, 0, 1).Add(time.Hour), Projection{Top: 880, Height: 80, SpansNextDay: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Project(tt.start, tt.end, view()))
		})
	}
}

func TestView_Axis(t *testing.T) {
	v := view()

	assert.Equal(t, 960.0, v.Height())
	assert.Equal(t, at(8, 0), v.Start())
	assert.Equal(t, at(20, 0), v.End())
	assert.Equal(t, 100.0, v.OffsetOf(at(9, 15)))
	assert.Equal(t, at(9, 15), v.TimeAt(100))
}

func TestProject_CustomMinHeight(t *testing.T) {
	v := view()
	v.MinHeight = 30

	assert.Equal(t, 30.0, Project(at(9, 0), at(9, 10), v).Height)
}
