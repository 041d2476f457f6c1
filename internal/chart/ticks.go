package chart

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/plot"
)

const (
	monthLabelLayout    = "2006-01"
	fallbackLabelLayout = "2006-01-02 15:04"
)

// calendarTicks places labeled major ticks on month boundaries and unlabeled
// minor ticks on day boundaries. Axis values are Unix seconds.
type calendarTicks struct {
	loc *time.Location
	// maxMinor caps the number of day ticks; longer ranges get none.
	maxMinor int
}

func (t calendarTicks) location() *time.Location {
	if t.loc == nil {
		return time.Local
	}
	return t.loc
}

// Ticks implements plot.Ticker.
func (t calendarTicks) Ticks(min, max float64) []plot.Tick {
	loc := t.location()
	start := time.Unix(int64(math.Ceil(min)), 0).In(loc)
	end := time.Unix(int64(math.Floor(max)), 0).In(loc)
	if end.Before(start) {
		return nil
	}

	var ticks []plot.Tick
	month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, loc)
	if month.Before(start) {
		month = month.AddDate(0, 1, 0)
	}
	for ; !month.After(end); month = month.AddDate(0, 1, 0) {
		ticks = append(ticks, plot.Tick{Value: float64(month.Unix()), Label: month.Format(monthLabelLayout)})
	}

	if t.maxMinor <= 0 || end.Sub(start) <= time.Duration(t.maxMinor)*24*time.Hour {
		day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
		if day.Before(start) {
			day = day.AddDate(0, 0, 1)
		}
		for ; !day.After(end); day = day.AddDate(0, 0, 1) {
			if day.Day() == 1 {
				continue
			}
			ticks = append(ticks, plot.Tick{Value: float64(day.Unix())})
		}
	}

	if !hasLabel(ticks) {
		// No month boundary in range: fall back to evenly spaced date-time labels.
		return plot.TimeTicks{Format: fallbackLabelLayout, Time: plot.UnixTimeIn(loc)}.Ticks(min, max)
	}

	sort.Slice(ticks, func(i, j int) bool { return ticks[i].Value < ticks[j].Value })
	return ticks
}

func hasLabel(ticks []plot.Tick) bool {
	for _, t := range ticks {
		if !t.IsMinor() {
			return true
		}
	}
	return false
}
