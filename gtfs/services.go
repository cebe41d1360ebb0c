package gtfs

import (
	"log"
	"time"
)

// UsefulServiceIDs returns the services running on at least one day of the
// window [today, today+lookaheadDays]. When nothing runs in the window (a
// feed published ahead of its start date) the window is moved to the first
// service day after today. A nil result means no service could be placed in
// time and callers keep every service.
func UsefulServiceIDs(feed *Feed, today time.Time, lookaheadDays int) map[string]struct{} {
	if lookaheadDays < 0 {
		lookaheadDays = 0
	}
	cal := newServiceCalendar(feed)
	start := truncateDay(today)

	if ids := cal.activeBetween(start, start.AddDate(0, 0, lookaheadDays)); len(ids) > 0 {
		return ids
	}
	next, ok := cal.firstDayAfter(start)
	if !ok {
		log.Printf("gtfs: no service day on or after %s, keeping all services", start.Format(dateLayout))
		return nil
	}
	log.Printf("gtfs: no service in the current window, using the period starting %s", next.Format(dateLayout))
	return cal.activeBetween(next, next.AddDate(0, 0, lookaheadDays))
}

type serviceCalendar struct {
	calendars []parsedCalendar
	added     map[string][]time.Time
	removed   map[string]map[string]struct{} // service -> YYYYMMDD
}

type parsedCalendar struct {
	serviceID  string
	start, end time.Time
	weekdays   [7]bool
}

func newServiceCalendar(feed *Feed) *serviceCalendar {
	sc := &serviceCalendar{
		added:   map[string][]time.Time{},
		removed: map[string]map[string]struct{}{},
	}
	for _, c := range feed.Calendars {
		start, err1 := time.Parse(dateLayout, c.StartDate)
		end, err2 := time.Parse(dateLayout, c.EndDate)
		if err1 != nil || err2 != nil {
			log.Printf("gtfs: skipping calendar %s with bad dates %q-%q", c.ServiceID, c.StartDate, c.EndDate)
			continue
		}
		sc.calendars = append(sc.calendars, parsedCalendar{serviceID: c.ServiceID, start: start, end: end, weekdays: c.Weekdays})
	}
	for _, d := range feed.CalendarDates {
		if !d.Added {
			if sc.removed[d.ServiceID] == nil {
				sc.removed[d.ServiceID] = map[string]struct{}{}
			}
			sc.removed[d.ServiceID][d.Date] = struct{}{}
			continue
		}
		day, err := time.Parse(dateLayout, d.Date)
		if err != nil {
			log.Printf("gtfs: skipping calendar date %s with bad date %q", d.ServiceID, d.Date)
			continue
		}
		sc.added[d.ServiceID] = append(sc.added[d.ServiceID], day)
	}
	return sc
}

func (sc *serviceCalendar) runs(c parsedCalendar, day time.Time) bool {
	if day.Before(c.start) || day.After(c.end) {
		return false
	}
	// time.Weekday starts on Sunday, Weekdays on Monday
	if !c.weekdays[(int(day.Weekday())+6)%7] {
		return false
	}
	_, removed := sc.removed[c.serviceID][day.Format(dateLayout)]
	return !removed
}

func (sc *serviceCalendar) activeBetween(from, to time.Time) map[string]struct{} {
	ids := map[string]struct{}{}
	for _, c := range sc.calendars {
		if c.end.Before(from) || c.start.After(to) {
			continue
		}
		for day := maxTime(from, c.start); !day.After(to) && !day.After(c.end); day = day.AddDate(0, 0, 1) {
			if sc.runs(c, day) {
				ids[c.serviceID] = struct{}{}
				break
			}
		}
	}
	for id, days := range sc.added {
		for _, day := range days {
			if !day.Before(from) && !day.After(to) {
				ids[id] = struct{}{}
				break
			}
		}
	}
	return ids
}

func (sc *serviceCalendar) firstDayAfter(day time.Time) (time.Time, bool) {
	var (
		best  time.Time
		found bool
	)
	consider := func(t time.Time) {
		if t.After(day) && (!found || t.Before(best)) {
			best, found = t, true
		}
	}
	for _, c := range sc.calendars {
		from := maxTime(c.start, day.AddDate(0, 0, 1))
		for i := 0; i < 366 && !from.After(c.end); i, from = i+1, from.AddDate(0, 0, 1) {
			if sc.runs(c, from) {
				consider(from)
				break
			}
		}
	}
	for _, days := range sc.added {
		for _, d := range days {
			consider(d)
		}
	}
	return best, found
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
