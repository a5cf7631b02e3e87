package reminder

import (
	"fmt"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// TestReminderSetUniquePerTask verifies that under any sequence of
// add/remove/rebuild operations the engine holds at most one reminder
// per task id, and that its contents match a naive model.
func TestReminderSetUniquePerTask(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := NewEngine(time.Second, false)
		model := make(map[string]time.Time)
		now := time.Now()

		ids := []string{"a", "b", "c", "d"}
		n := rapid.IntRange(1, 40).Draw(rt, "num_ops")

		for i := 0; i < n; i++ {
			id := rapid.SampledFrom(ids).Draw(rt, "id")

			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0: // add with a future time
				at := now.Add(time.Duration(rapid.IntRange(1, 10000).Draw(rt, "minutes")) * time.Minute)
				e.AddReminder(futureRef(id, "task "+id, at))
				model[id] = at
			case 1: // add with a past time is a no-op
				at := now.Add(-time.Duration(rapid.IntRange(1, 10000).Draw(rt, "past_minutes")) * time.Minute)
				e.AddReminder(futureRef(id, "task "+id, at))
			case 2: // remove
				e.RemoveReminder(id)
				delete(model, id)
			case 3: // rebuild from the model's surviving tasks
				var tasks []TaskRef
				for mid, at := range model {
					tasks = append(tasks, futureRef(mid, "task "+mid, at))
				}
				e.UpdateReminders(tasks)
			}
		}

		st := e.Status()
		if st.Total != len(model) {
			rt.Fatalf("engine holds %d reminders, model holds %d", st.Total, len(model))
		}
		if st.Active != len(model) {
			rt.Fatalf("%d active reminders, want %d (none were notified)", st.Active, len(model))
		}

		for _, r := range e.UpcomingReminders(200 * 24 * time.Hour) {
			want, ok := model[r.TaskID]
			if !ok {
				rt.Fatalf("engine holds unexpected reminder for %s", r.TaskID)
			}
			if !r.RemindAt.Equal(want) {
				rt.Fatalf("reminder for %s at %s, want %s (replace semantics)", r.TaskID, r.RemindAt, want)
			}
		}
	})
}

// TestParseReminderTimeNeverPastWithoutDate verifies the rollover rule:
// with no explicit date the result is always strictly in the future.
func TestParseReminderTimeNeverPastWithoutDate(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		hour := rapid.IntRange(0, 23).Draw(rt, "hour")
		minute := rapid.IntRange(0, 59).Draw(rt, "minute")
		now := refNow.Add(time.Duration(rapid.IntRange(0, 60*24).Draw(rt, "offset_min")) * time.Minute)

		in := timeString(hour, minute)
		got, ok := parseReminderTimeAt(in, "", now)
		if !ok {
			rt.Fatalf("failed to parse %q", in)
		}
		if !got.After(now) {
			rt.Fatalf("parse(%q) at %s produced non-future %s", in, now, got)
		}
		if got.Hour() != hour || got.Minute() != minute || got.Second() != 0 {
			rt.Fatalf("parse(%q) = %s, wrong wall-clock time", in, got)
		}
		if got.Sub(now) > 24*time.Hour {
			rt.Fatalf("rollover moved %q more than one day out: %s", in, got)
		}
	})
}

func timeString(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
