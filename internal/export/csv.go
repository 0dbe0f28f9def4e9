// Package export renders derived artifacts from the session log. The
// CSV is a view, never authoritative state.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/focusfoundry/tempo/internal/domain"
	"github.com/focusfoundry/tempo/internal/errors"
	"github.com/focusfoundry/tempo/internal/stats"
)

// SessionsCSV writes one row per session in log order with columns
// date, mode, seconds, minutes, taskTitle. The task title is resolved
// from the given collection; sessions bound to a deleted task get an
// empty title.
func SessionsCSV(w io.Writer, sessions []domain.Session, tasks []domain.Task) error {
	titles := make(map[string]string, len(tasks))
	for _, t := range tasks {
		titles[t.ID] = t.Title
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "mode", "seconds", "minutes", "taskTitle"}); err != nil {
		return errors.Wrap(err, "failed to write csv header")
	}
	for _, s := range sessions {
		row := []string{
			s.Date,
			string(s.Mode),
			strconv.Itoa(s.Seconds),
			strconv.Itoa(stats.RoundMinutes(s.Seconds)),
			titles[s.TaskID],
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "failed to write csv row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush csv")
}
