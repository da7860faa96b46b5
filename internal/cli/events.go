package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/docflow/internal/models"
)

// nowFn is a test seam for the default calendar date.
var nowFn = time.Now

// Events lists the events of one day, today by default.
func (a *App) Events(ctx context.Context) error {
	date, err := a.ask("Date YYYY-MM-DD (empty for today)")
	if err != nil {
		return err
	}
	if date == "" {
		date = nowFn().Format("2006-01-02")
	}

	events, err := a.svc.Calendar.ForDate(ctx, date)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		a.printf("No events on %s\n", date)
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTITLE\tCOLOR\tDESCRIPTION")
	for _, e := range events {
		fmt.Fprintf(w, "%s-%s\t%s\t%s\t%s\n", e.StartTime, e.EndTime, e.Title, e.Color, e.Description)
	}
	return w.Flush()
}

func (a *App) AddEvent(ctx context.Context) error {
	s, err := a.session()
	if err != nil {
		return err
	}

	var e models.CalendarEvent
	if e.Title, err = a.ask("Title"); err != nil {
		return err
	}
	if e.Description, err = getMultiline(a.reader, "Description", a.out); err != nil {
		return err
	}
	if e.Date, err = a.ask("Date YYYY-MM-DD (empty for today)"); err != nil {
		return err
	}
	if e.Date == "" {
		e.Date = nowFn().Format("2006-01-02")
	}
	if e.StartTime, err = a.ask("Start HH:MM"); err != nil {
		return err
	}
	if e.EndTime, err = a.ask("End HH:MM"); err != nil {
		return err
	}
	if e.Color, err = a.ask("Color #RRGGBB (empty for " + models.DefaultEventColor + ")"); err != nil {
		return err
	}

	created, err := a.svc.Calendar.Create(ctx, s, e)
	if err != nil {
		return err
	}

	a.printf("Event %d added on %s\n", created.ID, created.Date)
	return nil
}
