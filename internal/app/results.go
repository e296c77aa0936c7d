package app

import (
	"fmt"
	"io"
	"time"

	"go.trai.ch/ptask/internal/core/domain"
	"go.trai.ch/zerr"
)

// Results prints stored task results. Empty names prints every stored result.
// With withOutput set, each result is followed by its stored output.
func (a *App) Results(w io.Writer, names []string, withOutput bool) error {
	results, err := a.lookupResults(names)
	if err != nil {
		return err
	}

	for _, res := range results {
		_, _ = fmt.Fprintf(w, "%-24s result=%d", res.TaskName, res.ResultCode)
		if res.Stopped {
			_, _ = io.WriteString(w, " stopped")
		}
		if !res.StartedAt.IsZero() && !res.FinishedAt.IsZero() {
			_, _ = fmt.Fprintf(w, " duration=%s", res.FinishedAt.Sub(res.StartedAt).Round(time.Millisecond))
		}
		_, _ = fmt.Fprintf(w, " output=%dB\n", res.OutputSize)

		if !withOutput || res.OutputDigest == "" {
			continue
		}
		output, err := a.store.Output(res.OutputDigest)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read stored output"), "task_name", res.TaskName)
		}
		_, _ = w.Write(output)
		if len(output) > 0 && output[len(output)-1] != '\n' {
			_, _ = io.WriteString(w, "\n")
		}
	}
	return nil
}

func (a *App) lookupResults(names []string) ([]domain.TaskResult, error) {
	if len(names) == 0 {
		results, err := a.store.List()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to list results")
		}
		return results, nil
	}

	results := make([]domain.TaskResult, 0, len(names))
	for _, name := range names {
		res, err := a.store.Get(name)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read result"), "task_name", name)
		}
		if res == nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrTaskNotFound, "no stored result"), "task_name", name)
		}
		results = append(results, *res)
	}
	return results, nil
}
