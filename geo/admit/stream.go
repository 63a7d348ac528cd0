package admit

import (
	"context"
	"log/slog"

	"github.com/striderun/strider/types/trackpoint"
)

// Stream runs a channel of raw updates through the admission gate,
// emitting only accepted points. Typed rejections are logged at debug;
// they are per-update transients, not pipeline failures.
func (f *Filter) Stream(ctx context.Context, in <-chan *trackpoint.TrackPoint) <-chan *trackpoint.TrackPoint {
	out := make(chan *trackpoint.TrackPoint)

	go func() {
		defer close(out)

		for tp := range in {
			ok, err := f.Admit(tp)
			if err != nil {
				slog.Debug("Rejected point", "error", err)
			}
			if !ok {
				continue
			}

			select {
			case <-ctx.Done():
				return
			case out <- tp:
			}
		}
	}()
	return out
}
