package stream

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/striderun/strider/common"
)

// ScanMeter logs periodic throughput stats for a point-scanning pipeline:
// points read, points per second, bytes per second.
type ScanMeter struct {
	label      time.Time // any value, eg point.Time
	interval   time.Duration
	started    time.Time
	ticker     *time.Ticker
	nn         atomic.Uint64
	reg        metrics.Registry
	count      metrics.Counter
	size       metrics.Counter
	countMeter metrics.Meter
	sizeMeter  metrics.Meter
}

func NewScanMeter(interval time.Duration) *ScanMeter {
	// Enable metrics package.
	// Won't work without this global setting.
	metrics.Enabled = true

	reg := metrics.NewRegistry()
	sm := &ScanMeter{
		reg:        reg,
		interval:   interval,
		started:    time.Now(),
		nn:         atomic.Uint64{},
		count:      metrics.NewCounter(),
		size:       metrics.NewCounter(),
		countMeter: metrics.NewMeter(),
		sizeMeter:  metrics.NewMeter(),
	}

	if err := reg.Register("point.count", sm.count); err != nil {
		panic(err)
	}
	if err := reg.Register("size.count", sm.size); err != nil {
		panic(err)
	}
	if err := reg.Register("point.meter", sm.countMeter); err != nil {
		panic(err)
	}
	if err := reg.Register("size.meter", sm.sizeMeter); err != nil {
		panic(err)
	}
	sm.nn.Store(0)
	go sm.run()
	return sm
}

// Mark records one scanned point of n bytes, labeled with its timestamp.
func (sm *ScanMeter) Mark(label time.Time, n int) {
	sm.label = label
	sm.nn.Add(1)
	sm.count.Inc(1)
	sm.size.Inc(int64(n))
	sm.countMeter.Mark(1)
	sm.sizeMeter.Mark(int64(n))
}

func (sm *ScanMeter) run() {
	sm.ticker = time.NewTicker(sm.interval)
	for range sm.ticker.C {
		sm.log()
	}
}

func (sm *ScanMeter) log() {
	countSnap := sm.countMeter.Snapshot()
	sizeSnap := sm.sizeMeter.Snapshot()

	slog.Info("Read points", "n", humanize.Comma(countSnap.Count()),
		"read.last", sm.label.Format(time.DateTime),
		"pps", common.DecimalToFixed(countSnap.Rate1(), 0),
		"bps", humanize.Bytes(uint64(sizeSnap.Rate1())),
		"total.bytes", humanize.Bytes(uint64(sizeSnap.Count())),
		"running", time.Since(sm.started).Round(time.Second))
}

func (sm *ScanMeter) Stop() {
	if sm == nil || sm.ticker == nil {
		return
	}
	sm.ticker.Stop()
	sm.countMeter.Stop()
	sm.sizeMeter.Stop()
}
