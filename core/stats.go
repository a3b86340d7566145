package core

// StatsSink is the statistics interface the engine reports through:
// the core never formats or prints a report itself, it only
// accumulates counters via this interface.
type StatsSink interface {
	OnGenerated()
	OnDelivered(hops int, channelTime float64)
	OnQueued()
	OnDequeued()
	OnDropped()
	OnChannelWork(dt float64)
}

// Report is the final summary a caller can build once simulated time
// has advanced past MaxST. It is a plain value computed from a
// StatsSink's accumulated counters plus the engine's final simulated
// time and channel count, not something the core's StatsSink interface
// needs to expose — callers typically keep their own counters and call
// NewReport themselves (see sim.Counters).
type Report struct {
	SimTime int64

	Generated int64
	Delivered int64
	Queued    int64 // current blocked-queue depth summed across nodes
	Dropped   int64

	SumHops          float64
	SumAvgChanTime   float64
	ChanWorkTime     float64
	TotalChannels    int

	Throughput    float64 // delivered / simTime
	Load          float64 // chan work time / (simTime * total channels)
	AvgHops       float64 // sum hops / delivered
	AvgChanTime   float64 // sum avg chan time / delivered
	DropRatio     float64 // dropped / delivered
	DropMeaningful bool    // false when delivered == 0 (§9: report "n/a")
}

// NewReport computes derived metrics from the raw counters, guarding
// the delivered == 0 divisions that would otherwise be a divide-by-zero.
func NewReport(simTime int64, totalChannels int, generated, delivered, queued, dropped int64,
	sumHops, sumAvgChanTime, chanWorkTime float64) Report {
	r := Report{
		SimTime:       simTime,
		Generated:     generated,
		Delivered:     delivered,
		Queued:        queued,
		Dropped:       dropped,
		SumHops:       sumHops,
		SumAvgChanTime: sumAvgChanTime,
		ChanWorkTime:  chanWorkTime,
		TotalChannels: totalChannels,
	}
	if simTime > 0 {
		r.Throughput = float64(delivered) / float64(simTime)
		r.Load = chanWorkTime / (float64(simTime) * float64(totalChannels))
	}
	if delivered > 0 {
		r.AvgHops = sumHops / float64(delivered)
		r.AvgChanTime = sumAvgChanTime / float64(delivered)
		r.DropRatio = float64(dropped) / float64(delivered)
		r.DropMeaningful = true
	}
	return r
}
