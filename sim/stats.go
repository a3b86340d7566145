package sim

import "torusim/core"

// Counters is the default core.StatsSink implementation: a flat set of
// running totals accumulated in memory.
type Counters struct {
	generated int64
	delivered int64
	queued    int64 // live blocked-queue depth, incremented/decremented in step
	dropped   int64

	sumHops        float64
	sumAvgChanTime float64
	chanWorkTime   float64
}

func NewCounters() *Counters {
	return &Counters{}
}

func (c *Counters) OnGenerated() { c.generated++ }

func (c *Counters) OnDelivered(hops int, channelTime float64) {
	c.delivered++
	c.sumHops += float64(hops)
	c.sumAvgChanTime += channelTime
}

func (c *Counters) OnQueued()   { c.queued++ }
func (c *Counters) OnDequeued() { c.queued-- }
func (c *Counters) OnDropped()  { c.dropped++ }

func (c *Counters) OnChannelWork(dt float64) { c.chanWorkTime += dt }

// Report builds a core.Report from the accumulated counters plus the
// engine's final simulated time and total channel count.
func (c *Counters) Report(simTime int64, totalChannels int) core.Report {
	return core.NewReport(simTime, totalChannels,
		c.generated, c.delivered, c.queued, c.dropped,
		c.sumHops, c.sumAvgChanTime, c.chanWorkTime)
}
