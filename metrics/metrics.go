// Package metrics exposes object pool state to Prometheus.
//
// Instrument attaches to any pool that reports its size and publishes size
// changes, which includes every trimmable pool:
//
//	p, _ := pool.NewConcurrentQueue(newConn)
//	inst, err := metrics.Instrument(prometheus.DefaultRegisterer, "conns", p)
//	if err != nil {
//	    return err
//	}
//	defer inst.Close()
//
// # Exported Series
//
// All series carry a constant "pool" label with the name given to Instrument:
//   - objectpool_items: items currently retained (gauge)
//   - objectpool_capacity: maximum retained items, 0 once closed (gauge)
//   - objectpool_received_total: items accepted by the pool (counter)
//   - objectpool_released_total: release notifications, including trims (counter)
package metrics

import (
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every series name.
const Namespace = "objectpool"

var (
	// ErrNilRegisterer is returned when Instrument is given no registerer.
	ErrNilRegisterer = errors.New("metrics: nil registerer")

	// ErrEmptyName is returned when Instrument is given an empty pool name.
	ErrEmptyName = errors.New("metrics: empty pool name")
)

// Observable is a pool that reports its size and publishes size changes.
type Observable interface {
	Count() int
	Capacity() int
	OnReceived(fn func(size int)) (unsubscribe func())
	OnReleased(fn func(size int)) (unsubscribe func())
}

// Instrumentation is the set of collectors registered for one pool.
type Instrumentation struct {
	reg        prometheus.Registerer
	collectors []prometheus.Collector
	received   prometheus.Counter
	released   prometheus.Counter

	once   sync.Once
	unsubs []func()
}

// Instrument registers the pool's collectors with reg and subscribes to its
// events. When any registration fails the collectors already registered are
// removed again and the error is returned.
func Instrument(reg prometheus.Registerer, name string, p Observable) (*Instrumentation, error) {
	if reg == nil {
		return nil, ErrNilRegisterer
	}
	if name == "" {
		return nil, ErrEmptyName
	}

	labels := prometheus.Labels{"pool": name}
	in := &Instrumentation{
		reg: reg,
		received: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   Namespace,
			Name:        "received_total",
			Help:        "Total number of items accepted by the pool.",
			ConstLabels: labels,
		}),
		released: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   Namespace,
			Name:        "released_total",
			Help:        "Total number of release notifications, one per taken item plus one per trim.",
			ConstLabels: labels,
		}),
	}

	items := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   Namespace,
		Name:        "items",
		Help:        "Number of items currently retained by the pool.",
		ConstLabels: labels,
	}, func() float64 { return float64(p.Count()) })

	capacity := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   Namespace,
		Name:        "capacity",
		Help:        "Maximum number of items the pool retains.",
		ConstLabels: labels,
	}, func() float64 { return float64(p.Capacity()) })

	for _, c := range []prometheus.Collector{items, capacity, in.received, in.released} {
		if err := reg.Register(c); err != nil {
			in.unregister()
			return nil, fmt.Errorf("metrics: registering pool %q: %w", name, err)
		}
		in.collectors = append(in.collectors, c)
	}

	in.unsubs = []func(){
		p.OnReceived(func(int) { in.received.Inc() }),
		p.OnReleased(func(int) { in.released.Inc() }),
	}
	return in, nil
}

// Close unsubscribes from the pool and unregisters every collector.
// It is safe to call more than once.
func (in *Instrumentation) Close() {
	in.once.Do(func() {
		for _, unsub := range in.unsubs {
			unsub()
		}
		in.unregister()
	})
}

func (in *Instrumentation) unregister() {
	for _, c := range in.collectors {
		in.reg.Unregister(c)
	}
	in.collectors = nil
}
