package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Logger logs one entry per dispatched action. The from and to fields
// come from the transition itself, not from later reads of the store.
func Logger(log logrus.FieldLogger) Middleware {
	return func(_ *Store, next DispatchFunc) DispatchFunc {
		return func(a Action) Transition {
			t := next(a)
			entry := log.WithFields(logrus.Fields{
				"action": kindOf(a),
				"layer":  layerOf(a),
			})
			if !t.Applied {
				entry.Debug("dispatch dropped")
				return t
			}
			entry.WithFields(logrus.Fields{
				"applied": kindOf(t.Action),
				"from":    t.From.ActiveLayer,
				"to":      t.To.ActiveLayer,
			}).Debug("dispatch")
			return t
		}
	}
}

// Metrics counts applied actions by kind, and the dispatches that
// changed the active layer. Picks are counted as the switch or toggle
// they resolved to. Collectors are registered on reg.
func Metrics(reg prometheus.Registerer) Middleware {
	dispatched := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "layers_dispatch_total",
		Help: "Actions applied by the layer store, by kind.",
	}, []string{"action"})
	changes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "layers_active_changes_total",
		Help: "Dispatches that changed the active layer.",
	})
	reg.MustRegister(dispatched, changes)

	return func(_ *Store, next DispatchFunc) DispatchFunc {
		return func(a Action) Transition {
			t := next(a)
			if !t.Applied {
				return t
			}
			dispatched.WithLabelValues(kindOf(t.Action)).Inc()
			if t.From.ActiveLayer != t.To.ActiveLayer {
				changes.Inc()
			}
			return t
		}
	}
}

func kindOf(a Action) string {
	if a == nil {
		return "none"
	}
	return a.Kind()
}

func layerOf(a Action) string {
	if a == nil {
		return ""
	}
	return a.Layer()
}
