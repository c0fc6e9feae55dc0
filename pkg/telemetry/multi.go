package telemetry

import "github.com/vango-dev/teleport/pkg/teleport"

type multi []teleport.Observer

// Multi returns an observer forwarding to each of observers in order.
// Nil entries are skipped.
func Multi(observers ...teleport.Observer) teleport.Observer {
	m := make(multi, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			m = append(m, o)
		}
	}
	if len(m) == 0 {
		return teleport.NopObserver{}
	}
	if len(m) == 1 {
		return m[0]
	}
	return m
}

func (m multi) DeployStarted(info teleport.DeployInfo) func(error) {
	done := make([]func(error), len(m))
	for i, o := range m {
		done[i] = o.DeployStarted(info)
	}
	return func(err error) {
		for i := len(done) - 1; i >= 0; i-- {
			done[i](err)
		}
	}
}

func (m multi) Withdrawn(id string) {
	for _, o := range m {
		o.Withdrawn(id)
	}
}

func (m multi) Redirected(id string, eventType string) {
	for _, o := range m {
		o.Redirected(id, eventType)
	}
}

func (m multi) Rejected(id string, err error) {
	for _, o := range m {
		o.Rejected(id, err)
	}
}
