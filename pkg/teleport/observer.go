package teleport

// Mode tells a first mount from an update.
type Mode string

const (
	ModeMount  Mode = "mount"
	ModeUpdate Mode = "update"
)

// DeployInfo describes one deploy pass.
type DeployInfo struct {
	ID      string
	Locator string
	Mode    Mode
}

// Observer receives notifications from controllers. Implementations live
// in pkg/telemetry.
type Observer interface {
	// DeployStarted is called before a deploy pass; the returned func is
	// called with its outcome.
	DeployStarted(info DeployInfo) (done func(err error))

	// Withdrawn is called after a deployed subtree was withdrawn.
	Withdrawn(id string)

	// Redirected is called for every redirected event.
	Redirected(id, eventType string)

	// Rejected is called when validation or target resolution fails.
	Rejected(id string, err error)
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) DeployStarted(DeployInfo) func(error) { return func(error) {} }
func (NopObserver) Withdrawn(string)                     {}
func (NopObserver) Redirected(string, string)            {}
func (NopObserver) Rejected(string, error)               {}
