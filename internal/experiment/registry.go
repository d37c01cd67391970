package experiment

import (
	"fmt"

	"github.com/san-kum/qmlab/internal/quantum"
)

type Registry struct {
	topics map[string]func() quantum.Topic
	order  []string
}

func NewRegistry() *Registry {
	r := &Registry{topics: make(map[string]func() quantum.Topic)}

	r.Register("debroglie", func() quantum.Topic { return quantum.NewDeBroglie() })
	r.Register("electron", func() quantum.Topic { return quantum.NewElectronWavelength() })
	r.Register("box", func() quantum.Topic { return quantum.NewBox() })
	r.Register("tunnel", func() quantum.Topic { return quantum.NewBarrier() })
	r.Register("uncertainty", func() quantum.Topic { return quantum.NewUncertainty() })
	r.Register("qubit", func() quantum.Topic { return quantum.NewQubit() })
	r.Register("packet", func() quantum.Topic { return quantum.NewPacket() })
	r.Register("wave", func() quantum.Topic { return quantum.NewTravelingWave() })

	return r
}

// Register adds or replaces a topic constructor.
func (r *Registry) Register(name string, fn func() quantum.Topic) {
	if _, ok := r.topics[name]; !ok {
		r.order = append(r.order, name)
	}
	r.topics[name] = fn
}

func (r *Registry) GetTopic(name string) (quantum.Topic, error) {
	fn, ok := r.topics[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", quantum.ErrUnknownTopic, name)
	}
	return fn(), nil
}

// ListTopics returns topic names in registration order.
func (r *Registry) ListTopics() []string {
	return append([]string(nil), r.order...)
}
