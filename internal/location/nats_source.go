package location

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"

	"github.com/nats-io/nats.go"
)

const natsBuffer = 256

// NATSSource reads samples published under "<prefix>.<busID>". Each Watch
// holds its own subscription, so the Service's last StopWatching releases it.
type NATSSource struct {
	nc      *nats.Conn
	subject string
}

func NewNATSSource(nc *nats.Conn, prefix string) *NATSSource {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ".")
	return &NATSSource{nc: nc, subject: prefix + ".>"}
}

func decodeSample(data []byte) (Sample, error) {
	var s Sample
	if err := json.Unmarshal(data, &s); err != nil {
		return Sample{}, domain.GeolocationError{Code: domain.GeoPositionUnavailable, Err: fmt.Errorf("decode sample: %w", err)}
	}
	return s, nil
}

func (n *NATSSource) Current(ctx context.Context) (Sample, error) {
	sub, err := n.nc.SubscribeSync(n.subject)
	if err != nil {
		return Sample{}, domain.GeolocationError{Code: domain.GeoPositionUnavailable, Err: err}
	}
	defer sub.Unsubscribe()

	msg, err := sub.NextMsgWithContext(ctx)
	if err != nil {
		return Sample{}, err
	}
	return decodeSample(msg.Data)
}

func (n *NATSSource) Watch(ctx context.Context, onSample func(Sample), onError func(error)) error {
	ch := make(chan *nats.Msg, natsBuffer)
	sub, err := n.nc.ChanSubscribe(n.subject, ch)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", n.subject, err)
	}
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-ch:
			s, err := decodeSample(msg.Data)
			if err != nil {
				onError(err)
				continue
			}
			onSample(s)
		}
	}
}
