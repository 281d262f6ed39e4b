package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/location"

	"github.com/nats-io/nats.go"
)

type PublisherMetrics interface {
	NATSPublishedInc()
	NATSPublishErrInc()
	NATSSetConnected(connected bool)
}

// conn is the part of *nats.Conn the publisher uses.
type conn interface {
	Publish(subj string, data []byte) error
	FlushTimeout(timeout time.Duration) error
	Close()
}

const closeFlushTimeout = 2 * time.Second

// NATSPublisher fans reported locations out on "<prefix>.<busID>".
type NATSPublisher struct {
	nc      conn
	prefix  string
	metrics PublisherMetrics
}

func Connect(url string, m PublisherMetrics) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("transitnexus-gateway"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(true)
			}
			log.Printf("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats closed")
		}),
	)
	if err != nil {
		return nil, err
	}
	if m != nil {
		m.NATSSetConnected(true)
	}
	return nc, nil
}

var errNoConn = errors.New("nats connection not configured")

func NewNATSPublisher(nc *nats.Conn, prefix string, m PublisherMetrics) *NATSPublisher {
	p := &NATSPublisher{
		prefix:  strings.TrimSuffix(strings.TrimSpace(prefix), "."),
		metrics: m,
	}
	if nc != nil {
		p.nc = nc
	}
	return p
}

// Close flushes buffered publishes, then closes the connection.
func (p *NATSPublisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.FlushTimeout(closeFlushTimeout); err != nil {
		log.Printf("nats flush on close: %v", err)
	}
	p.nc.Close()
}

// Subject returns the subject a bus publishes on.
func (p *NATSPublisher) Subject(busID string) string {
	return fmt.Sprintf("%s.%s", p.prefix, SubjectToken(busID))
}

func (p *NATSPublisher) Ingest(_ context.Context, s location.Sample) error {
	if p.nc == nil {
		return errNoConn
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	err = p.nc.Publish(p.Subject(s.BusID), b)
	if p.metrics != nil {
		if err != nil {
			p.metrics.NATSPublishErrInc()
		} else {
			p.metrics.NATSPublishedInc()
		}
	}
	return err
}

// SubjectToken makes s safe as a single NATS subject token.
func SubjectToken(s string) string {
	s = strings.TrimSpace(s)
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}
