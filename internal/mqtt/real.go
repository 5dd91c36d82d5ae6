package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/sweeney/pippo/internal/logic"
)

const (
	backlogSize    = 100
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// RealPublisher publishes to a broker. While the connection is down messages
// are queued and replayed, oldest first, when it comes back.
type RealPublisher struct {
	client paho.Client

	mu      sync.Mutex
	pending *backlog
}

// NewRealPublisher starts connecting to broker. If the broker is not reachable
// within the connect timeout the publisher is still returned and keeps
// retrying in the background.
func NewRealPublisher(broker, clientID string) (*RealPublisher, error) {
	p := &RealPublisher{pending: newBacklog(backlogSize)}

	will, err := FormatSystemPayload(SystemEvent{Timestamp: time.Now(), Event: "OFFLINE"})
	if err != nil {
		return nil, fmt.Errorf("format will: %w", err)
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5*time.Second).
		SetWill(TopicSystem, string(will), 1, true).
		SetOnConnectHandler(p.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
		})

	p.client = paho.NewClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		log.Printf("mqtt: %s not reachable yet, queueing until connected", broker)
		return p, nil
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	return p, nil
}

func (p *RealPublisher) onConnect(c paho.Client) {
	p.mu.Lock()
	msgs := p.pending.take()
	p.mu.Unlock()

	if len(msgs) > 0 {
		log.Printf("mqtt: connected, replaying %d queued messages", len(msgs))
	}
	for _, m := range msgs {
		token := c.Publish(m.topic, m.qos, m.retained, m.payload)
		if !token.WaitTimeout(publishTimeout) {
			log.Printf("mqtt: replay to %s timed out", m.topic)
			continue
		}
		if err := token.Error(); err != nil {
			log.Printf("mqtt: replay to %s: %v", m.topic, err)
		}
	}
}

// Publish sends a navigation event at QoS 0 without waiting for the broker,
// so it never stalls the polling loop.
func (p *RealPublisher) Publish(event logic.Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	return p.publish(message{topic: Topic, payload: payload}, false)
}

// PublishSystem sends a lifecycle event at QoS 1 and waits for the broker.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	return p.publish(message{topic: TopicSystem, payload: payload, qos: 1, retained: event.Retained}, true)
}

func (p *RealPublisher) publish(m message, wait bool) error {
	if !p.client.IsConnectionOpen() {
		p.mu.Lock()
		p.pending.add(m)
		p.mu.Unlock()
		return nil
	}

	token := p.client.Publish(m.topic, m.qos, m.retained, m.payload)
	if !wait {
		go func() {
			if token.WaitTimeout(publishTimeout) && token.Error() != nil {
				log.Printf("mqtt: publish to %s: %v", m.topic, token.Error())
			}
		}()
		return nil
	}
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s: timeout", m.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", m.topic, err)
	}
	return nil
}

// IsConnected reports whether the broker connection is up.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnectionOpen()
}

// Queued returns the number of messages waiting for a connection.
func (p *RealPublisher) Queued() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending.len()
}

// Close disconnects, allowing one second for in-flight messages.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}
