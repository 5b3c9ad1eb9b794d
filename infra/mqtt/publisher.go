package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kochimetro/induction/core/planner"
	"github.com/kochimetro/induction/infra/logger"
)

// Config defines the connection parameters for the plan broadcast client.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "induction"
	}
	if c.Topic == "" {
		c.Topic = "depot/induction/plan"
	}
}

// Validate checks mandatory fields when broadcasting is enabled.
func (c Config) Validate() error {
	if c.Enabled && c.Broker == "" {
		return fmt.Errorf("mqtt broker is required when enabled")
	}
	return nil
}

// PlanPublisher broadcasts recomputed plans to depot display consumers.
type PlanPublisher interface {
	PublishPlan(plan *planner.InductionPlan) error
	Close() error
}

// PahoPublisher implements PlanPublisher using Eclipse Paho. Plans are
// published retained so late subscribers see the current plan immediately.
type PahoPublisher struct {
	cli   paho.Client
	topic string
	qos   byte
	log   logger.Logger
}

// NewPahoPublisher connects to the MQTT broker.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.New("mqtt-publisher")
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnect = func(paho.Client) { log.Infof("MQTT connected to %s", cfg.Broker) }
	opts.OnConnectionLost = func(_ paho.Client, err error) { log.Warnf("MQTT connection lost: %v", err) }

	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &PahoPublisher{cli: cli, topic: cfg.Topic, qos: cfg.QoS, log: log}, nil
}

// PublishPlan serializes the plan as JSON and publishes it to the plan topic.
func (p *PahoPublisher) PublishPlan(plan *planner.InductionPlan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	token := p.cli.Publish(p.topic, p.qos, true, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish plan: %w", token.Error())
	}
	p.log.Debugw("plan published", map[string]any{"plan_id": plan.ID, "topic": p.topic})
	return nil
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() error {
	p.cli.Disconnect(250)
	return nil
}
