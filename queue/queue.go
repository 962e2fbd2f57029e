// Package queue forwards validated reports to the downstream processing
// pipeline over MQTT.
package queue

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"detector-go/common"
)

// Publisher is the at-least-once publish API report ingestion depends on.
type Publisher interface {
	Publish(ctx context.Context, payload []byte) error
}

const (
	connectTimeout = 30 * time.Second
	publishTimeout = 10 * time.Second
)

type MQTTPublisher struct {
	client mqtt.Client
	topic  string
}

// NewMQTTPublisher connects to the broker configured in config.json and
// returns a publisher bound to its report topic.
func NewMQTTPublisher(cfg *common.ConfigQueue) (*MQTTPublisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("queue configuration missing, check config.json")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		zap.S().Warnw("queue connection lost", "broker", cfg.Broker, "error", err)
	})

	client := mqtt.NewClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("queue connect timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("queue connect: %w", err)
	}

	return &MQTTPublisher{client: client, topic: cfg.Topic}, nil
}

// Publish sends one message at QoS 1. The broker owns redelivery; a failure
// here must fail the request that produced the message.
func (p *MQTTPublisher) Publish(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !p.client.IsConnected() {
		return fmt.Errorf("not connected to queue broker")
	}

	token := p.client.Publish(p.topic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("queue publish timeout")
	}
	return token.Error()
}

func (p *MQTTPublisher) Disconnect() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
