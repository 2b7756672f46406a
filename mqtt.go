package main

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/afpineda/NuS-NimBLE-Serial/commands"
)

// MQTTBridge executes command lines published on an MQTT topic and publishes
// their replies on another one.
type MQTTBridge struct {
	Logger     *slog.Logger
	Processor  *commands.Processor
	Topic      string
	ReplyTopic string
}

// Execute runs the command line carried by payload and returns its replies.
// A trailing line terminator is ignored.
func (b *MQTTBridge) Execute(payload []byte) []byte {
	line := bytes.TrimRight(payload, "\r\n")
	var out bytes.Buffer
	o := b.Processor.Execute(&out, line)
	if err := o.Err(); err != nil {
		b.Logger.Debug("Command rejected", "line", string(line), "error", err)
	}
	return out.Bytes()
}

func (b *MQTTBridge) onMessage(c mqtt.Client, m mqtt.Message) {
	reply := b.Execute(m.Payload())
	if b.ReplyTopic == "" || len(reply) == 0 {
		return
	}
	if token := c.Publish(b.ReplyTopic, 0, false, reply); token.WaitTimeout(5*time.Second) && token.Error() != nil {
		b.Logger.Error("Failed to publish reply", "error", token.Error(), "topic", b.ReplyTopic)
	}
}

// Start connects to the broker and subscribes to the command topic. The
// client disconnects once ctx is cancelled.
func (b *MQTTBridge) Start(ctx context.Context, config *Config) mqtt.Client {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.MQTTBroker)
	opts.SetClientID(config.MQTTClientID)
	if config.MQTTUser != "" {
		opts.SetUsername(config.MQTTUser)
		opts.SetPassword(config.MQTTPassword)
	}
	opts.SetOrderMatters(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		b.Logger.Warn("MQTT connection lost", "error", err)
	})
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		b.Logger.Info("MQTT connected", "topic", b.Topic)
		if token := c.Subscribe(b.Topic, 0, b.onMessage); token.Wait() && token.Error() != nil {
			b.Logger.Error("MQTT subscribe failed", "error", token.Error(), "topic", b.Topic)
		}
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		b.Logger.Error("MQTT connect failed", "error", token.Error(), "broker", config.MQTTBroker)
	}
	go func() {
		<-ctx.Done()
		client.Disconnect(500)
	}()
	return client
}
