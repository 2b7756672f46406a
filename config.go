package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// BindAddress is the address the HTTP bridge listens on (e.g. "0.0.0.0:8080").
	// An empty address disables the bridge.
	BindAddress string `yaml:"bind_address"`
	// SerialPort is the path to the serial port the peer is attached to (e.g. "/dev/ttyUSB0")
	SerialPort string `yaml:"serial_port"`
	// BaudRate is the baud rate of the serial port (e.g. 115200)
	BaudRate int `yaml:"baud_rate"`
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string `yaml:"log_level"`
	// BufferSize is the working buffer size of the command grammars
	BufferSize int `yaml:"buffer_size"`
	// LowerCaseAT accepts the "at" preamble as well as "AT"
	LowerCaseAT bool `yaml:"lowercase_at"`
	// Console enables the interactive console on stdin
	Console bool `yaml:"console"`
	// DeviceName is the initial name reported by AT+NAME?
	DeviceName string `yaml:"device_name"`
	// MQTTBroker is the broker URL of the MQTT bridge (e.g. "tcp://localhost:1883").
	// An empty URL disables the bridge.
	MQTTBroker string `yaml:"mqtt_broker"`
	// MQTTClientID identifies the bridge to the broker
	MQTTClientID string `yaml:"mqtt_client_id"`
	// MQTTTopic carries command lines
	MQTTTopic string `yaml:"mqtt_topic"`
	// MQTTReplyTopic carries the replies to command lines
	MQTTReplyTopic string `yaml:"mqtt_reply_topic"`
	// MQTTUser and MQTTPassword authenticate the bridge, when set
	MQTTUser     string `yaml:"mqtt_user"`
	MQTTPassword string `yaml:"mqtt_password"`
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.BindAddress = "0.0.0.0:8080"
		c.SerialPort = "/dev/ttyUSB0"
		c.BaudRate = 115200
		c.LogLevel = "info"
		c.BufferSize = 64
		c.DeviceName = DefaultDeviceName
		c.MQTTClientID = "nus-cmd"
		c.MQTTTopic = "nus-cmd/command"
		c.MQTTReplyTopic = "nus-cmd/reply"
		return nil
	}
}

// WithFile loads configuration from a YAML file. Keys missing from the file
// keep their current value. An empty path is ignored.
func WithFile(path string) ConfigOption {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(content, c); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if addr, ok := os.LookupEnv("BIND_ADDRESS"); ok {
			c.BindAddress = addr
		}

		if serial := os.Getenv("SERIAL_PORT"); serial != "" {
			c.SerialPort = serial
		}

		if baud := os.Getenv("BAUD_RATE"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.BaudRate = b
			}
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		if size := os.Getenv("BUFFER_SIZE"); size != "" {
			if s, err := strconv.Atoi(size); err == nil {
				c.BufferSize = s
			}
		}

		if lower := os.Getenv("LOWERCASE_AT"); lower != "" {
			if b, err := strconv.ParseBool(lower); err == nil {
				c.LowerCaseAT = b
			}
		}

		if name := os.Getenv("DEVICE_NAME"); name != "" {
			c.DeviceName = name
		}

		if broker := os.Getenv("MQTT_BROKER"); broker != "" {
			c.MQTTBroker = broker
		}

		if id := os.Getenv("MQTT_CLIENT_ID"); id != "" {
			c.MQTTClientID = id
		}

		if topic := os.Getenv("MQTT_TOPIC"); topic != "" {
			c.MQTTTopic = topic
		}

		if topic := os.Getenv("MQTT_REPLY_TOPIC"); topic != "" {
			c.MQTTReplyTopic = topic
		}

		if user := os.Getenv("MQTT_USER"); user != "" {
			c.MQTTUser = user
			c.MQTTPassword = os.Getenv("MQTT_PASSWORD")
		}

		return nil
	}
}

// WithFlags loads configuration from command-line flags
func WithFlags(fSet *flag.FlagSet) ConfigOption {
	return func(c *Config) error {
		fSet.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "bind-address":
				c.BindAddress = f.Value.String()
			case "serial-port":
				c.SerialPort = f.Value.String()
			case "baud-rate":
				if b, err := strconv.Atoi(f.Value.String()); err == nil {
					c.BaudRate = b
				}
			case "log-level":
				c.LogLevel = f.Value.String()
			case "buffer-size":
				if s, err := strconv.Atoi(f.Value.String()); err == nil {
					c.BufferSize = s
				}
			case "lowercase-at":
				if b, err := strconv.ParseBool(f.Value.String()); err == nil {
					c.LowerCaseAT = b
				}
			case "console":
				if b, err := strconv.ParseBool(f.Value.String()); err == nil {
					c.Console = b
				}
			case "device-name":
				c.DeviceName = f.Value.String()
			case "mqtt-broker":
				c.MQTTBroker = f.Value.String()
			case "mqtt-topic":
				c.MQTTTopic = f.Value.String()
			case "mqtt-reply-topic":
				c.MQTTReplyTopic = f.Value.String()
			}
		})
		return nil
	}
}
