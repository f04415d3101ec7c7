package main

import (
	"go-swarm/handlers"
	"go-swarm/hardware"
)

const defaultConfigPath = "config.yaml"

// Config is the coordinator's deployment configuration, loaded once
// at startup.
type Config struct {
	Port       int             `yaml:"port" json:"port"`
	LogFile    string          `yaml:"log_file" json:"log_file"`
	SocketAddr string          `yaml:"socket_addr" json:"socket_addr"`
	Hardware   hardware.Config `yaml:"hardware" json:"hardware"`
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = handlers.Port
	}
	if c.LogFile == "" {
		c.LogFile = "sensor_readings.txt"
	}
	if c.SocketAddr == "" {
		c.SocketAddr = ":9090"
	}
}
