package server

import "listkit/core/reorder"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// ReorderEnabled allows interactive row reordering on boards.
	ReorderEnabled bool `mapstructure:"reorder_enabled" default:"true"`
	// AllowCrossGroup permits reorder drops into a different section.
	AllowCrossGroup bool `mapstructure:"allow_cross_group" default:"false"`
}

// ReorderPolicy returns the reorder policy new boards are created with.
func (c Config) ReorderPolicy() reorder.Policy {
	return reorder.Policy{
		Enabled:           c.ReorderEnabled,
		AllowCrossSection: c.AllowCrossGroup,
	}
}
