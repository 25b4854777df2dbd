// Package config loads match settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/headsup/internal/game"
)

// Config represents the complete configuration file
type Config struct {
	Match  *MatchSettings  `hcl:"match,block"`
	Human  *HumanSettings  `hcl:"human,block"`
	Bot    *BotSettings    `hcl:"bot,block"`
	Server *ServerSettings `hcl:"server,block"`
}

// MatchSettings holds the table stakes
type MatchSettings struct {
	StartingChips int   `hcl:"starting_chips,optional"`
	SmallBlind    int   `hcl:"small_blind,optional"`
	MaxHands      int   `hcl:"max_hands,optional"`
	Seed          int64 `hcl:"seed,optional"`
}

// HumanSettings configures the human seat
type HumanSettings struct {
	Name string `hcl:"name,optional"`
	// Timeout in seconds for remote players; 0 waits forever.
	Timeout int `hcl:"timeout,optional"`
}

// BotSettings configures the policy seat
type BotSettings struct {
	Name         string `hcl:"name,optional"`
	Style        string `hcl:"style,optional"`
	StrategyFile string `hcl:"strategy_file,optional"`
}

// ServerSettings configures the websocket server
type ServerSettings struct {
	Address string `hcl:"address,optional"`
}

// Defaults
const (
	DefaultStartingChips = 5000
	DefaultSmallBlind    = 250
	DefaultHumanName     = "Billy"
	DefaultBotName       = "Bot"
	DefaultStyle         = string(game.Optimal)
	DefaultAddress       = "localhost:8080"
)

// Default returns the configuration used when no file is present
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var c Config
	diags = gohcl.DecodeBody(file.Body, nil, &c)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Match == nil {
		c.Match = &MatchSettings{}
	}
	if c.Human == nil {
		c.Human = &HumanSettings{}
	}
	if c.Bot == nil {
		c.Bot = &BotSettings{}
	}
	if c.Server == nil {
		c.Server = &ServerSettings{}
	}

	if c.Match.StartingChips == 0 {
		c.Match.StartingChips = DefaultStartingChips
	}
	if c.Match.SmallBlind == 0 {
		c.Match.SmallBlind = DefaultSmallBlind
	}
	if c.Human.Name == "" {
		c.Human.Name = DefaultHumanName
	}
	if c.Bot.Name == "" {
		c.Bot.Name = DefaultBotName
	}
	if c.Bot.Style == "" {
		c.Bot.Style = DefaultStyle
	}
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
}

// BigBlind is always twice the small blind
func (c *Config) BigBlind() int {
	return 2 * c.Match.SmallBlind
}

// HumanTimeout returns the remote decision timeout, zero for none
func (c *Config) HumanTimeout() time.Duration {
	return time.Duration(c.Human.Timeout) * time.Second
}

// Style returns the parsed bot style
func (c *Config) Style() (game.Style, error) {
	return game.ParseStyle(c.Bot.Style)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Match.StartingChips <= 0 {
		return fmt.Errorf("starting_chips must be positive, got %d", c.Match.StartingChips)
	}
	if c.Match.SmallBlind <= 0 {
		return fmt.Errorf("small_blind must be positive, got %d", c.Match.SmallBlind)
	}
	if c.Match.StartingChips < c.BigBlind() {
		return fmt.Errorf("starting_chips %d is less than the big blind %d", c.Match.StartingChips, c.BigBlind())
	}
	if c.Match.MaxHands < 0 {
		return fmt.Errorf("max_hands cannot be negative, got %d", c.Match.MaxHands)
	}
	if c.Human.Timeout < 0 {
		return fmt.Errorf("human timeout cannot be negative, got %d", c.Human.Timeout)
	}
	if c.Human.Name == c.Bot.Name {
		return fmt.Errorf("human and bot need different names, both are %q", c.Human.Name)
	}
	if _, err := c.Style(); err != nil {
		return err
	}
	if c.Bot.StrategyFile != "" {
		if _, err := os.Stat(c.Bot.StrategyFile); err != nil {
			return fmt.Errorf("strategy_file: %w", err)
		}
	}
	return nil
}
