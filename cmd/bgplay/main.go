package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/yourusername/bgmatch/internal/config"
	"github.com/yourusername/bgmatch/internal/met"
	"github.com/yourusername/bgmatch/pkg/autoplay"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `short:"c" type:"path" env:"BGPLAY_CONFIG" help:"HCL config file"`
	LogLevel string `env:"BGPLAY_LOG_LEVEL" help:"Log level (debug|info|warn|error), overrides the config"`

	NoJacoby   bool `help:"Disable the Jacoby rule"`
	NoCrawford bool `help:"Disable the Crawford rule"`
	MaxCube    int  `help:"Highest cube value, overrides the config"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Play    PlayCmd          `cmd:"" help:"Play one automated match and write it as MAT"`
	Sim     SimCmd           `cmd:"" help:"Play many matches and report win rates"`
	Replay  ReplayCmd        `cmd:"" help:"Replay and verify a MAT file"`
	Resume  ResumeCmd        `cmd:"" help:"Finish a saved game from a FIBS board line"`
}

// load reads the config file and applies the global flag overrides. The
// caller validates once its own overrides are in.
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.NoJacoby {
		cfg.Rules.Jacoby = false
	}
	if g.NoCrawford {
		cfg.Rules.Crawford = false
	}
	if g.MaxCube > 0 {
		cfg.Rules.MaxCube = g.MaxCube
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.LogLevel(),
		ReportTimestamp: true,
	})
}

func loadMET(cfg *config.Config) (*met.Table, error) {
	if cfg.Rules.METFile == "" {
		return met.Default(), nil
	}
	t, err := met.LoadXML(cfg.Rules.METFile)
	if err != nil {
		return nil, fmt.Errorf("loading match equity table: %w", err)
	}
	return t, nil
}

func rules(cfg *config.Config) autoplay.Rules {
	return autoplay.Rules{
		Jacoby:   cfg.Rules.Jacoby,
		Crawford: cfg.Rules.Crawford,
		MaxCube:  cfg.Rules.MaxCube,
	}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bgplay"),
		kong.Description("Automated backgammon matches with cube and match rules"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
