package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/setgame/internal/config"
	"github.com/lox/setgame/internal/display"
	"github.com/lox/setgame/internal/fileutil"
	"github.com/lox/setgame/internal/game"
	"github.com/lox/setgame/internal/randutil"
	"github.com/lox/setgame/internal/tui"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"
)

// version is set by ldflags during build
var version = "dev"

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" default:"setgame.hcl" help:"Path to HCL configuration file"`
	Players  int              `short:"p" help:"Number of players (overrides config)"`
	Humans   int              `default:"-1" help:"Number of human players (overrides config)"`
	Seed     int64            `help:"Random seed, reproduces deals and computer input (overrides config)"`
	LogLevel string           `short:"l" help:"Log level: debug, info, warn or error (overrides config)"`
	LogFile  string           `help:"Log file while the TUI owns the terminal (overrides config)"`
	Hints    bool             `help:"Log every set on the table after each deal"`
	Headless bool             `help:"Run without the TUI and log display changes instead"`
	NoColor  bool             `help:"Disable colours"`
	Results  string           `help:"Write the final scores to this JSON file"`
}

// summary is the record written by --results
type summary struct {
	Game    string `json:"game"`
	Seed    int64  `json:"seed"`
	Scores  []int  `json:"scores"`
	Winners []int  `json:"winners"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("setgame"),
		kong.Description("Real-time set-matching card game for humans and computer players"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cfg, err := config.LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		ctx.Exit(1)
	}
	if err := cli.apply(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	sum, err := run(cli, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		ctx.Exit(1)
	}

	fmt.Println(titleStyle.Render("Final scores"))
	fmt.Println(formatResult(game.Result{Scores: sum.Scores, Winners: sum.Winners}))

	if cli.Results != "" {
		if err := fileutil.WriteJSON(cli.Results, sum); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
			ctx.Exit(1)
		}
	}
}

// apply copies command line overrides onto cfg and rejects more humans than
// the keyboard can serve.
func (c *CLI) apply(cfg *config.Config) error {
	if c.Players > 0 {
		cfg.Game.Players = c.Players
	}
	if c.Humans >= 0 {
		cfg.SetHumans(c.Humans)
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
	if c.Hints {
		cfg.Game.Hints = true
	}
	if c.Headless {
		// Nobody can press keys without the TUI.
		cfg.SetHumans(0)
	}
	if cfg.Humans() > cfg.Game.Players {
		cfg.SetHumans(cfg.Game.Players)
	}
	if cfg.Humans() > tui.MaxHumans() {
		return fmt.Errorf("at most %d human players can share the keyboard, got %d", tui.MaxHumans(), cfg.Humans())
	}
	return nil
}

func run(cli CLI, cfg *config.Config) (summary, error) {
	gameCfg, err := cfg.GameConfig()
	if err != nil {
		return summary{}, err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return summary{}, err
	}

	// The TUI owns the terminal, so logs go to a file unless headless.
	var out io.Writer = os.Stderr
	if !cli.Headless {
		filename := cfg.Log.File
		if filename == "" {
			filename = "setgame.log"
		}
		logFile, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return summary{}, fmt.Errorf("failed to open log file: %w", err)
		}
		defer logFile.Close()
		out = logFile
	}

	gameID, err := uuid.NewV7()
	if err != nil {
		return summary{}, fmt.Errorf("failed to generate game id: %w", err)
	}
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           level,
	}).With("game", gameID.String())

	rng, seed := randutil.NewOrRandom(cfg.Game.Seed)
	logger.Info("Starting game",
		"players", gameCfg.Players,
		"humans", gameCfg.HumanPlayers,
		"seed", seed,
		"version", version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cli.Headless {
		logDisplay := display.NewLogDisplay(logger, gameCfg.Rules)
		dealer, err := game.NewDealer(gameCfg, logDisplay, quartz.NewReal(), rng, logger)
		if err != nil {
			return summary{}, err
		}
		return newSummary(gameID, seed, dealer.Run(ctx)), nil
	}

	model := tui.NewTUIModel(gameCfg, nil, logger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// The log file records the same display changes the screen shows.
	gameDisplay := game.NewMultiDisplay(tui.NewDisplay(program), display.NewLogDisplay(logger, gameCfg.Rules))
	dealer, err := game.NewDealer(gameCfg, gameDisplay, quartz.NewReal(), rng, logger)
	if err != nil {
		return summary{}, err
	}
	model.SetInput(dealer)

	var result game.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result = dealer.Run(gctx)
		return nil
	})
	g.Go(func() error {
		_, err := program.Run()
		// Quitting the TUI ends the game.
		dealer.Terminate()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	err = g.Wait()
	sum := newSummary(gameID, seed, result)
	if err != nil {
		return sum, fmt.Errorf("terminal UI failed: %w", err)
	}
	return sum, nil
}

func newSummary(id uuid.UUID, seed int64, result game.Result) summary {
	return summary{
		Game:    id.String(),
		Seed:    seed,
		Scores:  result.Scores,
		Winners: result.Winners,
	}
}

func formatResult(result game.Result) string {
	winners := make(map[int]bool, len(result.Winners))
	for _, id := range result.Winners {
		winners[id] = true
	}

	var out string
	for id, score := range result.Scores {
		line := fmt.Sprintf("Player %d: %d", id, score)
		if winners[id] {
			line += " (winner)"
		}
		out += line + "\n"
	}
	return out
}
