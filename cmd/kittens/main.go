package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/kittens/internal/cli"
	"github.com/peterkuimelis/kittens/internal/config"
	"github.com/peterkuimelis/kittens/internal/game"
	"github.com/peterkuimelis/kittens/internal/log"
	kittensnet "github.com/peterkuimelis/kittens/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("failed to load .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(ctx, os.Args[2:])
	case "host":
		err = runHost(ctx, os.Args[2:])
	case "join":
		err = runJoin(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  kittens play [--name NAME] [--opponents N] [--deck FILE]")
	fmt.Println("  kittens host [--name NAME] [--opponents N] [--deck FILE] [--addr ADDR]")
	fmt.Println("  kittens join [--addr ADDR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Play a local game against AI opponents")
	fmt.Println("  host    Host a game for remote players and play in it")
	fmt.Println("  join    Connect to a hosted game")
	fmt.Println()
	fmt.Println("Flags common to all commands:")
	fmt.Println("  --config FILE   configuration file (default kittens.yaml)")
}

func loadConfig(fs *flag.FlagSet, args []string) (*config.Config, error) {
	configPath := fs.String("config", "kittens.yaml", "path to the config file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return config.Load(*configPath)
}

func runPlay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	name := fs.String("name", "", "your player name")
	opponents := fs.Int("opponents", 1, "number of AI opponents")
	deckPath := fs.String("deck", "", "path to a custom deck file (JSON)")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}

	term := cli.NewTerminal(os.Stdin, os.Stdout)
	defer term.Close()

	playerName, err := resolveName(term, *name)
	if err != nil {
		return err
	}
	if *opponents < 1 || *opponents > game.MaxPlayerCount-1 {
		return fmt.Errorf("opponents must be between 1 and %d", game.MaxPlayerCount-1)
	}

	players := []*game.Player{game.NewHumanPlayer(playerName, term)}
	for i := 1; i <= *opponents; i++ {
		players = append(players, game.NewAIPlayer(fmt.Sprintf("AI %d", i), cfg.AIDelay()))
	}

	return hostGame(ctx, term, players, *deckPath, cfg)
}

func runHost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	name := fs.String("name", "", "your player name")
	opponents := fs.Int("opponents", 1, "number of remote players to wait for")
	deckPath := fs.String("deck", "", "path to a custom deck file (JSON)")
	addr := fs.String("addr", "", "listen address (defaults to the configured one)")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	term := cli.NewTerminal(os.Stdin, os.Stdout)
	defer term.Close()

	playerName, err := resolveName(term, *name)
	if err != nil {
		return err
	}
	if *opponents < 1 || *opponents > game.MaxPlayerCount-1 {
		return fmt.Errorf("opponents must be between 1 and %d", game.MaxPlayerCount-1)
	}

	registry, err := kittensnet.Listen(cfg.ListenAddr)
	if err != nil {
		return err
	}
	defer registry.Close()

	term.Notify(log.System(fmt.Sprintf("Waiting for %d players to connect to %s", *opponents, registry.Addr())))
	remote, err := registry.RegisterPlayers(ctx, *opponents)
	if err != nil {
		return err
	}

	players := append([]*game.Player{game.NewHumanPlayer(playerName, term)}, remote...)
	return hostGame(ctx, term, players, *deckPath, cfg)
}

func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:8080", "host address to connect to")
	if _, err := loadConfig(fs, args); err != nil {
		return err
	}

	term := cli.NewTerminal(os.Stdin, os.Stdout)
	defer term.Close()
	return kittensnet.Join(ctx, *addr, term)
}

// hostGame builds the deck, deals, and runs the game to completion.
func hostGame(ctx context.Context, term *cli.Terminal, players []*game.Player, deckPath string, cfg *config.Config) error {
	cards, err := buildDeck(term, deckPath, len(players))
	if err != nil {
		return err
	}
	deck := game.Deal(players, cards)

	state := game.NewGameState(players, deck)
	hosted := game.NewHostedGame(state, game.GameConfig{
		NopeWindow: cfg.NopeWindow(),
		Scoreboard: game.NewScoreboard(cfg.ScoreboardPath),
	})
	winner, err := hosted.Run(ctx)
	if err != nil {
		return err
	}
	logrus.WithField("winner", winner.Name).Info("game finished")
	return nil
}

// buildDeck returns the base deck, or loads a custom one, re-prompting
// for a new path while the given file does not validate.
func buildDeck(term *cli.Terminal, deckPath string, playerCount int) ([]game.Card, error) {
	if deckPath == "" {
		return game.BaseDeck(playerCount), nil
	}
	for {
		cards, err := game.LoadDeckFile(deckPath, playerCount)
		if err == nil {
			term.Notify(log.Info("Custom deck successfully loaded."))
			return cards, nil
		}
		term.Notify(log.Error(fmt.Sprintf("Invalid deck file: %v", err)))
		deckPath, err = term.Query("Enter the path to the deck")
		if err != nil {
			return nil, err
		}
		if deckPath == "" {
			term.Notify(log.Info("Falling back to the base deck."))
			return game.BaseDeck(playerCount), nil
		}
	}
}

func resolveName(term *cli.Terminal, name string) (string, error) {
	for name == "" {
		var err error
		name, err = term.Query("Insert your name")
		if err != nil {
			return "", err
		}
	}
	return name, nil
}
