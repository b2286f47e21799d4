package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"bingo-hall/internal/bot"
	"bingo-hall/internal/game"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().
		Timestamp().
		Logger()

	app := &cli.App{
		Name:  "bingo-bot",
		Usage: "play bingo against a bingo-hall server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "server", Value: "http://localhost:8080", Usage: "server base URL", EnvVars: []string{"BINGO_SERVER"}},
			&cli.StringFlag{Name: "room", Usage: "room code to join; hosts create one when empty"},
			&cli.StringFlag{Name: "name", Value: "bot", Usage: "display name"},
			&cli.BoolFlag{Name: "host", Usage: "ask to host and call numbers"},
			&cli.BoolFlag{Name: "auto-start", Value: true, Usage: "as host, start rounds automatically"},
			&cli.IntFlag{Name: "min-players", Value: 2, Usage: "players needed before an automatic start"},
			&cli.DurationFlag{Name: "interval", Value: 2 * time.Second, Usage: "time between host actions"},
			&cli.BoolFlag{Name: "auto-claim", Value: true, Usage: "claim bingo as soon as the card wins"},
			&cli.IntFlag{Name: "rounds", Usage: "stop after this many rounds (0 = forever)"},
			&cli.Int64Flag{Name: "seed", Usage: "random seed (0 = clock)"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging"},
		},
		Action: func(c *cli.Context) error {
			log := logger.Level(zerolog.InfoLevel)
			if c.Bool("verbose") {
				log = logger.Level(zerolog.DebugLevel)
			}

			b, err := bot.New(bot.Config{
				ServerURL:  c.String("server"),
				RoomID:     c.String("room"),
				Name:       c.String("name"),
				Host:       c.Bool("host"),
				AutoStart:  c.Bool("auto-start"),
				MinPlayers: c.Int("min-players"),
				Interval:   c.Duration("interval"),
				AutoClaim:  c.Bool("auto-claim"),
				Rounds:     c.Int("rounds"),
				Seed:       c.Int64("seed"),
			}, log)
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return b.Run(ctx)
		},
		Commands: []*cli.Command{
			{
				Name:  "simulate",
				Usage: "deal cards and call numbers locally until someone wins",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "players", Value: 4, Usage: "cards to deal"},
					&cli.Int64Flag{Name: "seed", Usage: "random seed (0 = clock)"},
				},
				Action: simulate,
			},
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		logger.Fatal().Err(err).Msg("bot stopped")
	}
}

func simulate(c *cli.Context) error {
	players := c.Int("players")
	if players <= 0 {
		return cli.Exit("players must be positive", 2)
	}
	seed := c.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gen := game.NewCardGenerator(seed)
	cards := make([]game.Card, players)
	for i := range cards {
		cards[i] = gen.Generate()
	}
	res := game.Simulate(rand.New(rand.NewSource(seed)), cards)

	fmt.Printf("Seed: %d\n", seed)
	fmt.Printf("Calls (%d): %v\n", len(res.Calls), res.Calls)
	for _, w := range res.Winners {
		fmt.Printf("\nCard %d wins with %v\n", w+1, res.Patterns[w])
		printCard(cards[w], res.Calls)
	}

	js, _ := json.MarshalIndent(res, "", "  ")
	fmt.Println(string(js))
	return nil
}

func printCard(card game.Card, calls []int) {
	called := game.NewCalled(calls)
	fmt.Println("  B   I   N   G   O")
	for row := 0; row < game.Size; row++ {
		for col := 0; col < game.Size; col++ {
			v := card[col][row]
			mark := " "
			if called.Has(v) {
				mark = "*"
			}
			fmt.Printf("%3d%s", v, mark)
		}
		fmt.Println()
	}
}
