// Command battle-sim runs one encounter from the content catalog in the
// terminal and prints the narrated log.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/Cam-Smith-Games/Card-Game/internal/constants"
	"github.com/Cam-Smith-Games/Card-Game/internal/content"
	"github.com/Cam-Smith-Games/Card-Game/internal/engine"
	"github.com/Cam-Smith-Games/Card-Game/internal/logging"
	"github.com/Cam-Smith-Games/Card-Game/internal/random"
)

func main() {
	contentPath := flag.String("content", constants.DefaultContentPath, "path to the YAML content catalog")
	encounter := flag.String("encounter", "", "encounter to fight (defaults to the first one)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	maxTurns := flag.Int("max-turns", 500, "abort after this many turns (0 = unlimited)")
	flag.Parse()
	defer logging.Sync()

	cat, err := content.LoadCatalog(*contentPath)
	if err != nil {
		logging.Fatal("Missing or invalid battle content", err, logging.Fields{constants.LogFieldPath: *contentPath})
	}
	name := *encounter
	if name == "" {
		encs := cat.Encounters()
		if len(encs) == 0 {
			fmt.Fprintln(os.Stderr, "catalog has no encounters")
			os.Exit(2)
		}
		name = encs[0].Name
	}
	teams, err := cat.BuildEncounter(name)
	if err != nil {
		logging.Fatal("Failed to build encounter", err, logging.Fields{constants.LogFieldEncounter: name})
	}

	src := random.New(*seed)
	narrator := engine.NewNarrator()
	b, err := engine.NewBattle(teams[0], teams[1], engine.Options{
		Input:    engine.NewAutoPilot(src),
		Source:   src,
		Observer: narrator,
		MaxTurns: *maxTurns,
	})
	if err != nil {
		logging.Fatal("Failed to create battle", err, nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	out, err := b.Start(ctx)
	fmt.Print(narrator.String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "battle aborted after %d turns: %v\n", out.Turns, err)
		os.Exit(1)
	}
	fmt.Printf("seed %d, %d turns, player won: %t\n", *seed, out.Turns, out.PlayerWon)
}
