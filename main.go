package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/DiscordGophers/dr-manual/store"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/k0kubun/pp"
	"github.com/pkg/errors"
)

var (
	configPath = flag.String("config", "config.json", "path to the bot configuration")
	importPath = flag.String("import", "", "convert the manual at this path or URL and exit")
	outPath    = flag.String("out", "", "write the converted document here instead of stdout")
	debug      = flag.Bool("debug", false, "pretty print the imported elements")
	update     = flag.Bool("update", false, "update all commands, regardless of if they are present or not")
)

func main() {
	flag.Parse()

	if *importPath != "" {
		cfg, err := config(*configPath)
		if errors.Is(err, os.ErrNotExist) {
			cfg, err = configFromBytes([]byte(`{}`))
		}
		if err != nil {
			log.Fatalln(err)
		}
		cfg.Manual = *importPath

		out := io.Writer(os.Stdout)
		if *outPath != "" {
			f, err := os.Create(*outPath)
			if err != nil {
				log.Fatalln(errors.Wrap(err, "could not create output"))
			}
			defer f.Close()
			out = f
		}

		if err := convert(context.Background(), cfg, out); err != nil {
			log.Fatalln(err)
		}
		return
	}

	cfg, err := config(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Token == "" {
		log.Fatal("no token provided")
	}

	db, err := store.Open(cfg.Database)
	if err != nil {
		log.Fatalln(err)
	}
	defer db.Close()

	s, err := state.New("Bot " + cfg.Token)
	if err != nil {
		log.Fatalln(errors.Wrap(err, "could not open session"))
	}

	b := &botState{
		cfg:   cfg,
		state: s,
		store: db,
	}

	if err := b.restore(); err != nil {
		log.Println("No stored manual, importing:", err)
		res, err := b.reload(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
		log.Printf("Imported manual %q: %s", cfg.Name, importStats(res))
	}
	if cfg.RefreshHours > 0 {
		go b.refreshManual()
	}

	s.AddHandler(b.OnCommand)
	s.AddIntents(gateway.IntentGuilds)

	if err := s.Open(context.Background()); err != nil {
		log.Fatalln("failed to open:", err)
	}
	defer s.Close()

	log.Println("Gateway connection established.")
	me, err := s.Me()
	if err != nil {
		log.Println("Could not get me:", err)
		return
	}

	log.Println("Logged in as ", me.Tag())

	registered := map[string]bool{}
	if !*update {
		cmds, err := s.Commands(discord.AppID(me.ID))
		if err != nil {
			log.Println("Could not list commands:", err)
			return
		}
		for _, c := range cmds {
			registered[c.Name] = true
			log.Println("Registered command:", c.Name)
		}
	}

	if err := loadCommands(s, me.ID, registered); err != nil {
		log.Println("Could not load commands:", err)
		return
	}

	select {}
}

// convert imports the configured manual and writes the document as JSON.
func convert(ctx context.Context, cfg configuration, out io.Writer) error {
	res, err := importManual(ctx, http.DefaultClient, cfg)
	if err != nil {
		return err
	}

	if *debug {
		pp.Fprintln(os.Stderr, res.Infos)
	}
	log.Printf("Imported %s: %s", cfg.Manual, importStats(res))

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(res.Document), "could not write document")
}
