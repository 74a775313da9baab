package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"card-toss/internal/commands"
	"card-toss/internal/config"
	"card-toss/internal/debug"
	"card-toss/internal/download"
	"card-toss/internal/env"
	"card-toss/internal/graphics"
	"card-toss/internal/logger"
	"card-toss/internal/scene"
	"card-toss/internal/sim"
	"card-toss/internal/terminal"
)

func main() {
	if _, err := env.Load(".env"); err != nil {
		fail(err)
	}
	path := config.PathFromEnv(os.LookupEnv)
	cfg, err := config.Load(path)
	if err != nil {
		fail(err)
	}
	// save writes back the file values, not the CARDS_* overrides
	fileCfg := cfg
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		fail(err)
	}

	log := logger.New(cfg.LogPath)
	log.Logf("config %s: %d cards, hold %.1f, launch %.1f", path, len(cfg.Cards.Items), cfg.Interaction.HoldDistance, cfg.Interaction.LaunchSpeed)

	// remote art is fetched before the loop starts
	fetchCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	resolved, err := cfg.ResolveAssets(fetchCtx, download.New(download.DefaultDir))
	cancel()
	if err != nil {
		fail(err)
	}

	ctx, err := sim.FromConfig(resolved, log)
	if err != nil {
		fail(err)
	}

	hud := debug.New(ctx.HeldCount)
	hud.SetShowFPS(cfg.HUD.ShowFPS)
	hud.SetShowHeld(cfg.HUD.ShowHeld)

	reg := commands.NewRegistry()
	commands.RegisterDefaults(reg, commands.Deps{
		Sim: ctx,
		HUD: hud,
		Save: func() error {
			return config.Save(path, ctx.Snapshot(fileCfg))
		},
	})
	console := terminal.New(log, reg)
	orbit := scene.NewOrbit(ctx.Scene.Camera)

	graphics.Open(cfg.Window)
	defer graphics.Close()
	renderer := graphics.NewRenderer(log, resolved.Skybox)
	defer renderer.Unload()
	renderer.HUD = hud
	renderer.Console = console

	sim.NewLoop(ctx, cfg.Physics.FixedStep, orbit, renderer).Run(graphics.NewHost(orbit, console))
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "cards:", err)
	os.Exit(1)
}
