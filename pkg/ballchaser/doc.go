// Package ballchaser provides an embeddable ball-chasing agent.
//
// The agent reads camera frames, finds the first marker-colored pixel,
// classifies its horizontal zone, and sends a velocity command to the
// drive service whenever the zone changes.
//
// # Basic Usage
//
//	cfg := ballchaser.Config{
//	    Source:   ballchaser.SourceWebsocket,
//	    ImageURL: "ws://localhost:9090",
//	    DriveURL: "http://localhost:8000/ball_chaser/command_robot",
//	}
//
//	agent, err := ballchaser.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := agent.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer agent.Stop()
//
// # Processing Frames Directly
//
// Embedders that already own a camera loop can skip Start and call
// [Ballchaser.Process] for each frame. Calls are serialized internally.
//
// # Event Handling
//
// Implement [EventHandler] (embedding [BaseEventHandler] for defaults) and
// pass it via [WithEventHandler]. Events are called synchronously from the
// processing goroutine.
//
// # Plugins
//
// Plugins are initialized on Start in registration order and shut down on
// Stop in reverse order. They receive a [Tuner] for adjusting the running
// pipeline:
//
//	import "github.com/bft-labs/ballchaser/plugins/configwatcher"
//
//	agent, err := ballchaser.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.DefaultConfig()),
//	)
package ballchaser
