/*
This is an example of application that will use the
engine package to render the testbed scenes
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/softraster/engine"
	"github.com/spaghettifunk/softraster/engine/core"
	"github.com/spaghettifunk/softraster/testbed"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML application config")
	headless := flag.Bool("headless", false, "render without a window and write the frames as PNG")
	frames := flag.Int("frames", 0, "number of frames to render in headless mode")
	out := flag.String("out", "", "output directory for headless frames")
	scene := flag.String("scene", "", "scene to start with")
	flag.Parse()

	config, err := engine.LoadApplicationConfig(*configPath)
	if err != nil {
		core.LogFatal(err.Error())
	}
	if *headless {
		config.Headless.Enabled = true
	}
	if *frames > 0 {
		config.Headless.Frames = *frames
	}
	if *out != "" {
		config.Headless.OutputDir = *out
	}
	if *scene != "" {
		config.Scene = *scene
	}

	tb, err := testbed.NewTestGame(config)
	if err != nil {
		core.LogFatal(err.Error())
	}

	e, err := engine.New(tb.Game)
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		core.LogFatal(err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		// capture sigterm and other system call here
		<-sigCh
		e.RequestQuit()
	}()

	// run engine
	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		core.LogFatal(runErr.Error())
	}
}
