// Command writeapp is a terminal writing application: a modal editor with
// draft management, markdown preview and writing-session tracking.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/timapple/writeapp/internal/app"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	showVersion := flag.Bool("version", false, "print version and exit")
	logLevel := flag.String("log-level", "", "enable file logging (debug, info, warn, error)")
	flowMinutes := flag.Int("flow", 0, "start directly in a timed flow session of N minutes")
	dir := flag.String("dir", "", "override the storage directory")
	flag.Parse()

	if *showVersion {
		fmt.Println("writeapp " + version)
		return 0
	}

	a, err := app.New(app.Options{
		BaseDir:     *dir,
		LogLevel:    *logLevel,
		FlowMinutes: *flowMinutes,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "writeapp:", err)
		return 1
	}

	if err := a.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "writeapp:", err)
		return 1
	}
	return 0
}
