package main

import (
	"log"
	"os"

	"github.com/adspirelabs/punotes/core"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	cli := newCommandLine(core.NewConfig(), os.Stdout)
	defer cli.close()

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		cli.close()
		os.Exit(1)
	}
}
