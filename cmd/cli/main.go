package main

import (
	"context"
	"flag"
	"log"

	"github.com/dmitrijs2005/gatekeeper/internal/cli"
)

func main() {

	addr := flag.String("a", "http://localhost:5000", "server base URL")
	flag.Parse()

	command := flag.Arg(0)

	app := cli.NewApp(*addr)
	if err := app.Run(context.Background(), command); err != nil {
		log.Fatalf("%v", err)
	}
}
