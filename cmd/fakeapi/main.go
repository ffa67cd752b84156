package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/requestdesk/internal/buildinfo"
	"github.com/dmitrijs2005/requestdesk/internal/fakeapi"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := fakeapi.LoadConfigFromOS()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := fakeapi.NewApp(cfg).Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}

}
