// Command worldfetch downloads a prebuilt world data bundle (config plus a
// pregenerated chunk database) into a local data directory. Bundles are
// plain directories, so any source go-getter understands works: git repos,
// HTTP archives, S3 buckets, local paths.
package main

import (
	"flag"
	"log"
	"os"

	get "github.com/hashicorp/go-getter"
)

func main() {
	var (
		url = flag.String("url", "", "bundle source URL (go-getter syntax)")
		out = flag.String("o", "./data", "output data directory")
	)
	flag.Parse()

	if *url == "" {
		log.Fatal("bundle source URL required")
	}
	if *out == "" {
		log.Fatal("output data directory required")
	}

	if err := os.RemoveAll(*out); err != nil {
		log.Fatal(err)
	}

	log.Printf("start downloading world bundle to %s", *out)

	if err := get.Get(*out, *url); err != nil {
		log.Fatal(err)
	}

	log.Printf("done downloading world bundle to %s", *out)
}
