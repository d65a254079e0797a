package main

import "github.com/pfrederiksen/herb-scraper/internal/cli"

func main() {
	cli.Execute()
}
