package main

import "github.com/aalvaropc/s3lens/internal/cli"

func main() {
	cli.Execute()
}
