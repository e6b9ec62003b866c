package main

import "github.com/georgemunganga/printa-storefront/internal/cli"

func main() {
	cli.Execute()
}
