package main

import (
	"github.com/abundo-se/check-rrsig-expiry/cmd"
)

func main() {
	cmd.Execute()
}
