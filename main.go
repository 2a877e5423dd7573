package main

import (
	"github.com/tanpawarit/catalog-chatbot/cmd"
	_ "github.com/tanpawarit/catalog-chatbot/pkg/logger/autoload"
)

func main() {
	cmd.Execute()
}
