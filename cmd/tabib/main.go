package main

import "tabib-chatbot/internal/cli"

func main() {
	cli.Execute()
}
