package main

import "os"

func main() {
	os.Exit(newApp(os.Stdout, os.Stderr, os.Stdin).execute(os.Args[1:]))
}
