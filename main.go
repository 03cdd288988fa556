package main

import "caltrack/cmd/caltrack"

func main() {
	caltrack.Execute()
}
