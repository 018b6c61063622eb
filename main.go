package main

import "phoebe/cmd"

// version and releaseDate can be set during build with -ldflags
var (
	version     = "0.40"
	releaseDate = "unreleased"
)

func main() {
	cmd.SetVersion(version)
	cmd.SetReleaseDate(releaseDate)
	cmd.Execute()
}
