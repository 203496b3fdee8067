package main

import "github.com/k4g4/png-viewer/viewer"

func main() {
	viewer.ViewerCommand.Execute()
}
