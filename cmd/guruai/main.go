// Command guruai is the GuruAI teaching assistant CLI: it routes teacher
// requests to specialist agents and runs the worksheet differentiation
// pipeline from the command line.
package main

func main() {
	Execute()
}
