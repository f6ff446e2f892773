package main

// main is the entry point for the export-fixer application. Build-time
// variables 'version', 'commit' and 'date' are declared in root.go.
func main() {
	Execute()
}
