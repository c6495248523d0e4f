// Command compassctl scores apprenticeship candidates and inspects the
// engine tables from the command line.
package main

func main() {
	Execute()
}
