// Package main provides the CLI entry point for tinycsv.
//
// Usage:
//
//	tinycsv rows [file]              Print the rows of a document
//	tinycsv decode [file]            Print every decoded row as a JSON array
//	tinycsv convert [file]           Re-encode with another separator or newline style
//	tinycsv xlsx [file] -o out.xlsx  Export a document to a workbook
//	tinycsv from-xlsx book.xlsx      Print a workbook sheet as CSV
//	tinycsv watch file               Re-decode a file whenever it changes
//
// If no file is given, or the file is "-", input is read from stdin.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
