package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"weblex/lexer"
)

func main() {
	verbose := flag.Bool("v", false, "log parse warnings and state traces as they happen")
	flag.Parse()
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	document, err := readDocument(flag.Arg(0))
	if err != nil {
		logrus.Fatal(err)
	}

	tokens, warnings := lexer.Tokenize(document)
	for _, tok := range lexer.Coalesce(tokens) {
		fmt.Println(tok)
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, w)
	}
}

func readDocument(path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(err, "reading document from stdin")
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading document %q", path)
	}
	return string(b), nil
}
