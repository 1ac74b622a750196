// Package cli implements the interactive terminal flow: prompts with
// re-asking on malformed input, and the plain-text report.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"propinvest/pkg/money"
)

// ErrInputClosed is returned when input ends before a prompt was answered.
var ErrInputClosed = errors.New("input closed")

type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) Println(a ...any)               { fmt.Fprintln(p.out, a...) }
func (p *Prompter) Printf(format string, a ...any) { fmt.Fprintf(p.out, format, a...) }

func (p *Prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Text asks until a non-blank answer is given.
func (p *Prompter) Text(label string) (string, error) {
	for {
		s, err := p.line(label)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
		p.Println("  a value is required")
	}
}

// Amount asks for a rupee amount. Blank answers return ok=false when
// optional, and are re-asked otherwise. positive demands > 0, else >= 0.
func (p *Prompter) Amount(label string, optional, positive bool) (v float64, ok bool, err error) {
	for {
		s, err := p.line(label)
		if err != nil {
			return 0, false, err
		}
		if s == "" {
			if optional {
				return 0, false, nil
			}
			p.Println("  a value is required")
			continue
		}
		v, err := money.ParseAmount(s)
		if err != nil {
			p.Println("  please enter a number like 5,000,000")
			continue
		}
		if positive && v <= 0 {
			p.Println("  must be greater than 0")
			continue
		}
		if v < 0 {
			p.Println("  must not be negative")
			continue
		}
		return v, true, nil
	}
}

// Years asks for a whole number of at least 1.
func (p *Prompter) Years(label string) (int, error) {
	for {
		s, err := p.line(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			p.Println("  please enter a whole number of years, at least 1")
			continue
		}
		return n, nil
	}
}

// YesNo accepts y/yes/n/no in any case.
func (p *Prompter) YesNo(label string) (bool, error) {
	for {
		s, err := p.line(label)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(s) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.Println("  please answer yes or no")
	}
}
