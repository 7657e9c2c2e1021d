package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iov-one/artmarket"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *artmarket.Address {
	var a artmarket.Address
	if defaultVal != "" {
		var err error
		a, err = artmarket.ParseAddress(defaultVal)
		if err != nil {
			flagDie("Cannot parse %q address flag value. %s", name, err)
		}
	}
	fl.Var((*addressValue)(&a), name, usage)
	return &a
}

type addressValue artmarket.Address

func (a addressValue) String() string {
	if len(a) == 0 {
		return ""
	}
	return artmarket.Address(a).String()
}

func (a *addressValue) Set(raw string) error {
	addr, err := artmarket.ParseAddress(raw)
	if err != nil {
		return err
	}
	*a = addressValue(addr)
	return nil
}

// flagDie terminates the program when a flag validation fails.
var flagDie = func(description string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, description, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(2)
}
