package lib

import (
	"errors"
	"flag"
	"maps"
	"slices"
	"strings"
)

var flagsSet map[string]bool

func IsFlagPassed(name string) bool {
	if flagsSet == nil {
		flagsSet = make(map[string]bool)
		flag.Visit(func(f *flag.Flag) {
			flagsSet[f.Name] = true
		})
	}

	_, found := flagsSet[name]

	return found
}

type ArrayFlags []string

func (i *ArrayFlags) String() string {
	return strings.Join(*i, ",")
}
func (i *ArrayFlags) Set(value string) error {
	for v := range strings.SplitSeq(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*i = append(*i, v)
		}
	}
	return nil
}

// MapFlags collects key:val or key=val pairs, later pairs override earlier ones
type MapFlags map[string]string

func (i *MapFlags) String() string {
	val := strings.Builder{}
	for _, a := range slices.Sorted(maps.Keys(*i)) {
		val.WriteString(",")
		val.WriteString(a)
		val.WriteString("=")
		val.WriteString((*i)[a])
	}
	return strings.TrimPrefix(val.String(), ",")
}
func (i *MapFlags) Set(value string) error {
	for v := range strings.SplitSeq(value, ",") {
		// "=" first so values like output=dist/a:b keep their colon
		pair := strings.SplitN(v, "=", 2)

		if len(pair) < 2 {
			pair = strings.SplitN(v, ":", 2)
		}

		if len(pair) < 2 || pair[0] == "" {
			return errors.New("invalid seperator, use key=val,key1=val1,... ")
		}

		if *i == nil {
			*i = make(MapFlags)
		}

		(*i)[pair[0]] = pair[1]
	}

	return nil
}

// Clone copies the map, nil stays nil
func (i MapFlags) Clone() MapFlags {
	return maps.Clone(i)
}
