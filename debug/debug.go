package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Events bool
	XML    bool
	Select bool
	Auth   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Events = boolEnv("WIKISTREAM_DEBUG_EVENTS")
	d.XML = boolEnv("WIKISTREAM_DEBUG_XML")
	d.Select = boolEnv("WIKISTREAM_DEBUG_SELECT")
	d.Auth = boolEnv("WIKISTREAM_DEBUG_AUTH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Events reports whether filter events are traced.
func Events() bool {
	return d.Events
}

// XML reports whether raw XML writer calls are traced.
func XML() bool {
	return d.XML
}
func Select() bool {
	return d.Select
}
func Auth() bool {
	return d.Auth
}
