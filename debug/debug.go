package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Analyze bool
	Tracker bool
	Patch   bool
	XPath   bool
	Apply   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Analyze = boolEnv("XMLDIFF_DEBUG_ANALYZE")
	d.Tracker = boolEnv("XMLDIFF_DEBUG_TRACKER")
	d.Patch = boolEnv("XMLDIFF_DEBUG_PATCH")
	d.XPath = boolEnv("XMLDIFF_DEBUG_XPATH")
	d.Apply = boolEnv("XMLDIFF_DEBUG_APPLY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Analyze() bool {
	return d.Analyze
}
func Tracker() bool {
	return d.Tracker
}
func Patch() bool {
	return d.Patch
}
func XPath() bool {
	return d.XPath
}
func Apply() bool {
	return d.Apply
}
