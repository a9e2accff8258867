package sqlgen

import (
	"runtime/debug"

	"github.com/davecgh/go-spew/spew"
	"github.com/pingcap/log"
)

const ProbabilityMax = 100

type Interval struct {
	lower int
	upper int
}

func Assert(cond bool, targets ...interface{}) {
	if !cond {
		spew.Dump(targets...)
		debug.PrintStack()
		log.Fatal("assertion failed")
	}
}

func NotNil(target interface{}, msg ...interface{}) {
	Assert(target != nil, msg...)
}
