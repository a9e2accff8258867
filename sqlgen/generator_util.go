package sqlgen

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"regexp"
	"strings"
)

func constructFnInfo(filePath string, line int) string {
	fallback := fmt.Sprintf("%s-%d", filePath, line)
	file, err := os.Open(filePath)
	if err != nil {
		// The binary may run where the sources are not available.
		return fallback
	}
	defer file.Close()
	sc := bufio.NewScanner(file)
	currentLine := 0
	for sc.Scan() {
		currentLine++
		if currentLine != line {
			continue
		}
		if result := extractVarName(sc.Text()); result != "" {
			return result
		}
		break
	}
	return fallback
}

var newFnUsagePattern = regexp.MustCompile(`(?P<VAR>(var)?).*(?P<FN>(:?)=\s*NewFn)`)

func extractVarName(source string) string {
	locs := newFnUsagePattern.FindStringSubmatchIndex(source)
	ns := newFnUsagePattern.SubexpNames()
	var varSymEnd, assignSymBegin int
	if len(locs) > 0 {
		for i, n := range ns {
			if n == "VAR" {
				varSymEnd = locs[i*2+1]
			}
			if n == "FN" {
				assignSymBegin = locs[i*2]
			}
		}
	}
	if assignSymBegin != 0 {
		return strings.Trim(source[varSymEnd:assignSymBegin], " ")
	}
	return ""
}

func randGenRepeatCount(state *State, fn Fn) int {
	low, high := fn.Repeat.lower, fn.Repeat.upper
	if l, h, ok := state.GetRepeat(fn); ok {
		low, high = l, h
	}
	return low + rand.Intn(high+1-low)
}

func randomSelectByFactor(fns []Fn, weightFn func(f Fn) int) int {
	num := rand.Intn(sumRandFactor(fns, weightFn))
	acc := 0
	for i, f := range fns {
		acc += weightFn(f)
		if acc > num {
			return i
		}
	}
	return len(fns) - 1
}

func sumRandFactor(fs []Fn, weightFn func(f Fn) int) int {
	total := 0
	for _, f := range fs {
		total += weightFn(f)
	}
	return total
}
