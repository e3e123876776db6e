// Package codeutil cleans up model output and validates that it carries a
// runnable manim scene.
package codeutil

import (
	"regexp"
	"strings"
)

// Sentinel is the reserved reply meaning "no usable code was produced",
// either because the request was off-domain or the model declined.
const Sentinel = "-1"

var (
	codeBlockRe  = regexp.MustCompile("(?s)```(?:python)?\n(.*?)```")
	sceneClassRe = regexp.MustCompile(`class\s+(\w+)\s*\(\s*Scene\s*\)`)
)

// apiRewrites maps commonly hallucinated or deprecated Manim APIs to their
// v0.19.x equivalents. Applied as literal substring replacement, not parsing:
// a match inside a comment or string is rewritten too, which is accepted.
var apiRewrites = map[string]string{
	"TransformFromMask(": "Transform(",
	"ShowCreation(":      "Create(",
}

// Sanitize strips formatting artifacts from raw model output. Empty input
// yields the Sentinel; the Sentinel passes through unchanged. When a fenced
// code block is present, the first block's content replaces the whole text,
// discarding any surrounding prose.
func Sanitize(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" || text == Sentinel {
		return Sentinel
	}

	if m := codeBlockRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# %%") || strings.HasPrefix(trimmed, ">>>") {
			continue
		}
		lines = append(lines, line)
	}
	text = strings.TrimSpace(strings.Join(lines, "\n"))

	return normalizeManimAPIs(text)
}

// ExtractSceneClass returns the name of the first class subclassing Scene, or
// "" when the code declares none. The result doubles as the default render
// target.
func ExtractSceneClass(code string) string {
	if m := sceneClassRe.FindStringSubmatch(code); m != nil {
		return m[1]
	}
	return ""
}

func normalizeManimAPIs(code string) string {
	out := code
	for bad, good := range apiRewrites {
		out = strings.ReplaceAll(out, bad, good)
	}
	return out
}
