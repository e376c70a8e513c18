package sprite

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwarden/dew/internal/anim"
)

// Frame files hold one frame after another, separated by a line containing
// only this marker.
const frameSeparator = "---"

// File names looked up in a frame directory.
const (
	IdleFile  = "idle.txt"
	PanicFile = "panic.txt"
	HoverFile = "hover.txt"
)

func frame(lines ...string) string {
	return strings.Join(lines, "\n")
}

var builtinIdle = []string{
	frame(
		"     .     ",
		"    / \\    ",
		"   /   \\   ",
		"  ( o  o ) ",
		"   \\ __ /  ",
	),
	frame(
		"     .     ",
		"    / \\    ",
		"   /   \\   ",
		"  ( -  - ) ",
		"   \\ __ /  ",
	),
	frame(
		"     .     ",
		"    / \\    ",
		"   /   \\   ",
		"  ( o  o ) ",
		"   \\ ~~ /  ",
	),
}

var builtinPanic = []string{
	frame(
		"     .     ",
		"    / \\    ",
		"   /   \\   ",
		"  ( O  O ) ",
		"   \\ o  /  ",
	),
	frame(
		"   ' .     ",
		"    / \\    ",
		"   /   \\ ' ",
		"  ( O  O ) ",
		"   \\ O  /  ",
	),
	frame(
		"  '  .  '  ",
		"    / \\    ",
		" ' /   \\   ",
		"  ( @  @ ) ",
		"   \\ O  /  ",
	),
	frame(
		"   \\ . /   ",
		"  - / \\ -  ",
		"   /   \\   ",
		"  ( >  < ) ",
		"   \\ O  /  ",
	),
	frame(
		"  \\  .  /  ",
		" -  / \\  - ",
		"   /   \\   ",
		"  ( >  < ) ",
		"   \\ 0  /  ",
	),
	frame(
		"     .     ",
		"    / \\    ",
		"   /   \\   ",
		"  ( x  x ) ",
		"   \\ __ /  ",
	),
}

var builtinHover = []string{
	frame(
		"     .     ",
		"    / \\  o ",
		"   /   \\ | ",
		"  ( ^  ^ )/",
		"   \\ \\/ /  ",
	),
	frame(
		"     .   o ",
		"    / \\  | ",
		"   /   \\/  ",
		"  ( ^  ^ ) ",
		"   \\ \\/ /  ",
	),
	frame(
		"     .     ",
		"    / \\  o ",
		"   /   \\ | ",
		"  ( ^  - )/",
		"   \\ \\/ /  ",
	),
}

// Builtin returns the frames compiled into the binary.
func Builtin() anim.FrameSet[string] {
	return anim.FrameSet[string]{
		Idle:  append([]string(nil), builtinIdle...),
		Drag:  append([]string(nil), builtinPanic...),
		Hover: append([]string(nil), builtinHover...),
	}
}

// Load returns the built-in frames when dir is empty, otherwise the frames
// found in dir. Every state's file must exist and hold at least one frame.
func Load(dir string) (anim.FrameSet[string], error) {
	if dir == "" {
		return Builtin(), nil
	}

	var set anim.FrameSet[string]
	var err error

	if set.Idle, err = loadFile(filepath.Join(dir, IdleFile)); err != nil {
		return set, err
	}
	if set.Drag, err = loadFile(filepath.Join(dir, PanicFile)); err != nil {
		return set, err
	}
	if set.Hover, err = loadFile(filepath.Join(dir, HoverFile)); err != nil {
		return set, err
	}

	return set, nil
}

func loadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", anim.ErrResourceMissing, err)
	}
	defer file.Close()

	var frames []string
	var current []string

	flush := func() {
		// Drop trailing blank lines so frames keep a stable height.
		for len(current) > 0 && strings.TrimSpace(current[len(current)-1]) == "" {
			current = current[:len(current)-1]
		}
		if len(current) > 0 {
			frames = append(frames, strings.Join(current, "\n"))
		}
		current = nil
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == frameSeparator {
			flush()
			continue
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", anim.ErrResourceMissing, path, err)
	}
	flush()

	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: %s has no frames", anim.ErrResourceMissing, path)
	}
	return frames, nil
}
