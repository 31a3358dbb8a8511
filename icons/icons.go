// Package icons holds the built-in 1 bit icons. Index 0 is transparent and
// index 1 white, so icons can be drawn with any blit onto any background.
package icons

import (
	"strings"

	"github.com/clktmr/bui/bitmap"
)

var (
	Check = parse(`
.......#
......##
#....##.
##..##..
.####...
..##....
`)
	Cross = parse(`
#.....#
.#...#.
..#.#..
...#...
..#.#..
.#...#.
#.....#
`)
	Left = parse(`
...#
..#.
.#..
#...
.#..
..#.
...#
`)
	Right = parse(`
#...
.#..
..#.
...#
..#.
.#..
#...
`)
	Up = parse(`
...#...
..#.#..
.#...#.
#.....#
`)
	Down = parse(`
#.....#
.#...#.
..#.#..
...#...
`)
	LeftFilled = parse(`
...#
..##
.###
####
.###
..##
...#
`)
	RightFilled = parse(`
#...
##..
###.
####
###.
##..
#...
`)
	UpFilled = parse(`
...#...
..###..
.#####.
#######
`)
	DownFilled = parse(`
#######
.#####.
..###..
...#...
`)
	// Space and ToggleCase are keyboard keys.
	Space = parse(`
.....
.....
.....
.....
#...#
#####
.....
.....
`)
	ToggleCase = parse(`
.###.
#...#
...##
#...#
##...
#...#
.###.
.....
`)
	Dashboard = parse(`
..########..
.#........#.
#..#.##.#..#
#..........#
#.#......#.#
#....##....#
#.....#....#
#......#...#
#..........#
.#........#.
..########..
`)
)

// parse converts ASCII art to a bitmap, '#' marks a set pixel.
func parse(art string) *bitmap.Bitmap {
	rows := strings.Fields(art)
	bm := bitmap.New(len(rows[0]), len(rows), 1, bitmap.Palette{bitmap.Transparent, bitmap.White})
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				bm.SetIndex(x, y, 1)
			}
		}
	}
	return bm
}
