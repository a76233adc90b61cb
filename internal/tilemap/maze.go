package tilemap

// defaultMaze is the 28x31 candy shop floor. Legend:
//
//	#  wall
//	.  gumdrop (dot)
//	o  jawbreaker (power pellet)
//	-  ghost house
//	   open floor
//
// Row 14 is the tunnel row; its ends are open so it wraps.
var defaultMaze = []string{
	"############################",
	"#............##............#",
	"#.####.#####.##.#####.####.#",
	"#o####.#####.##.#####.####o#",
	"#.####.#####.##.#####.####.#",
	"#..........................#",
	"#.####.##.########.##.####.#",
	"#.####.##.########.##.####.#",
	"#......##....##....##......#",
	"######.##### ## #####.######",
	"######.##### ## #####.######",
	"######.##          ##.######",
	"######.## ###--### ##.######",
	"######.## #------# ##.######",
	"      .   #------#   .      ",
	"######.## #------# ##.######",
	"######.## ######## ##.######",
	"######.##          ##.######",
	"######.## ######## ##.######",
	"######.## ######## ##.######",
	"#............##............#",
	"#.####.#####.##.#####.####.#",
	"#.####.#####.##.#####.####.#",
	"#o..##.......  .......##..o#",
	"###.##.##.########.##.##.###",
	"###.##.##.########.##.##.###",
	"#......##....##....##......#",
	"#.##########.##.##########.#",
	"#.##########.##.##########.#",
	"#..........................#",
	"############################",
}

// Fixed landmarks of the default maze, in tile coordinates.
const (
	PlayerStartX = 14
	PlayerStartY = 23
	HouseExitX   = 14
	HouseExitY   = 11
	HouseX       = 14
	HouseY       = 14
)

// GhostSlots are the house tiles ghosts wait on, indexed by spawn order.
var GhostSlots = [4][2]int{{14, 14}, {12, 14}, {14, 15}, {16, 14}}
