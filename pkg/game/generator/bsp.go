package generator

import (
	"fmt"
	"math/rand"

	"worship/pkg/engine/world"
	"worship/pkg/game/gameplay"
)

// BSPGenerator generates levels using Binary Space Partitioning
type BSPGenerator struct{}

// Name returns the name of this generator
func (g *BSPGenerator) Name() string {
	return "BSP Tree"
}

// bspNode represents a node in the BSP tree
type bspNode struct {
	x, y, width, height int
	left, right         *bspNode
	room                *bspRoom
}

// bspRoom represents a room within a BSP leaf node
type bspRoom struct {
	x, y, width, height int
}

func (r *bspRoom) center() (int, int) {
	return r.x + r.width/2, r.y + r.height/2
}

// Constants for BSP generation
const (
	minNodeSize = 8 // Minimum size of a BSP node
	minRoomSize = 4 // Minimum size of a room
	roomPadding = 2 // Padding between room and node edge

	// Minimum arena side, including the perimeter walls
	minArenaSize = minNodeSize + 2
)

// Texture indices written to every tile
const (
	textureWall    = 1
	textureFloor   = 2
	textureCeiling = 3
)

// roomLights cycles through the static light colors, one per room.
var roomLights = []gameplay.ObjectType{
	gameplay.ObjectLightWhite,
	gameplay.ObjectLightOrange,
	gameplay.ObjectLightRed,
	gameplay.ObjectLightWhite,
	gameplay.ObjectLightBlue,
	gameplay.ObjectLightGreen,
}

// roomLoot is what the rooms after the start room hold, in order.
var roomLoot = []gameplay.ObjectType{
	gameplay.ObjectShotgun,
	gameplay.ObjectShells,
	gameplay.ObjectHealth,
	gameplay.ObjectPlasmaRifle,
	gameplay.ObjectCells,
	gameplay.ObjectArmor,
	gameplay.ObjectGrenadeLauncher,
	gameplay.ObjectGrenades,
}

var roomEnemies = []gameplay.ObjectType{
	gameplay.ObjectEnemyLight,
	gameplay.ObjectEnemyLight,
	gameplay.ObjectEnemyMedium,
	gameplay.ObjectEnemyHeavy,
}

// Generate creates a new level using the BSP algorithm. The player spawns in
// the middle of the first room, every room gets a light, and every other room
// gets loot and an enemy.
func (g *BSPGenerator) Generate(width, height int, seed int64) (*world.Level, error) {
	if width < minArenaSize || height < minArenaSize {
		return nil, fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrTooSmall, width, height, minArenaSize, minArenaSize)
	}
	rng := rand.New(rand.NewSource(seed))
	c := newCarver(width, height)

	// Create BSP tree (leaving 1 tile border for perimeter walls)
	root := &bspNode{
		x:      1,
		y:      1,
		width:  width - 2,
		height: height - 2,
	}
	splitBSP(rng, root, minNodeSize)
	createRooms(rng, root)
	carveRooms(c, root)
	connectRooms(rng, c, root)

	rooms := collectRooms(root)
	for i, room := range rooms {
		x, y := room.center()
		if i == 0 {
			c.place(gameplay.ObjectPlayerSpawn, x, y)
		}
		c.place(roomLights[i%len(roomLights)], room.x, room.y)

		if i == 0 {
			continue
		}
		c.place(roomLoot[(i-1)%len(roomLoot)], room.x+room.width-1, room.y+room.height-1)
		c.place(roomEnemies[(i-1)%len(roomEnemies)], x, y)
	}

	return c.level(), nil
}

// carver accumulates tiles and objects for one level.
type carver struct {
	width, height int
	tiles         []world.TileRecord
	objects       []world.Object
}

func newCarver(width, height int) *carver {
	c := &carver{
		width:  width,
		height: height,
		tiles:  make([]world.TileRecord, width*height),
	}
	for i := range c.tiles {
		c.tiles[i] = world.TileRecord{
			Type:           world.TileWall,
			TextureWall:    textureWall,
			TextureFloor:   textureFloor,
			TextureCeiling: textureCeiling,
		}
	}
	return c
}

// carve opens the tile at x, y. The perimeter always stays solid.
func (c *carver) carve(x, y int) {
	if x <= 0 || y <= 0 || x >= c.width-1 || y >= c.height-1 {
		return
	}
	c.tiles[y*c.width+x].Type = world.TileAir
}

// place adds an object at the center of tile x, y.
func (c *carver) place(t gameplay.ObjectType, x, y int) {
	c.objects = append(c.objects, world.Object{
		Type: uint8(t),
		X:    float32(x) + 0.5,
		Z:    float32(y) + 0.5,
	})
}

func (c *carver) level() *world.Level {
	return &world.Level{
		Width:   c.width,
		Height:  c.height,
		Tiles:   c.tiles,
		Objects: c.objects,
	}
}

// splitBSP recursively splits a BSP node
func splitBSP(rng *rand.Rand, node *bspNode, minSize int) {
	canSplitX := node.width >= minSize*2
	canSplitY := node.height >= minSize*2

	// Decide split direction
	var splitHorizontal bool
	switch {
	case node.width > node.height && canSplitX:
		splitHorizontal = false
	case node.height > node.width && canSplitY:
		splitHorizontal = true
	case canSplitX && canSplitY:
		splitHorizontal = rng.Intn(2) == 0
	case canSplitX:
		splitHorizontal = false
	case canSplitY:
		splitHorizontal = true
	default:
		return // Too small to split
	}

	if splitHorizontal {
		// Split horizontally (top and bottom)
		splitPoint := minSize + rng.Intn(node.height-minSize*2+1)
		node.left = &bspNode{
			x:      node.x,
			y:      node.y,
			width:  node.width,
			height: splitPoint,
		}
		node.right = &bspNode{
			x:      node.x,
			y:      node.y + splitPoint,
			width:  node.width,
			height: node.height - splitPoint,
		}
	} else {
		// Split vertically (left and right)
		splitPoint := minSize + rng.Intn(node.width-minSize*2+1)
		node.left = &bspNode{
			x:      node.x,
			y:      node.y,
			width:  splitPoint,
			height: node.height,
		}
		node.right = &bspNode{
			x:      node.x + splitPoint,
			y:      node.y,
			width:  node.width - splitPoint,
			height: node.height,
		}
	}

	// Recursively split children
	splitBSP(rng, node.left, minSize)
	splitBSP(rng, node.right, minSize)
}

// createRooms creates rooms in leaf nodes
func createRooms(rng *rand.Rand, node *bspNode) {
	if node.left != nil || node.right != nil {
		if node.left != nil {
			createRooms(rng, node.left)
		}
		if node.right != nil {
			createRooms(rng, node.right)
		}
		return
	}

	// Leaf node - create a room
	roomWidth := minRoomSize + rng.Intn(node.width-minRoomSize-roomPadding+1)
	roomHeight := minRoomSize + rng.Intn(node.height-minRoomSize-roomPadding+1)

	roomX := node.x + rng.Intn(node.width-roomWidth)
	roomY := node.y + rng.Intn(node.height-roomHeight)

	node.room = &bspRoom{
		x:      roomX,
		y:      roomY,
		width:  roomWidth,
		height: roomHeight,
	}
}

// carveRooms opens every room tile
func carveRooms(c *carver, node *bspNode) {
	if node.room != nil {
		for y := node.room.y; y < node.room.y+node.room.height; y++ {
			for x := node.room.x; x < node.room.x+node.room.width; x++ {
				c.carve(x, y)
			}
		}
	}

	if node.left != nil {
		carveRooms(c, node.left)
	}
	if node.right != nil {
		carveRooms(c, node.right)
	}
}

// connectRooms connects the two subtrees of every node with an L-shaped
// corridor between one room of each
func connectRooms(rng *rand.Rand, c *carver, node *bspNode) {
	if node.left == nil || node.right == nil {
		return
	}

	leftRoom := getRoom(rng, node.left)
	rightRoom := getRoom(rng, node.right)

	if leftRoom != nil && rightRoom != nil {
		lx, ly := leftRoom.center()
		rx, ry := rightRoom.center()

		if rng.Intn(2) == 0 {
			// Horizontal first, then vertical
			carveCorridorHorizontal(c, ly, lx, rx)
			carveCorridorVertical(c, rx, ly, ry)
		} else {
			// Vertical first, then horizontal
			carveCorridorVertical(c, lx, ly, ry)
			carveCorridorHorizontal(c, ry, lx, rx)
		}
	}

	connectRooms(rng, c, node.left)
	connectRooms(rng, c, node.right)
}

func carveCorridorHorizontal(c *carver, y, startX, endX int) {
	if startX > endX {
		startX, endX = endX, startX
	}
	for x := startX; x <= endX; x++ {
		c.carve(x, y)
	}
}

func carveCorridorVertical(c *carver, x, startY, endY int) {
	if startY > endY {
		startY, endY = endY, startY
	}
	for y := startY; y <= endY; y++ {
		c.carve(x, y)
	}
}

// getRoom returns a room from a subtree (picks randomly from leaves)
func getRoom(rng *rand.Rand, node *bspNode) *bspRoom {
	if node.room != nil {
		return node.room
	}

	var leftRoom, rightRoom *bspRoom
	if node.left != nil {
		leftRoom = getRoom(rng, node.left)
	}
	if node.right != nil {
		rightRoom = getRoom(rng, node.right)
	}

	if leftRoom != nil && rightRoom != nil {
		if rng.Intn(2) == 0 {
			return leftRoom
		}
		return rightRoom
	}

	if leftRoom != nil {
		return leftRoom
	}
	return rightRoom
}

// collectRooms collects all rooms from the BSP tree, left to right
func collectRooms(node *bspNode) []*bspRoom {
	var rooms []*bspRoom

	if node.room != nil {
		rooms = append(rooms, node.room)
	}
	if node.left != nil {
		rooms = append(rooms, collectRooms(node.left)...)
	}
	if node.right != nil {
		rooms = append(rooms, collectRooms(node.right)...)
	}

	return rooms
}
