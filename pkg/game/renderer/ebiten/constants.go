package ebiten

import "image/color"

// Color palette for the top-down view
var (
	colorBackground      = color.RGBA{15, 15, 26, 255}
	colorWall            = color.RGBA{120, 120, 150, 255}
	colorPlayer          = color.RGBA{0, 255, 0, 255}
	colorEnemy           = color.RGBA{255, 80, 80, 255}
	colorEnemyDead       = color.RGBA{110, 40, 40, 255}
	colorPickup          = color.RGBA{220, 170, 255, 255}
	colorText            = color.RGBA{200, 210, 245, 255}
	colorSubtle          = color.RGBA{120, 130, 180, 255}
	colorPanelBackground = color.RGBA{30, 30, 50, 220}
	colorSightLine       = color.RGBA{0, 200, 0, 160}
)

const (
	defaultTileSize = 24
	minTileSize     = 8
	maxTileSize     = 64

	hudFontSize     = 14
	overlayFontSize = 32
	hudMargin       = 8
	hudLineHeight   = 18
)
